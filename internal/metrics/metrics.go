package metrics

import (
	"sync"
	"time"
)

// Metrics tracks engine activity counters. Safe for concurrent use.
type Metrics struct {
	mu                  sync.RWMutex
	pagesParsed         int64
	questionsExtracted  int64
	answersFromDatabank int64
	answersFromProfile  int64
	answersNotFound     int64
	answersTracked      int64
	lastUpdateTime      time.Time
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	PagesParsed         int64     `json:"pages_parsed"`
	QuestionsExtracted  int64     `json:"questions_extracted"`
	AnswersFromDatabank int64     `json:"answers_from_databank"`
	AnswersFromProfile  int64     `json:"answers_from_profile"`
	AnswersNotFound     int64     `json:"answers_not_found"`
	AnswersTracked      int64     `json:"answers_tracked"`
	LastUpdateTime      time.Time `json:"last_update_time"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		lastUpdateTime: time.Now(),
	}
}

// RecordPageParsed counts one extraction pass and its question yield.
func (m *Metrics) RecordPageParsed(questions int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pagesParsed++
	m.questionsExtracted += int64(questions)
	m.lastUpdateTime = time.Now()
}

// RecordAnswer counts one resolution by its source tag.
func (m *Metrics) RecordAnswer(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch source {
	case "databank":
		m.answersFromDatabank++
	case "not_found":
		m.answersNotFound++
	default:
		// personal_info, salary and work_auth all come from the profile.
		m.answersFromProfile++
	}
	m.lastUpdateTime = time.Now()
}

// RecordAnswerTracked counts one usage-history entry.
func (m *Metrics) RecordAnswerTracked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answersTracked++
	m.lastUpdateTime = time.Now()
}

// GetSnapshot returns a copy of the current counters.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		PagesParsed:         m.pagesParsed,
		QuestionsExtracted:  m.questionsExtracted,
		AnswersFromDatabank: m.answersFromDatabank,
		AnswersFromProfile:  m.answersFromProfile,
		AnswersNotFound:     m.answersNotFound,
		AnswersTracked:      m.answersTracked,
		LastUpdateTime:      m.lastUpdateTime,
	}
}
