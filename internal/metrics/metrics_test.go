package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAnswer_SourceBuckets(t *testing.T) {
	m := NewMetrics()

	m.RecordAnswer("databank")
	m.RecordAnswer("personal_info")
	m.RecordAnswer("salary")
	m.RecordAnswer("work_auth")
	m.RecordAnswer("not_found")

	snap := m.GetSnapshot()
	assert.Equal(t, int64(1), snap.AnswersFromDatabank)
	assert.Equal(t, int64(3), snap.AnswersFromProfile)
	assert.Equal(t, int64(1), snap.AnswersNotFound)
}

func TestRecordPageParsed(t *testing.T) {
	m := NewMetrics()

	m.RecordPageParsed(5)
	m.RecordPageParsed(2)

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.PagesParsed)
	assert.Equal(t, int64(7), snap.QuestionsExtracted)
}

func TestConcurrentRecording(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordAnswer("databank")
			m.RecordAnswerTracked()
		}()
	}
	wg.Wait()

	snap := m.GetSnapshot()
	assert.Equal(t, int64(50), snap.AnswersFromDatabank)
	assert.Equal(t, int64(50), snap.AnswersTracked)
}
