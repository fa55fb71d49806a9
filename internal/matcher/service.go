// Package matcher resolves a single question to the best answer a databank
// can offer. Structured-field rules run first and win outright; free-form
// stored questions are the fuzzy fallback.
package matcher

import (
	"strings"

	"jobradar/internal/databank"
)

// Source tags where an answer came from.
type Source string

const (
	SourcePersonalInfo Source = "personal_info"
	SourceSalary       Source = "salary"
	SourceWorkAuth     Source = "work_auth"
	SourceDatabank     Source = "databank"
	SourceNotFound     Source = "not_found"
)

// Result is the outcome of resolving one question. Answer is empty when
// Source is SourceNotFound. Score is 1.0 for structured-rule hits and the
// Jaccard similarity for databank hits.
type Result struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Source Source  `json:"source"`
}

// Config holds the matcher's single tuning knob. The threshold is the one
// authoritative cutoff: callers must not re-apply their own.
type Config struct {
	Threshold float64 `yaml:"threshold"`
}

// DefaultConfig returns the default similarity threshold.
func DefaultConfig() Config {
	return Config{Threshold: 0.3}
}

// rule is one entry in the structured-field cascade: a predicate over the
// lowered question and an accessor into the databank. A rule whose field is
// unset passes through to the next rule rather than short-circuiting.
type rule struct {
	matches func(q string) bool
	value   func(db *databank.Databank) string
	source  Source
}

// Matcher resolves questions against a databank snapshot. Stateless after
// construction and safe for concurrent use.
type Matcher struct {
	cfg   Config
	rules []rule
}

// New builds a matcher with the fixed structured-rule cascade.
func New(cfg Config) *Matcher {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultConfig().Threshold
	}
	return &Matcher{cfg: cfg, rules: buildRules()}
}

// Resolve returns the best answer for the question. Phase A walks the
// structured rules in order; the first rule that matches the question and
// has its field set wins with score 1.0. Phase B scans the stored Q&A pairs
// for the highest Jaccard similarity, accepting it only when strictly above
// the threshold. A nil or partially filled databank is treated as empty.
func (m *Matcher) Resolve(question string, db *databank.Databank) Result {
	if db == nil {
		db = &databank.Databank{}
	}
	q := strings.ToLower(strings.TrimSpace(question))

	for _, r := range m.rules {
		if !r.matches(q) {
			continue
		}
		if v := r.value(db); v != "" {
			return Result{Answer: v, Score: 1.0, Source: r.source}
		}
	}

	var bestAnswer string
	bestScore := 0.0
	for _, qa := range db.Questions.Pairs() {
		if qa.Answer == "" {
			continue
		}
		// Strict > keeps the first stored entry on a tied score; the
		// question set enumerates in insertion order.
		if score := Similarity(question, qa.Question); score > bestScore {
			bestScore = score
			bestAnswer = qa.Answer
		}
	}
	if bestScore > m.cfg.Threshold {
		return Result{Answer: bestAnswer, Score: bestScore, Source: SourceDatabank}
	}

	return Result{Source: SourceNotFound}
}

func buildRules() []rule {
	return []rule{
		{
			matches: func(q string) bool {
				return strings.Contains(q, "first name") && !strings.Contains(q, "last")
			},
			value:  func(db *databank.Databank) string { return firstName(db.PersonalInfo.FullName) },
			source: SourcePersonalInfo,
		},
		{
			matches: containsAny("last name", "surname", "family name"),
			value:   func(db *databank.Databank) string { return lastName(db.PersonalInfo.FullName) },
			source:  SourcePersonalInfo,
		},
		{
			matches: func(q string) bool {
				return strings.Contains(q, "your name") || strings.Contains(q, "full name") ||
					(q == "name" && len(q) < 10)
			},
			value:  func(db *databank.Databank) string { return db.PersonalInfo.FullName },
			source: SourcePersonalInfo,
		},
		{
			matches: containsAny("email", "e-mail"),
			value:   func(db *databank.Databank) string { return db.PersonalInfo.Email },
			source:  SourcePersonalInfo,
		},
		{
			matches: containsAny("phone", "telephone", "mobile", "contact number"),
			value:   func(db *databank.Databank) string { return db.PersonalInfo.Phone },
			source:  SourcePersonalInfo,
		},
		{
			matches: containsAny("location", "address", "city", "where do you live"),
			value:   func(db *databank.Databank) string { return db.PersonalInfo.Location },
			source:  SourcePersonalInfo,
		},
		{
			matches: containsAny("linkedin"),
			value:   func(db *databank.Databank) string { return db.PersonalInfo.LinkedIn },
			source:  SourcePersonalInfo,
		},
		{
			matches: containsAny("salary", "compensation", "pay", "wage", "expected"),
			value:   func(db *databank.Databank) string { return db.Salary.ExpectedSalary },
			source:  SourceSalary,
		},
		{
			matches: containsAny("work in uk", "eligible to work", "right to work", "authorization"),
			value:   func(db *databank.Databank) string { return db.WorkAuthorization.EligibleToWorkUK },
			source:  SourceWorkAuth,
		},
		{
			matches: containsAny("sponsor", "visa"),
			value:   func(db *databank.Databank) string { return db.WorkAuthorization.RequireSponsorship },
			source:  SourceWorkAuth,
		},
		{
			matches: containsAny("notice period", "start date", "when can you start"),
			value:   func(db *databank.Databank) string { return db.WorkAuthorization.NoticePeriod },
			source:  SourceWorkAuth,
		},
	}
}

func containsAny(keywords ...string) func(q string) bool {
	return func(q string) bool {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				return true
			}
		}
		return false
	}
}

// firstName returns the first space-separated token of a full name.
func firstName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// lastName returns everything after the first token, joined by spaces.
func lastName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}
