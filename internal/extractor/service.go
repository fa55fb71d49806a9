// Package extractor derives candidate application-form questions from raw
// page text. It combines interrogative regex patterns with a scan for
// literal form-field labels, filters out job-description prose, and returns
// a deduplicated list capped at the configured maximum.
package extractor

import (
	"regexp"
	"strings"
)

// Extractor extracts questions from page text. It is stateless after
// construction and safe for concurrent use.
type Extractor struct {
	cfg      Config
	patterns []*regexp.Regexp
}

// New compiles the vocabulary into an extractor. Patterns are compiled
// case-insensitively; Go's RE2 engine guarantees linear-time matching, so
// hostile page text cannot trigger catastrophic backtracking.
func New(cfg Config) (*Extractor, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	patterns := make([]*regexp.Regexp, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		re, err := regexp.Compile("(?i)" + p.Expr)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return &Extractor{cfg: cfg, patterns: patterns}, nil
}

// Default returns an extractor with the built-in vocabulary.
func Default() *Extractor {
	e, err := New(DefaultConfig())
	if err != nil {
		// The default vocabulary is covered by tests; a compile failure
		// here is a programming error.
		panic(err)
	}
	return e
}

// Extract returns the ordered, deduplicated questions found in pageText,
// at most MaxQuestions of them. Interrogative matches come first, in
// pattern-priority then text order, followed by literal form-field labels.
// Empty or matchless input yields an empty result, never an error.
func (e *Extractor) Extract(pageText string) []string {
	if strings.TrimSpace(pageText) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var questions []string
	add := func(q string) {
		q = strings.TrimSpace(q)
		key := strings.ToLower(q)
		if q == "" || seen[key] {
			return
		}
		seen[key] = true
		questions = append(questions, q)
	}

	for _, re := range e.patterns {
		for _, match := range re.FindAllString(pageText, -1) {
			if e.isJobDescription(match) {
				continue
			}
			add(match)
		}
	}

	textLower := strings.ToLower(pageText)
	for _, field := range e.cfg.FormFields {
		if strings.Contains(textLower, strings.ToLower(field)) {
			add(field)
		}
	}

	if len(questions) > e.cfg.MaxQuestions {
		questions = questions[:e.cfg.MaxQuestions]
	}
	return questions
}

// isJobDescription reports whether text reads like employer-requirement
// prose rather than a question addressed to the applicant.
func (e *Extractor) isJobDescription(text string) bool {
	textLower := strings.ToLower(text)
	for _, phrase := range e.cfg.JobDescriptionPhrases {
		if strings.Contains(textLower, phrase) {
			return true
		}
	}
	return false
}
