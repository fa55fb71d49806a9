// Package answerer orchestrates one page pass: extract the questions, then
// resolve each one against a databank snapshot.
package answerer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jobradar/internal/databank"
	"jobradar/internal/extractor"
	"jobradar/internal/matcher"
	"jobradar/internal/metrics"
)

// NoAnswerPlaceholder is what goes on the wire for unresolved questions, so
// the user sees a prompt to grow their databank instead of a blank field.
const NoAnswerPlaceholder = "[No answer in databank - add this question to Q&A Databank]"

const resolveConcurrency = 4

// Answer is one resolved question in the wire shape shared with the remote
// backend.
type Answer struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
}

// PageAnswers is the full result of answering one page.
type PageAnswers struct {
	Answers        []Answer `json:"answers"`
	TotalQuestions int      `json:"total_questions"`
	FromDatabank   int      `json:"from_databank"`
	NotFound       int      `json:"not_found"`
	Message        string   `json:"message,omitempty"`
}

// Service wires the extractor and matcher together.
type Service struct {
	extractor *extractor.Extractor
	matcher   *matcher.Matcher
	metrics   *metrics.Metrics
}

// New creates the answering service. metrics may be nil.
func New(ex *extractor.Extractor, ma *matcher.Matcher, me *metrics.Metrics) *Service {
	return &Service{extractor: ex, matcher: ma, metrics: me}
}

// Extract runs only the extraction half, for debug surfaces. It does not
// touch the metrics counters.
func (s *Service) Extract(pageText string) []string {
	return s.extractor.Extract(pageText)
}

// AnswerPage extracts questions from pageText and resolves each against db.
// Resolutions are independent pure calls, so they run concurrently; the
// answer order still follows extraction order.
func (s *Service) AnswerPage(ctx context.Context, pageText string, db *databank.Databank) *PageAnswers {
	questions := s.extractor.Extract(pageText)
	if s.metrics != nil {
		s.metrics.RecordPageParsed(len(questions))
	}

	if len(questions) == 0 {
		return &PageAnswers{
			Answers: []Answer{},
			Message: "No questions found on page",
		}
	}

	answers := make([]Answer, len(questions))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, q := range questions {
		i, q := i, q
		g.Go(func() error {
			answers[i] = toAnswer(q, s.matcher.Resolve(q, db))
			return nil
		})
	}
	// Resolutions never fail; Wait only synchronizes.
	_ = g.Wait()

	result := &PageAnswers{
		Answers:        answers,
		TotalQuestions: len(answers),
	}
	for _, a := range answers {
		if s.metrics != nil {
			s.metrics.RecordAnswer(a.Source)
		}
		if a.Source == string(matcher.SourceNotFound) {
			result.NotFound++
		} else {
			result.FromDatabank++
		}
	}
	return result
}

func toAnswer(question string, res matcher.Result) Answer {
	a := Answer{
		Question:   question,
		Answer:     res.Answer,
		Source:     string(res.Source),
		Confidence: res.Score,
	}
	if res.Source == matcher.SourceNotFound {
		a.Answer = NoAnswerPlaceholder
	}
	return a
}
