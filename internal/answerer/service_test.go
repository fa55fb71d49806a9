package answerer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar/internal/databank"
	"jobradar/internal/extractor"
	"jobradar/internal/matcher"
	"jobradar/internal/metrics"
)

func newTestService(m *metrics.Metrics) *Service {
	return New(extractor.Default(), matcher.New(matcher.DefaultConfig()), m)
}

func testDatabank() *databank.Databank {
	db := databank.NewEmpty()
	db.PersonalInfo.FullName = "Jane Doe"
	db.PersonalInfo.Email = "jane@example.com"
	db.Questions.Set("Why are you interested in this role?", "The problem space excites me.")
	return db
}

func TestAnswerPage_MixedSources(t *testing.T) {
	svc := newTestService(nil)
	page := "Why are you interested in this role? First Name Email"

	result := svc.AnswerPage(context.Background(), page, testDatabank())

	require.Len(t, result.Answers, 3)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 3, result.FromDatabank)
	assert.Zero(t, result.NotFound)

	// Extraction order survives concurrent resolution.
	assert.Equal(t, "Why are you interested in this role?", result.Answers[0].Question)
	assert.Equal(t, "The problem space excites me.", result.Answers[0].Answer)
	assert.Equal(t, "databank", result.Answers[0].Source)
	assert.InDelta(t, 1.0, result.Answers[0].Confidence, 1e-9)

	assert.Equal(t, "First Name", result.Answers[1].Question)
	assert.Equal(t, "Jane", result.Answers[1].Answer)
	assert.Equal(t, "personal_info", result.Answers[1].Source)

	assert.Equal(t, "Email", result.Answers[2].Question)
	assert.Equal(t, "jane@example.com", result.Answers[2].Answer)
}

func TestAnswerPage_NotFoundGetsPlaceholder(t *testing.T) {
	svc := newTestService(nil)

	result := svc.AnswerPage(context.Background(), "Describe your proudest accomplishment", databank.NewEmpty())

	require.Len(t, result.Answers, 1)
	assert.Equal(t, NoAnswerPlaceholder, result.Answers[0].Answer)
	assert.Equal(t, "not_found", result.Answers[0].Source)
	assert.Zero(t, result.Answers[0].Confidence)
	assert.Equal(t, 1, result.NotFound)
	assert.Zero(t, result.FromDatabank)
}

func TestAnswerPage_NoQuestions(t *testing.T) {
	svc := newTestService(nil)

	result := svc.AnswerPage(context.Background(), "nothing interesting here", testDatabank())

	assert.NotNil(t, result.Answers)
	assert.Empty(t, result.Answers)
	assert.Equal(t, "No questions found on page", result.Message)
	assert.Zero(t, result.TotalQuestions)
}

func TestAnswerPage_UpdatesMetrics(t *testing.T) {
	m := metrics.NewMetrics()
	svc := newTestService(m)
	page := "Why are you interested in this role? Email Describe your proudest accomplishment"

	svc.AnswerPage(context.Background(), page, testDatabank())

	snap := m.GetSnapshot()
	assert.Equal(t, int64(1), snap.PagesParsed)
	assert.Equal(t, int64(3), snap.QuestionsExtracted)
	assert.Equal(t, int64(1), snap.AnswersFromDatabank)
	assert.Equal(t, int64(1), snap.AnswersFromProfile)
	assert.Equal(t, int64(1), snap.AnswersNotFound)
}

func TestAnswerPage_Deterministic(t *testing.T) {
	svc := newTestService(nil)
	page := "Why are you interested in this role? First Name Email Phone Number"
	db := testDatabank()

	first := svc.AnswerPage(context.Background(), page, db)
	second := svc.AnswerPage(context.Background(), page, db)

	assert.Equal(t, first, second)
}
