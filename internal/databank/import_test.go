package databank

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_ValidExport(t *testing.T) {
	data := []byte(`{
		"version": "0.9",
		"personal_info": {"full_name": "Jane Doe", "email": "jane@example.com"},
		"questions": {"why this job": "mission", "notice period": "1 month"},
		"salary": {"expected_salary": "£65,000"},
		"work_authorization": {"eligible_to_work_uk": "Yes"}
	}`)

	db, err := Import(data)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", db.PersonalInfo.FullName)
	assert.Equal(t, "£65,000", db.Salary.ExpectedSalary)
	assert.Equal(t, "Yes", db.WorkAuthorization.EligibleToWorkUK)

	pairs := db.Questions.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, "why this job", pairs[0].Question)

	// Import always restamps the schema version and timestamp.
	assert.Equal(t, "1.0", db.Version)
	assert.NotEmpty(t, db.LastUpdated)
}

func TestImport_MissingQuestions(t *testing.T) {
	_, err := Import([]byte(`{"personal_info": {"email": "a@b.com"}}`))

	assert.True(t, errors.Is(err, ErrInvalidDatabank))
}

func TestImport_QuestionsNotAnObject(t *testing.T) {
	_, err := Import([]byte(`{"questions": ["not", "an", "object"]}`))

	assert.True(t, errors.Is(err, ErrInvalidDatabank))
}

func TestImport_MalformedJSON(t *testing.T) {
	_, err := Import([]byte(`{"questions": {`))

	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidDatabank))
}

func TestImport_AbsentPartitionsAreEmpty(t *testing.T) {
	db, err := Import([]byte(`{"questions": {}}`))

	require.NoError(t, err)
	assert.Empty(t, db.PersonalInfo.Email)
	assert.Empty(t, db.Salary.ExpectedSalary)
	assert.Empty(t, db.WorkAuthorization.NoticePeriod)
}

func TestExportJSON_RoundTrip(t *testing.T) {
	db := NewEmpty()
	db.PersonalInfo.FullName = "Jane Doe"
	db.Questions.Set("zulu", "z")
	db.Questions.Set("alpha", "a")

	data, err := ExportJSON(db)
	require.NoError(t, err)

	back, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", back.PersonalInfo.FullName)
	assert.Equal(t, db.Questions.Pairs(), back.Questions.Pairs())
}

func TestExportJSON_IsIndented(t *testing.T) {
	data, err := ExportJSON(NewEmpty())

	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), "\n  ")
}

func TestStats(t *testing.T) {
	db := NewEmpty()
	db.PersonalInfo.FullName = "Jane Doe"
	db.PersonalInfo.Email = "jane@example.com"
	db.Salary.ExpectedSalary = "£65,000"
	db.WorkAuthorization.NoticePeriod = "1 month"
	db.Questions.Set("q1", "a1")
	db.Questions.Set("q2", "a2")
	db.Questions.Set("q3", "a3")

	st := Stats(db)

	assert.Equal(t, PartitionStats{
		PersonalInfo:      2,
		Questions:         3,
		Salary:            1,
		WorkAuthorization: 1,
	}, st)
}
