package databank

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestQuestionSet_InsertionOrder(t *testing.T) {
	var qs QuestionSet
	qs.Set("first question", "a1")
	qs.Set("second question", "a2")
	qs.Set("third question", "a3")

	pairs := qs.Pairs()

	require.Len(t, pairs, 3)
	assert.Equal(t, "first question", pairs[0].Question)
	assert.Equal(t, "second question", pairs[1].Question)
	assert.Equal(t, "third question", pairs[2].Question)
}

func TestQuestionSet_UpdateKeepsPosition(t *testing.T) {
	var qs QuestionSet
	qs.Set("q1", "old")
	qs.Set("q2", "a2")
	qs.Set("q1", "new")

	pairs := qs.Pairs()

	require.Len(t, pairs, 2)
	assert.Equal(t, QA{Question: "q1", Answer: "new"}, pairs[0])
}

func TestQuestionSet_Delete(t *testing.T) {
	var qs QuestionSet
	qs.Set("q1", "a1")
	qs.Set("q2", "a2")
	qs.Set("q3", "a3")

	qs.Delete("q2")

	require.Equal(t, 2, qs.Len())
	pairs := qs.Pairs()
	assert.Equal(t, "q1", pairs[0].Question)
	assert.Equal(t, "q3", pairs[1].Question)

	_, ok := qs.Get("q2")
	assert.False(t, ok)
}

func TestQuestionSet_YAMLRoundTripPreservesOrder(t *testing.T) {
	src := []byte(`
zulu question: answer z
alpha question: answer a
mike question: answer m
`)

	var qs QuestionSet
	require.NoError(t, yaml.Unmarshal(src, &qs))

	pairs := qs.Pairs()
	require.Len(t, pairs, 3)
	assert.Equal(t, "zulu question", pairs[0].Question)
	assert.Equal(t, "alpha question", pairs[1].Question)
	assert.Equal(t, "mike question", pairs[2].Question)

	out, err := yaml.Marshal(qs)
	require.NoError(t, err)

	var back QuestionSet
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, pairs, back.Pairs())
}

func TestQuestionSet_YAMLNull(t *testing.T) {
	var db Databank
	require.NoError(t, yaml.Unmarshal([]byte("questions:\n"), &db))

	assert.Zero(t, db.Questions.Len())
}

func TestQuestionSet_YAMLRejectsSequence(t *testing.T) {
	var qs QuestionSet
	err := yaml.Unmarshal([]byte("- not\n- a\n- mapping\n"), &qs)

	assert.Error(t, err)
}

func TestQuestionSet_JSONRoundTripPreservesOrder(t *testing.T) {
	var qs QuestionSet
	qs.Set("zulu", "z")
	qs.Set("alpha", "a")
	qs.Set("mike", "m")

	data, err := json.Marshal(qs)
	require.NoError(t, err)
	assert.Equal(t, `{"zulu":"z","alpha":"a","mike":"m"}`, string(data))

	var back QuestionSet
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, qs.Pairs(), back.Pairs())
}

func TestQuestionSet_JSONNullAnswer(t *testing.T) {
	var qs QuestionSet
	require.NoError(t, json.Unmarshal([]byte(`{"q1":null,"q2":"a2"}`), &qs))

	a1, ok := qs.Get("q1")
	assert.True(t, ok)
	assert.Empty(t, a1)

	a2, _ := qs.Get("q2")
	assert.Equal(t, "a2", a2)
}

func TestQuestionSet_JSONRejectsNonObject(t *testing.T) {
	var qs QuestionSet
	assert.Error(t, json.Unmarshal([]byte(`["a","b"]`), &qs))
}

func TestQuestionSet_JSONRejectsNonStringAnswer(t *testing.T) {
	var qs QuestionSet
	assert.Error(t, json.Unmarshal([]byte(`{"q1":{"nested":true}}`), &qs))
}

func TestNewEmpty(t *testing.T) {
	db := NewEmpty()

	assert.Equal(t, "1.0", db.Version)
	assert.NotEmpty(t, db.LastUpdated)
	assert.Zero(t, db.Questions.Len())
}
