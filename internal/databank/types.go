package databank

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Databank is the user's persisted store of personal facts and prior
// question/answer pairs. The engine only reads it; mutation happens through
// the settings surface (import) and the file store.
type Databank struct {
	Version           string            `yaml:"version" json:"version"`
	LastUpdated       string            `yaml:"last_updated" json:"last_updated"`
	PersonalInfo      PersonalInfo      `yaml:"personal_info" json:"personal_info"`
	Questions         QuestionSet       `yaml:"questions" json:"questions"`
	Salary            Salary            `yaml:"salary" json:"salary"`
	WorkAuthorization WorkAuthorization `yaml:"work_authorization" json:"work_authorization"`
}

// PersonalInfo holds the fixed structured identity fields. All fields are
// optional; an empty string means the user has not filled it in.
type PersonalInfo struct {
	FullName string `yaml:"full_name,omitempty" json:"full_name,omitempty"`
	Email    string `yaml:"email,omitempty" json:"email,omitempty"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
}

// Salary holds compensation expectations.
type Salary struct {
	ExpectedSalary string `yaml:"expected_salary,omitempty" json:"expected_salary,omitempty"`
	CurrentSalary  string `yaml:"current_salary,omitempty" json:"current_salary,omitempty"`
}

// WorkAuthorization holds right-to-work answers.
type WorkAuthorization struct {
	EligibleToWorkUK   string `yaml:"eligible_to_work_uk,omitempty" json:"eligible_to_work_uk,omitempty"`
	RequireSponsorship string `yaml:"require_sponsorship,omitempty" json:"require_sponsorship,omitempty"`
	NoticePeriod       string `yaml:"notice_period,omitempty" json:"notice_period,omitempty"`
}

// QA is one stored question and its answer.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewEmpty returns a databank with no entries, stamped with the current
// schema version and timestamp.
func NewEmpty() *Databank {
	return &Databank{
		Version:     "1.0",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// QuestionSet is a string-to-string mapping that preserves insertion order.
// The matcher's tie-break contract depends on stable enumeration order, so
// the set keeps YAML document order on load and append order on Set.
type QuestionSet struct {
	keys    []string
	answers map[string]string
}

// Set stores an answer for a question. New questions are appended; existing
// ones are updated in place without changing their position.
func (qs *QuestionSet) Set(question, answer string) {
	if qs.answers == nil {
		qs.answers = make(map[string]string)
	}
	if _, ok := qs.answers[question]; !ok {
		qs.keys = append(qs.keys, question)
	}
	qs.answers[question] = answer
}

// Get returns the stored answer and whether the question exists.
func (qs *QuestionSet) Get(question string) (string, bool) {
	a, ok := qs.answers[question]
	return a, ok
}

// Delete removes a question, preserving the order of the rest.
func (qs *QuestionSet) Delete(question string) {
	if _, ok := qs.answers[question]; !ok {
		return
	}
	delete(qs.answers, question)
	for i, k := range qs.keys {
		if k == question {
			qs.keys = append(qs.keys[:i], qs.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored questions.
func (qs *QuestionSet) Len() int {
	return len(qs.keys)
}

// Pairs returns all entries in insertion order.
func (qs *QuestionSet) Pairs() []QA {
	pairs := make([]QA, 0, len(qs.keys))
	for _, k := range qs.keys {
		pairs = append(pairs, QA{Question: k, Answer: qs.answers[k]})
	}
	return pairs
}

// UnmarshalYAML decodes a YAML mapping, keeping document order.
func (qs *QuestionSet) UnmarshalYAML(node *yaml.Node) error {
	*qs = QuestionSet{}
	if node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return eris.New("databank: questions must be a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var q, a string
		if err := node.Content[i].Decode(&q); err != nil {
			return eris.Wrap(err, "databank: decode question key")
		}
		if err := node.Content[i+1].Decode(&a); err != nil {
			return eris.Wrapf(err, "databank: decode answer for %q", q)
		}
		qs.Set(q, a)
	}
	return nil
}

// MarshalYAML emits the set as a mapping in insertion order.
func (qs QuestionSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range qs.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: qs.answers[k]},
		)
	}
	return node, nil
}

// MarshalJSON emits the set as a JSON object in insertion order.
func (qs QuestionSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range qs.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(qs.answers[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object via the token stream so key order
// survives the round trip (encoding/json maps do not preserve it).
func (qs *QuestionSet) UnmarshalJSON(data []byte) error {
	*qs = QuestionSet{}
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return eris.Wrap(err, "databank: decode questions")
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return eris.New("databank: questions must be an object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return eris.Wrap(err, "databank: decode question key")
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return eris.Wrapf(err, "databank: decode answer for %q", key)
		}
		var answer string
		if string(raw) != "null" {
			if err := json.Unmarshal(raw, &answer); err != nil {
				return eris.Wrapf(err, "databank: answer for %q must be a string", key)
			}
		}
		qs.Set(key, answer)
	}
	return nil
}
