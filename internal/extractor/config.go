package extractor

import (
	"os"
	"regexp"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Pattern is one interrogative regular expression. Patterns run in list
// order, which doubles as their priority order.
type Pattern struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// Config is the extraction vocabulary: interrogative patterns, the
// job-description phrase filter, the literal form-field labels and the
// output cap. Injected so tuning does not touch the algorithm.
type Config struct {
	Patterns              []Pattern `yaml:"patterns"`
	JobDescriptionPhrases []string  `yaml:"job_description_phrases"`
	FormFields            []string  `yaml:"form_fields"`
	MaxQuestions          int       `yaml:"max_questions"`
}

// DefaultConfig returns the built-in vocabulary. The infix length bounds on
// each pattern reject both short noise matches and runaway matches spanning
// unrelated sentences.
func DefaultConfig() Config {
	return Config{
		Patterns: []Pattern{
			{Name: "why_motivation", Expr: `Why (?:are you|do you want)[^.?\n]{10,100}\?`},
			{Name: "what_your", Expr: `What (?:is your|are your)[^.?\n]{5,80}\?`},
			{Name: "do_you", Expr: `Do you (?:have|require|need)[^.?\n]{5,60}\?`},
			{Name: "are_you", Expr: `Are you (?:authorized|eligible|willing)[^.?\n]{5,60}\?`},
			{Name: "tell_us_about", Expr: `Tell us about (?:yourself|your)[^.?\n]{5,60}`},
			{Name: "describe_your", Expr: `Describe your [^.?\n]{5,60}`},
			{Name: "please_provide", Expr: `Please (?:provide|describe|explain) [^.?\n]{5,60}`},
		},
		JobDescriptionPhrases: []string{
			"experience with", "experience in", "knowledge of", "proficiency in",
			"ability to", "responsible for", "you will", "we are looking",
			"the ideal candidate", "requirements", "qualifications",
			"must have", "should have", "preferred", "required",
			"years of experience", "degree in", "background in",
			"skills in", "familiarity with", "understanding of",
		},
		FormFields: []string{
			"First Name", "Last Name", "Full Name", "Email", "Email Address",
			"Phone", "Phone Number", "Mobile Number", "Address", "City",
			"Postcode", "Post Code", "Zip Code", "Country", "LinkedIn",
			"Expected Salary", "Current Salary", "Notice Period", "Start Date",
			"Cover Letter", "Resume", "CV",
		},
		MaxQuestions: 15,
	}
}

// LoadConfig reads a vocabulary file. An empty path yields the defaults.
// Fields left out of the file fall back to their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, eris.Wrapf(err, "extractor: read vocabulary %s", path)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, eris.Wrapf(err, "extractor: parse vocabulary %s", path)
	}
	if len(file.Patterns) > 0 {
		cfg.Patterns = file.Patterns
	}
	if len(file.JobDescriptionPhrases) > 0 {
		cfg.JobDescriptionPhrases = file.JobDescriptionPhrases
	}
	if len(file.FormFields) > 0 {
		cfg.FormFields = file.FormFields
	}
	if file.MaxQuestions != 0 {
		cfg.MaxQuestions = file.MaxQuestions
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, eris.Wrapf(err, "extractor: invalid vocabulary %s", path)
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.MaxQuestions <= 0 {
		return eris.New("max_questions must be positive")
	}
	if len(cfg.Patterns) == 0 {
		return eris.New("at least one pattern is required")
	}
	for _, p := range cfg.Patterns {
		if p.Expr == "" {
			return eris.Errorf("pattern %q has an empty expression", p.Name)
		}
		if _, err := regexp.Compile("(?i)" + p.Expr); err != nil {
			return eris.Wrapf(err, "pattern %q does not compile", p.Name)
		}
	}
	return nil
}
