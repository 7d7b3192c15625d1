package project

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project file looked up by FindConfig.
const ConfigFileName = "contentaudit.toml"

// ErrConfigNotFound is returned by LoadNearest when no project file exists
// and by Load when an explicit path does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// Config is the audit configuration. Zero-valued fields are never used
// directly: Load starts from Defaults and overlays the file on top.
type Config struct {
	DataRoot string   `toml:"data_root" yaml:"data_root" validate:"required"`
	Courses  []string `toml:"courses" yaml:"courses" validate:"required,min=1,dive,required"`

	// Sections lists the allowed section codes per course.
	// A course with no entry is not section-checked.
	Sections map[string][]string `toml:"sections" yaml:"sections"`

	Difficulties []string `toml:"difficulties" yaml:"difficulties" validate:"required,min=1"`
	SkillLevels  []string `toml:"skill_levels" yaml:"skill_levels" validate:"required,min=1"`

	// Placeholders are matched case-insensitively as substrings of question
	// and explanation; QuestionPlaceholders apply to the question only.
	Placeholders         []string `toml:"placeholders" yaml:"placeholders"`
	QuestionPlaceholders []string `toml:"question_placeholders" yaml:"question_placeholders"`
	// AIArtifacts are case-insensitive regular expressions matched against explanations.
	AIArtifacts []string `toml:"ai_artifacts" yaml:"ai_artifacts" validate:"dive,regexp"`

	Extensions      []string `toml:"extensions" yaml:"extensions" validate:"required,min=1,dive,startswith=."`
	ExcludeSuffixes []string `toml:"exclude_suffixes" yaml:"exclude_suffixes"`

	MinSeverity string `toml:"min_severity" yaml:"min_severity" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL low medium high critical"`
	Limit       int    `toml:"limit" yaml:"limit" validate:"gte=0"`
	Jobs        int    `toml:"jobs" yaml:"jobs" validate:"gte=0"`
	// CacheDir enables the extraction cache when non-empty.
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`

	Thresholds Thresholds `toml:"thresholds" yaml:"thresholds"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Thresholds are the tunable numeric constants of the rule engine.
type Thresholds struct {
	MinOptions int `toml:"min_options" yaml:"min_options" validate:"gte=1"`
	MaxOptions int `toml:"max_options" yaml:"max_options" validate:"gtefield=MinOptions"`

	QuestionTooShort int `toml:"question_too_short" yaml:"question_too_short" validate:"gt=0"`
	QuestionShort    int `toml:"question_short" yaml:"question_short" validate:"gtefield=QuestionTooShort"`
	QuestionLong     int `toml:"question_long" yaml:"question_long" validate:"gt=0"`
	ExplanationMin   int `toml:"explanation_min" yaml:"explanation_min" validate:"gt=0"`
	ExplanationLong  int `toml:"explanation_long" yaml:"explanation_long" validate:"gt=0"`
	// QuestionPunctMin is the length above which a question is expected to end in punctuation.
	QuestionPunctMin int `toml:"question_punct_min" yaml:"question_punct_min" validate:"gte=0"`
	OptionPunctMin   int `toml:"option_punct_min" yaml:"option_punct_min" validate:"gte=0"`

	StandoutRatio  float64 `toml:"standout_ratio" yaml:"standout_ratio" validate:"gt=0"`
	StandoutMinLen int     `toml:"standout_min_len" yaml:"standout_min_len" validate:"gte=0"`

	SimilarRatio      float64 `toml:"similar_ratio" yaml:"similar_ratio" validate:"gt=0,lte=1"`
	SimilarMinLen     int     `toml:"similar_min_len" yaml:"similar_min_len" validate:"gte=0"`
	NearDupOptionMin  int     `toml:"near_dup_option_min" yaml:"near_dup_option_min" validate:"gte=0"`
	DuplicateTextMin  int     `toml:"duplicate_text_min" yaml:"duplicate_text_min" validate:"gte=0"`
	PrefixLen         int     `toml:"prefix_len" yaml:"prefix_len" validate:"gt=0"`
	PrefixMinGroup    int     `toml:"prefix_min_group" yaml:"prefix_min_group" validate:"gte=2"`
	BiasMinSample     int     `toml:"bias_min_sample" yaml:"bias_min_sample" validate:"gt=0"`
	BiasHighRatio     float64 `toml:"bias_high_ratio" yaml:"bias_high_ratio" validate:"gt=0,lte=1"`
	BiasHighMinFile   int     `toml:"bias_high_min_records" yaml:"bias_high_min_records" validate:"gt=0"`
	BiasMediumRatio   float64 `toml:"bias_medium_ratio" yaml:"bias_medium_ratio" validate:"gt=0,lte=1"`
	BiasMediumMinFile int     `toml:"bias_medium_min_records" yaml:"bias_medium_min_records" validate:"gt=0"`

	DisplayCap int `toml:"display_cap" yaml:"display_cap" validate:"gt=0"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataRoot: filepath.Join("src", "data"),
		Courses:  []string{"cpa", "ea", "cma", "cia", "cisa", "cfp"},
		Sections: map[string][]string{
			"cpa":  {"FAR", "AUD", "REG", "BAR", "ISC", "TCP", "PREP"},
			"ea":   {"SEE1", "SEE2", "SEE3"},
			"cma":  {"CMA1", "CMA2"},
			"cia":  {"CIA1", "CIA2", "CIA3"},
			"cisa": {"CISA1", "CISA2", "CISA3", "CISA4", "CISA5"},
			"cfp":  {"CFP-PCR", "CFP-GEN", "CFP-RISK", "CFP-INV", "CFP-TAX", "CFP-RET", "CFP-EST", "CFP-PSY"},
		},
		Difficulties: []string{"easy", "medium", "hard", "beginner", "moderate", "tough"},
		SkillLevels: []string{
			"Remembering", "Understanding", "Application", "Analysis", "Evaluation", "Synthesis",
			"remembering", "understanding", "application", "analysis", "evaluation", "synthesis",
			"Remember", "Understand", "Apply", "Analyze", "Evaluate", "Create",
			"Knowledge", "Comprehension",
		},
		Placeholders:         []string{"todo", "placeholder", "lorem ipsum", "fix me"},
		QuestionPlaceholders: []string{"xxx"},
		AIArtifacts: []string{
			`let me (reconsider|recalculate|verify|re-?read|re-?check|think)`,
			`wait[,.]{0,2}\s+(let me|i need to|actually|that'?s not)`,
			`on second thought`,
			`\bno wait\b`,
			`\bhmm+\b`,
			`actually,? (let me|i made an error)`,
		},
		Extensions:      []string{".ts"},
		ExcludeSuffixes: []string{"index.ts", ".d.ts"},
		Thresholds:      DefaultThresholds(),
	}
}

// DefaultThresholds returns the stock rule constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinOptions:        4,
		MaxOptions:        6,
		QuestionTooShort:  15,
		QuestionShort:     30,
		QuestionLong:      800,
		ExplanationMin:    20,
		ExplanationLong:   1500,
		QuestionPunctMin:  30,
		OptionPunctMin:    10,
		StandoutRatio:     3,
		StandoutMinLen:    50,
		SimilarRatio:      0.9,
		SimilarMinLen:     20,
		NearDupOptionMin:  2,
		DuplicateTextMin:  20,
		PrefixLen:         60,
		PrefixMinGroup:    3,
		BiasMinSample:     5,
		BiasHighRatio:     0.6,
		BiasHighMinFile:   10,
		BiasMediumRatio:   0.5,
		BiasMediumMinFile: 20,
		DisplayCap:        50,
	}
}

// Load reads a project file over Defaults and validates the result.
// Files ending in .yaml or .yml are decoded as YAML, everything else as TOML.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return Config{}, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undec := meta.Undecoded(); len(undec) > 0 {
			return Config{}, fmt.Errorf("%s: unknown key %q", path, undec[0].String())
		}
	}

	cfg.Path = path
	if !filepath.IsAbs(cfg.DataRoot) {
		cfg.DataRoot = filepath.Join(filepath.Dir(path), cfg.DataRoot)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadNearest finds the project file from startDir upwards and loads it.
// Without a project file the defaults are returned together with ErrConfigNotFound,
// so callers can treat the missing file as non-fatal.
func LoadNearest(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Defaults(), ErrConfigNotFound
	}
	return Load(path)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks the struct constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SectionsFor returns the allow-list for course and whether one is configured.
func (c *Config) SectionsFor(course string) ([]string, bool) {
	s, ok := c.Sections[course]
	return s, ok && len(s) > 0
}

// HasCourse reports whether course is a configured course id.
func (c *Config) HasCourse(course string) bool {
	for _, known := range c.Courses {
		if known == course {
			return true
		}
	}
	return false
}

// FindConfig looks for ConfigFileName in startDir and then in each parent.
// ok is false when the filesystem root is reached without a match.
func FindConfig(startDir string) (path string, ok bool, err error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		switch _, statErr := os.Stat(candidate); {
		case statErr == nil:
			return candidate, true, nil
		case !errors.Is(statErr, os.ErrNotExist):
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
