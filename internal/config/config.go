// Package config provides configuration loading and validation for the CLI and
// HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/eligibility"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/logging"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/ranking"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/recommender"
)

// Environment variables that override file values.
const (
	EnvDatabaseURL = "FYP_DATABASE_URL"
	EnvLogLevel    = "FYP_LOG_LEVEL"
	EnvLogFormat   = "FYP_LOG_FORMAT"
	EnvDataDir     = "FYP_DATA_DIR"
	EnvPort        = "FYP_PORT"
)

// Defaults applied by MergeWithDefaults.
const (
	DefaultDataDir   = "data"
	DefaultPort      = 5000
	DefaultLogLevel  = "info"
	DefaultLogFormat = logging.FormatConsole
)

// Weights are the scoring component weights. All zero means "use defaults".
type Weights struct {
	Interest float64 `json:"interest"`
	Skill    float64 `json:"skill"`
	Course   float64 `json:"course"`
}

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Paths
	Catalog      string `json:"catalog,omitempty"`       // Topic catalog JSON; generated knowledge base when empty
	CourseSkills string `json:"course_skills,omitempty"` // Course to skill table JSON; built-in table when empty
	DataDir      string `json:"data_dir,omitempty"`      // Directory for students, history and selections
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL connection URL; file storage when empty

	// Engine
	Weights            Weights `json:"weights"`
	MinRecommendations int     `json:"min_recommendations,omitempty"`   // Qualified count below which the fallback runs
	RelaxedCGPADelta   float64 `json:"relaxed_cgpa_delta,omitempty"`    // CGPA slack in relaxed mode
	RelaxedProficiency int     `json:"relaxed_proficiency,omitempty"`   // Proficiency tiers dropped in relaxed mode
	Materiality        float64 `json:"materiality,omitempty"`           // Minimum component value worth explaining
	OneClaimPerStudent *bool   `json:"one_claim_per_student,omitempty"` // Reject a second claim by the same student
	BatchConcurrency   int     `json:"batch_concurrency,omitempty"`     // Parallel students in batch mode

	// Behavior
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
	Port      int    `json:"port,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be a number: %w", EnvPort, err)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.MinRecommendations < 0 {
		return fmt.Errorf("config error: 'min_recommendations' must be non-negative")
	}
	if c.RelaxedCGPADelta < 0 {
		return fmt.Errorf("config error: 'relaxed_cgpa_delta' must be non-negative")
	}
	if c.RelaxedProficiency < 0 {
		return fmt.Errorf("config error: 'relaxed_proficiency' must be non-negative")
	}
	if c.Materiality < 0 || c.Materiality > 1 {
		return fmt.Errorf("config error: 'materiality' must be between 0 and 1")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Weights != (Weights{}) {
		if err := c.rankingWeights().Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.LogFormat != "" && !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("config error: unknown log format %q", c.LogFormat)
	}

	// Validate file paths exist (if specified)
	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}
	if c.CourseSkills != "" {
		if _, err := os.Stat(c.CourseSkills); os.IsNotExist(err) {
			return fmt.Errorf("config error: course skills file not found: %s", c.CourseSkills)
		}
	}

	return nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	engine := recommender.DefaultConfig()
	oneClaim := true
	return Config{
		DataDir: DefaultDataDir,
		Weights: Weights{
			Interest: engine.Weights.Interest,
			Skill:    engine.Weights.Skill,
			Course:   engine.Weights.Course,
		},
		MinRecommendations: engine.MinRecommendations,
		RelaxedCGPADelta:   engine.Relaxation.CGPADelta,
		RelaxedProficiency: engine.Relaxation.ProficiencyTiers,
		Materiality:        engine.Materiality,
		OneClaimPerStudent: &oneClaim,
		BatchConcurrency:   engine.BatchConcurrency,
		LogLevel:           DefaultLogLevel,
		LogFormat:          DefaultLogFormat,
		Port:               DefaultPort,
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.CourseSkills == "" {
		result.CourseSkills = defaults.CourseSkills
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.Weights == (Weights{}) {
		result.Weights = defaults.Weights
	}
	if result.MinRecommendations == 0 {
		result.MinRecommendations = defaults.MinRecommendations
	}
	if result.RelaxedCGPADelta == 0 {
		result.RelaxedCGPADelta = defaults.RelaxedCGPADelta
	}
	if result.RelaxedProficiency == 0 {
		result.RelaxedProficiency = defaults.RelaxedProficiency
	}
	if result.Materiality == 0 {
		result.Materiality = defaults.Materiality
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Pointer bools distinguish unset from false
	if result.OneClaimPerStudent == nil {
		result.OneClaimPerStudent = defaults.OneClaimPerStudent
	}

	return result
}

func (c *Config) rankingWeights() ranking.Weights {
	return ranking.Weights{Interest: c.Weights.Interest, Skill: c.Weights.Skill, Course: c.Weights.Course}
}

// Engine converts the configuration into recommender settings. Zero values
// fall back to the engine defaults.
func (c *Config) Engine() recommender.Config {
	cfg := recommender.DefaultConfig()
	if c.Weights != (Weights{}) {
		cfg.Weights = c.rankingWeights()
	}
	if c.MinRecommendations > 0 {
		cfg.MinRecommendations = c.MinRecommendations
	}
	if c.RelaxedCGPADelta > 0 || c.RelaxedProficiency > 0 {
		cfg.Relaxation = eligibility.Relaxation{
			ProficiencyTiers: c.RelaxedProficiency,
			CGPADelta:        c.RelaxedCGPADelta,
		}
	}
	if c.Materiality > 0 {
		cfg.Materiality = c.Materiality
	}
	if c.BatchConcurrency > 0 {
		cfg.BatchConcurrency = c.BatchConcurrency
	}
	return cfg
}

// ClaimPerStudent reports whether a student may hold only one topic.
func (c *Config) ClaimPerStudent() bool {
	return c.OneClaimPerStudent == nil || *c.OneClaimPerStudent
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	if c.LogLevel != "" {
		lc.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		lc.Format = c.LogFormat
	}
	return lc
}
