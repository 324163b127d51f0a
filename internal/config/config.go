// Package config loads the pipeline configuration from YAML.
//
// Every option has a default, so an empty file (or no file at all) is a
// valid configuration: plain k-mer matching, no background subtraction,
// double-strand counting and the empirical word-length window.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/aria-lang/afdist/internal/curve"
	"github.com/aria-lang/afdist/internal/estimate"
	"github.com/aria-lang/afdist/internal/kmer"
)

// Config is the full set of pipeline options.
type Config struct {
	WordMatchingStrategy string `yaml:"word_matching_strategy" json:"word_matching_strategy"`
	BackgroundPolicy     string `yaml:"background_policy" json:"background_policy"`
	DoubleStrand         bool   `yaml:"double_strand" json:"double_strand"`
	UseEmpiricalKBounds  bool   `yaml:"use_empirical_k_bounds" json:"use_empirical_k_bounds"`

	// Explicit estimation window, used when UseEmpiricalKBounds is false.
	KMin int `yaml:"k_min" json:"k_min,omitempty"`
	KMax int `yaml:"k_max" json:"k_max,omitempty"`

	// Word lengths of the display curve. Empty means the estimation window.
	KValuesToReport []int `yaml:"k_values_to_report" json:"k_values_to_report,omitempty"`

	MotifSet string         `yaml:"motif_set" json:"motif_set,omitempty"`
	Motifs   []string       `yaml:"motifs" json:"motifs,omitempty"`
	Masks    map[int]string `yaml:"masks" json:"masks,omitempty"`
	MaskSeed *int64         `yaml:"mask_seed" json:"mask_seed,omitempty"`

	Fit      string `yaml:"fit" json:"fit,omitempty"`
	Workers  int    `yaml:"workers" json:"workers,omitempty"`
	LogLevel string `yaml:"log_level" json:"log_level,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		WordMatchingStrategy: kmer.StrategyPlain,
		BackgroundPolicy:     curve.None.String(),
		DoubleStrand:         true,
		UseEmpiricalKBounds:  true,
		Fit:                  estimate.Boundary.String(),
		LogLevel:             "info",
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of the defaults. Unknown keys are
// rejected.
func Parse(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MatcherOptions extracts the word-matching options.
func (c Config) MatcherOptions() kmer.MatcherOptions {
	return kmer.MatcherOptions{
		Strategy: c.WordMatchingStrategy,
		MotifSet: c.MotifSet,
		Motifs:   c.Motifs,
		Masks:    c.Masks,
		MaskSeed: c.MaskSeed,
	}
}

// Validate checks names and numeric bounds. Strategy and policy errors are
// returned as kmer.UnknownStrategyError and
// curve.UnknownBackgroundPolicyError.
func (c Config) Validate() error {
	if _, err := kmer.NewMatcher(c.MatcherOptions()); err != nil {
		return err
	}
	if _, err := curve.ParsePolicy(c.BackgroundPolicy); err != nil {
		return err
	}
	if _, err := estimate.ParseFitMode(c.Fit); err != nil {
		return err
	}
	if !c.UseEmpiricalKBounds {
		if c.KMin < 1 {
			return fmt.Errorf("k_min: must be at least 1 when use_empirical_k_bounds is false, got %d", c.KMin)
		}
		if c.KMax <= c.KMin {
			return fmt.Errorf("k_max: must be greater than k_min (%d), got %d", c.KMin, c.KMax)
		}
	}
	for i, k := range c.KValuesToReport {
		if k < 1 {
			return fmt.Errorf("k_values_to_report[%d]: must be at least 1, got %d", i, k)
		}
		if i > 0 && k <= c.KValuesToReport[i-1] {
			return fmt.Errorf("k_values_to_report[%d]: values must be strictly increasing", i)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers: must not be negative, got %d", c.Workers)
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	return nil
}

// NewLogger builds a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
