// Package config loads solver settings from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/eval"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
	"gopkg.in/yaml.v3"
)

// ErrInvalidNumbering is returned by Validate for a numbering that is not
// twenty unique positive numbers.
var ErrInvalidNumbering = board.ErrInvalidNumbering

// #region types
// Config is the full solver configuration.
type Config struct {
	DBPath    string        `yaml:"db_path"`
	GRPCAddr  string        `yaml:"grpc_addr"`
	Numbering []int         `yaml:"numbering"`
	Display   DisplayConfig `yaml:"display"`
	Eval      EvalConfig    `yaml:"eval"`
	Logging   LoggingConfig `yaml:"logging"`
}

// DisplayConfig controls how values are rendered.
type DisplayConfig struct {
	Precision int `yaml:"precision"`
}

// EvalConfig selects evaluator rules.
type EvalConfig struct {
	Reversal string `yaml:"reversal"` // "decimal" | "integer"
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | console
}
// #endregion types

// #region defaults
// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DBPath:    "dartboard.db",
		GRPCAddr:  "localhost:50061",
		Numbering: append([]int(nil), board.StandardNumbering[:]...),
		Display:   DisplayConfig{Precision: rational.DisplayPrecision},
		Eval:      EvalConfig{Reversal: string(eval.ReverseDecimal)},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
	}
}
// #endregion defaults

// #region load
// Load reads path over the defaults and applies environment overrides. An
// empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DARTBOARD_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("DARTBOARD_ADDR"); v != "" {
		c.GRPCAddr = v
	}
	if v := os.Getenv("DARTBOARD_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}
// #endregion load

// #region validate
// Validate checks the numbering, precision and reversal rule.
func (c Config) Validate() error {
	if _, err := board.NumberingFromSlice(c.Numbering); err != nil {
		return fmt.Errorf("config numbering: %w", err)
	}
	if c.Display.Precision < 0 || c.Display.Precision > 12 {
		return fmt.Errorf("config display.precision %d out of range [0, 12]", c.Display.Precision)
	}
	switch eval.Reversal(c.Eval.Reversal) {
	case eval.ReverseDecimal, eval.ReverseTruncate:
	default:
		return fmt.Errorf("config eval.reversal %q: want %q or %q", c.Eval.Reversal, eval.ReverseDecimal, eval.ReverseTruncate)
	}
	return nil
}
// #endregion validate

// #region accessors
// BoardNumbering returns the numbering as a fixed array. Call after Validate.
func (c Config) BoardNumbering() board.Numbering {
	var n board.Numbering
	copy(n[:], c.Numbering)
	return n
}

// EvaluatorConfig returns the evaluator settings.
func (c Config) EvaluatorConfig() eval.Config {
	return eval.Config{Precision: c.Display.Precision, Reversal: eval.Reversal(c.Eval.Reversal)}
}
// #endregion accessors
