// =============================================================================
// Financial Statements Generator - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file and
// initializes the global logger. Every setting has a built-in default so the
// tool runs out of the box; a missing config file is not an error.
//
// CONFIGURATION FILE (config.yaml):
//   template_dir:       ./templates
//   output_dir:         ./output
//   archive_dir:        ./archive
//   archive_inputs:     false
//   output_name_format: "financial_statements_{timestamp}_{uuid}.xlsx"
//   validation_policy:  lenient        # or: strict
//   log:
//     level:  info
//     format: console                  # or: json
//
// =============================================================================

package config

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Validation policies. Lenient repairs missing required line items with
// zeroed placeholders and surfaces every issue on the Errors sheet; strict
// aborts before rendering when any required key is unusable.
const (
	PolicyLenient = "lenient"
	PolicyStrict  = "strict"
)

// Config holds the full application configuration.
type Config struct {
	// TemplateDir is where the blank input template is written by the
	// template command.
	TemplateDir string `yaml:"template_dir"`

	// OutputDir is where generated statement workbooks are placed.
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir receives consumed input workbooks after a successful run
	// when ArchiveInputs is set.
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveInputs moves the input workbook into ArchiveDir on success.
	ArchiveInputs bool `yaml:"archive_inputs"`

	// OutputNameFormat names the generated workbook. Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - YYYYMMDD_HHMMSS
	//   {date}      - YYYYMMDD
	//   {original}  - input file name without extension
	OutputNameFormat string `yaml:"output_name_format"`

	// ValidationPolicy is "lenient" (default) or "strict".
	ValidationPolicy string `yaml:"validation_policy"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TemplateDir:      "./templates",
		OutputDir:        "./output",
		ArchiveDir:       "./archive",
		ArchiveInputs:    false,
		OutputNameFormat: "financial_statements_{timestamp}_{uuid}.xlsx",
		ValidationPolicy: PolicyLenient,
		Log:              LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads the configuration file at path, layered over the defaults.
// A missing file returns the defaults unchanged; a malformed file is an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, eris.Wrap(err, "config: read file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrap(err, "config: parse yaml")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.ValidationPolicy {
	case PolicyLenient, PolicyStrict:
	default:
		return eris.Errorf("config: unknown validation_policy %q", c.ValidationPolicy)
	}
	return nil
}

// InitLogger builds the global zap logger from the log configuration and
// installs it with zap.ReplaceGlobals.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
