package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/gpublas/gpublas/internal/logger"
)

// Config represents the gpublas configuration file
// (~/.config/gpublas/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Benchmark defaults
	BenchSize   *int64 `yaml:"bench_size"`
	BenchRepeat *int64 `yaml:"bench_repeat"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gpublas", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or fails to parse.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyBenchConfig applies config file defaults to bench command variables
// when the corresponding CLI flag was not explicitly set.
func applyBenchConfig(c *cli.Command, cfg Config, size, repeat *int64) {
	if cfg.BenchSize != nil && !c.IsSet("size") {
		*size = *cfg.BenchSize
	}
	if cfg.BenchRepeat != nil && !c.IsSet("repeat") {
		*repeat = *cfg.BenchRepeat
	}
}

// newLogger builds the process logger from flags with config file fallback.
func newLogger(c *cli.Command, cfg Config, level, format string) logger.Logger {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		level = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		format = cfg.LogFormat
	}
	if format == "json" {
		return logger.JSON(os.Stderr, logger.ParseLevel(level))
	}
	return logger.Text(os.Stderr, logger.ParseLevel(level))
}
