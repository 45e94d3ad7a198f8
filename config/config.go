// Package config loads runtime configuration for the cmd/ tools. The core
// library packages (scanner, parse, tokenstream, …) never read env vars or
// files directly; they take plain Go values, and config is what turns
// process environment or a YAML file into those values for a CLI's main.
package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config controls the ambient behavior of the cmd/ tools: how much they
// log, where they cache decoded tables, and whether they override the
// grammar's own trivia set.
type Config struct {
	LogLevel       string `envconfig:"LLX_LOG_LEVEL" yaml:"log_level"`
	TableCacheDir  string `envconfig:"LLX_TABLE_CACHE_DIR" yaml:"table_cache_dir"`
	TriviaOverride []int  `envconfig:"LLX_TRIVIA_OVERRIDE" yaml:"trivia_override"`
}

// Default returns a Config with the runtime's own defaults: info-level
// logging, no cache directory, no trivia override.
func Default() Config {
	return Config{LogLevel: "info"}
}

// FromEnv loads configuration from LLX_-prefixed environment variables,
// starting from Default() and overriding whatever is set.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := envconfig.Process("llx", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromYAML loads configuration from a YAML file, starting from Default()
// and overriding whatever the file sets.
func FromYAML(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
