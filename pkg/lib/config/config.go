// Package config loads launcher defaults from a YAML file, with environment
// variable overrides, and reads dotenv files for child environments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/LasseHaedge/procspawn/pkg/lib/launcher"
)

// Config holds defaults applied to launches unless overridden per request or
// per CLI invocation.
type Config struct {
	// Strategy is "spawn" or "fork-exec".
	Strategy string `yaml:"strategy"`

	// DieWithParent kills children when the caller exits (Linux only).
	DieWithParent bool `yaml:"die_with_parent"`

	// EnvFile is a dotenv file merged into every child's environment.
	EnvFile string `yaml:"env_file"`

	// Capture routes child stdout/stderr into capture buffers by default.
	Capture bool `yaml:"capture"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{Strategy: "spawn"}
}

// defaultPath is $XDG_CONFIG_HOME/spawn/config.yaml (or the home-relative
// fallback). Empty when no home is known.
func defaultPath() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); strings.TrimSpace(base) != "" {
		return filepath.Join(base, "spawn", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spawn", "config.yaml")
}

// Load reads the config file at path (the default location when path is
// empty), then applies SPAWN_* environment overrides. A missing file at the
// default location is not an error; an explicitly named missing file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// No config file; defaults apply.
		default:
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if _, err := launcher.ParseStrategy(cfg.Strategy); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv layers SPAWN_* variables over the file values.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("SPAWN_STRATEGY")); v != "" {
		cfg.Strategy = v
	}
	if v := strings.TrimSpace(os.Getenv("SPAWN_ENV_FILE")); v != "" {
		cfg.EnvFile = v
	}
	if v := strings.TrimSpace(os.Getenv("SPAWN_DIE_WITH_PARENT")); v != "" {
		cfg.DieWithParent = v == "1" || strings.EqualFold(v, "true")
	}
}

// ParsedStrategy returns the strategy as a launcher value.
func (c Config) ParsedStrategy() (launcher.Strategy, error) {
	return launcher.ParseStrategy(c.Strategy)
}

// ReadEnvFile parses a dotenv file into an environment override map for
// Request.Env.
func ReadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return env, nil
}
