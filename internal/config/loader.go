package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the variable holding the YAML file path.
const PathEnv = "CONFIG_PATH"

const defaultPath = "./config.yaml"

// Load is LoadFile with the path taken from CONFIG_PATH.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(PathEnv))
}

// LoadFile reads the YAML file at path, lets environment variables override
// it and fills the rest from env-default tags. An empty path tries
// ./config.yaml and silently falls back to the environment alone; an
// explicit path must exist.
func LoadFile(path string) (*Config, error) {
	var cfg Config

	if err := read(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func read(path string, cfg *Config) error {
	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	case explicit || !errors.Is(statErr, fs.ErrNotExist):
		return fmt.Errorf("file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("read env: %w", err)
		}
	}
	return nil
}

// WriteUsage lists every environment variable with its default.
func WriteUsage(w io.Writer) {
	var cfg Config
	cleanenv.FUsage(w, &cfg, nil)()
}
