package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	AnnotatedDuration = "duration"
	AnnotatedUEM      = "uem"
	AnnotatedNone     = "none"

	defaultStateDirLinux = ".local/state/brouhaha"
	defaultConfigDir     = ".config/brouhaha"
)

// Config holds user configuration loaded from TOML.
type Config struct {
	Corpus struct {
		Root      string `toml:"root"`
		Annotated string `toml:"annotated"` // duration, uem, none
		UEMPath   string `toml:"uem_path"`  // may contain {subset}
	} `toml:"corpus"`

	Logging struct {
		Level   string `toml:"level"`   // debug, info, warn, error
		Format  string `toml:"format"`  // text, json
		Console bool   `toml:"console"` // mirror logs to stderr
	} `toml:"logging"`

	Paths struct {
		StateDir   string `toml:"state_dir"`
		LogPath    string `toml:"log_path"`
		ConfigPath string `toml:"-"`
	} `toml:"paths"`
}

// Default returns Config populated with defaults.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	stateDir := filepath.Join(home, defaultStateDirLinux)
	if isMac() {
		stateDir = filepath.Join(home, "Library", "Application Support", "brouhaha")
	}

	cfg := &Config{}

	cfg.Corpus.Annotated = AnnotatedDuration

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"

	cfg.Paths.StateDir = stateDir
	cfg.Paths.LogPath = filepath.Join(stateDir, "brouhaha.log")

	return cfg, nil
}

// Load loads config from file, applying defaults, .env and environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, defaultConfigDir, "config.toml")
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Read if exists; otherwise write template.
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := Save(cfg, path); err != nil {
			return nil, err
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Paths.ConfigPath = path
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}

// Validate rejects unknown annotated strategies.
func (c *Config) Validate() error {
	switch c.Corpus.Annotated {
	case AnnotatedDuration, AnnotatedUEM, AnnotatedNone:
		return nil
	default:
		return fmt.Errorf("corpus.annotated: unknown strategy %q (want duration, uem or none)", c.Corpus.Annotated)
	}
}

func isMac() bool {
	return runtime.GOOS == "darwin"
}

// MustStatePaths ensures state dirs exist.
func MustStatePaths(cfg *Config) error {
	for _, p := range []string{cfg.Paths.StateDir, filepath.Dir(cfg.Paths.LogPath)} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BROUHAHA_ROOT"); v != "" {
		cfg.Corpus.Root = v
	}
	if v := os.Getenv("BROUHAHA_ANNOTATED"); v != "" {
		cfg.Corpus.Annotated = strings.ToLower(v)
	}
	if v := os.Getenv("BROUHAHA_UEM_PATH"); v != "" {
		cfg.Corpus.UEMPath = v
	}
	if v := os.Getenv("BROUHAHA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BROUHAHA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("BROUHAHA_LOG_CONSOLE"); v != "" {
		cfg.Logging.Console = v != "0" && strings.ToLower(v) != "false"
	}
}
