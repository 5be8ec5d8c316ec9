package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings berk needs to reach the backend and persist local state.
type Config struct {
	BackendURL     string        `validate:"required,url"`
	AuthScheme     string        `validate:"oneof=bearer basic"`
	DataDir        string        `validate:"required"`
	LogDir         string        `validate:"required"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	StorageDriver  string        `validate:"oneof=file sqlite"`
	RequestTimeout time.Duration `validate:"min=1ms"`
}

// Auth schemes. A deployment uses exactly one.
const (
	SchemeBearer = "bearer"
	SchemeBasic  = "basic"
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

const (
	defaultConfigPath     = "~/.config/berk/config.toml"
	defaultBackendURL     = "https://api.example.com"
	defaultDataDir        = "~/.local/share/berk"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 15 * time.Second

	// BackendEnv overrides backend_url when set.
	BackendEnv = "BERK_BACKEND_URL"
)

var validate = validator.New()

// Load locates and parses the berk config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw struct {
		BackendURL     string `toml:"backend_url"`
		AuthScheme     string `toml:"auth_scheme"`
		DataDir        string `toml:"data_dir"`
		LogDir         string `toml:"log_dir"`
		LogLevel       string `toml:"log_level"`
		StorageDriver  string `toml:"storage_driver"`
		RequestTimeout string `toml:"request_timeout"`
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	cfg := Config{
		BackendURL:    firstNonEmpty(os.Getenv(BackendEnv), raw.BackendURL, defaultBackendURL),
		AuthScheme:    strings.ToLower(firstNonEmpty(raw.AuthScheme, SchemeBearer)),
		DataDir:       mustExpand(firstNonEmpty(raw.DataDir, defaultDataDir)),
		LogLevel:      strings.ToLower(firstNonEmpty(raw.LogLevel, defaultLogLevel)),
		StorageDriver: strings.ToLower(firstNonEmpty(raw.StorageDriver, DriverFile)),
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	cfg.LogDir = strings.TrimSpace(raw.LogDir)
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.DataDir, "logs")
	}
	cfg.LogDir = mustExpand(cfg.LogDir)

	cfg.RequestTimeout = defaultRequestTimeout
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout %q: %w", timeout, err)
		}
		cfg.RequestTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("Field: %s, Tag: %s, Param: %s", fe.Field(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// StoragePath returns the file backing the configured storage driver.
func (c Config) StoragePath() string {
	dir := c.DataDir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultDataDir)
	}
	if c.StorageDriver == DriverSQLite {
		return filepath.Join(dir, "berk.db")
	}
	return filepath.Join(dir, "storage.toml")
}

// LogPath returns the path to the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultDataDir + "/logs/berk.log")
	}
	return filepath.Join(c.LogDir, "berk.log")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
