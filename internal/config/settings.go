package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the default environment variable holding the compute API key.
const APIKeyEnv = "FXFORGE_API_KEY"

// BaseURLEnv overrides the compute API endpoint.
const BaseURLEnv = "FXFORGE_BASE_URL"

// Settings holds persistent CLI defaults loaded from a config file.
type Settings struct {
	BaseURL string `yaml:"base_url"`

	// APIKey is a literal key or "env:VAR_NAME" indirection.
	// Empty means read APIKeyEnv.
	APIKey string `yaml:"api_key,omitempty"`

	PollInterval    time.Duration `yaml:"poll_interval"`
	PollMaxAttempts int           `yaml:"poll_max_attempts"`

	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`

	// DataDir holds the conversion history database. Default ~/.fxforge.
	DataDir string `yaml:"data_dir"`
}

// KeyError indicates the compute API key could not be resolved.
// Callers should map this to exit code 2.
type KeyError struct {
	Var string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("compute API key is not set (env var %s)", e.Var)
}

// LoadSettings reads a YAML config file into Settings.
// If the file does not exist, it returns zero-value Settings and nil error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &s, nil
}

// ResolveAPIKey turns the configured key value into a usable key.
// "env:VAR_NAME" reads VAR_NAME; an empty value reads APIKeyEnv.
// An unresolvable key is a fatal configuration error, checked once
// before any remote call.
func ResolveAPIKey(configured string) (string, error) {
	switch {
	case strings.HasPrefix(configured, "env:"):
		envKey := strings.TrimPrefix(configured, "env:")
		key := os.Getenv(envKey)
		if key == "" {
			return "", &KeyError{Var: envKey}
		}
		return key, nil
	case configured != "":
		return configured, nil
	}

	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return "", &KeyError{Var: APIKeyEnv}
	}
	return key, nil
}

// ResolveBaseURL picks the endpoint: config file value, then environment.
// Empty result lets the compute client's built-in default apply.
func ResolveBaseURL(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(BaseURLEnv)
}

// DefaultDataDir returns the history database location.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home dir: %w", err)
	}
	return filepath.Join(home, ".fxforge"), nil
}
