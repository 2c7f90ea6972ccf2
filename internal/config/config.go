package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/claimsdesk/fnol/internal/intake"
)

// Config holds everything the console reads from its environment.
type Config struct {
	BackendURL     string        `yaml:"backend_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ExportDir      string        `yaml:"export_dir"`
	LogPath        string        `yaml:"log_path"`
}

// Overrides carries flag and environment values; empty fields are ignored.
type Overrides struct {
	BackendURL     string
	RequestTimeout time.Duration
	ExportDir      string
	LogPath        string
}

const (
	defaultConfigPath     = "~/.config/fnol/config.toml"
	defaultLogPath        = "~/.local/state/fnol/fnol.log"
	defaultRequestTimeout = 60 * time.Second
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BackendURL:     intake.DefaultBackendURL,
		RequestTimeout: defaultRequestTimeout,
		ExportDir:      ".",
		LogPath:        mustExpand(defaultLogPath),
	}
}

// DefaultPath returns the config file consulted when no path is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BackendURL     string `toml:"backend_url"`
		RequestTimeout string `toml:"request_timeout"`
		ExportDir      string `toml:"export_dir"`
		LogPath        string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		cfg.RequestTimeout = timeout
	}
	cfg.Apply(Overrides{
		BackendURL: raw.BackendURL,
		ExportDir:  raw.ExportDir,
		LogPath:    raw.LogPath,
	})
	return cfg, nil
}

// Apply layers non-empty overrides on top of c and normalizes the result.
func (c *Config) Apply(o Overrides) {
	if v := strings.TrimSpace(o.BackendURL); v != "" {
		c.BackendURL = v
	}
	if o.RequestTimeout > 0 {
		c.RequestTimeout = o.RequestTimeout
	}
	if v := strings.TrimSpace(o.ExportDir); v != "" {
		c.ExportDir = mustExpand(v)
	}
	if v := strings.TrimSpace(o.LogPath); v != "" {
		c.LogPath = mustExpand(v)
	}
	c.BackendURL = intake.NormalizeBaseURL(c.BackendURL)
}

// Endpoint returns the submission URL derived from BackendURL.
func (c Config) Endpoint() string {
	return intake.NormalizeBaseURL(c.BackendURL) + intake.ProcessPath
}

// ResolvePath expands the config path the same way Load does.
func ResolvePath(path string) (string, error) {
	return resolvePath(path)
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

// fileConfig is the on-disk shape written by WriteDefault.
type fileConfig struct {
	BackendURL     string `toml:"backend_url" comment:"Claims service base URL; /process is appended."`
	RequestTimeout string `toml:"request_timeout" comment:"Upper bound for one submission, e.g. 60s or 2m."`
	ExportDir      string `toml:"export_dir" comment:"Directory that receives claim_output.json."`
	LogPath        string `toml:"log_path" comment:"Log file used while the console runs."`
}

// WriteDefault creates a commented config file at path holding the
// defaults. It refuses to overwrite an existing file.
func WriteDefault(path string) (string, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(resolved); err == nil {
		return resolved, fmt.Errorf("config file already exists: %s", resolved)
	}

	def := Default()
	data, err := toml.Marshal(fileConfig{
		BackendURL:     def.BackendURL,
		RequestTimeout: def.RequestTimeout.String(),
		ExportDir:      def.ExportDir,
		LogPath:        defaultLogPath,
	})
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return resolved, nil
}
