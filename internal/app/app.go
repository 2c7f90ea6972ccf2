package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimsdesk/fnol/internal/config"
	"github.com/claimsdesk/fnol/internal/intake"
	"github.com/claimsdesk/fnol/internal/prefs"
	"github.com/claimsdesk/fnol/internal/session"
	"github.com/claimsdesk/fnol/internal/ui"
)

// Options configure the console.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/fnol/prefs.toml
	Overrides  config.Overrides
	File       string // optional document to preselect
}

// LoadConfig resolves the effective configuration for opts.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.Apply(opts.Overrides)
	return cfg, nil
}

// NewClient builds the claims client described by cfg.
func NewClient(cfg config.Config) (*intake.Client, error) {
	client, err := intake.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("init claims client: %w", err)
	}
	return client, nil
}

// NewController wires a claims client for cfg into a fresh session.
func NewController(cfg config.Config) (*session.Controller, *intake.Client, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return session.New(client), client, nil
}

// Run boots the console until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := openLog(cfg.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("prefs: %v (using defaults)", err)
	}

	controller, client, err := NewController(cfg)
	if err != nil {
		return err
	}
	log.Printf("console started endpoint=%s timeout=%s", client.Endpoint(), cfg.RequestTimeout)

	if opts.File != "" {
		upload, err := intake.LoadUpload(opts.File)
		if err != nil {
			return fmt.Errorf("select %s: %w", opts.File, err)
		}
		controller.SelectFile(upload)
	}

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: controller,
		Config:     &cfg,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
	})
}

// openLog points the standard logger at the log file; the console owns the
// terminal so nothing may be written to stderr while it runs.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "fnol ")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
