package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/claimsdesk/fnol/internal/config"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fnol configuration",
		Long: `Manage fnol configuration.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (FNOL_*, also read from .env)
3. Config file (` + config.DefaultPath() + `)
4. Defaults`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(showConfig{
				BackendURL:     cfg.BackendURL,
				Endpoint:       cfg.Endpoint(),
				RequestTimeout: cfg.RequestTimeout.String(),
				ExportDir:      cfg.ExportDir,
				LogPath:        cfg.LogPath,
			})
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "# config file: %s\n", g.configPathForDisplay())
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(g.cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created default configuration: %s\n", path)
			return nil
		},
	}

	cmd.AddCommand(show, initCmd)
	return cmd
}

// showConfig adds the derived endpoint and a readable timeout.
type showConfig struct {
	BackendURL     string `yaml:"backend_url"`
	Endpoint       string `yaml:"endpoint"`
	RequestTimeout string `yaml:"request_timeout"`
	ExportDir      string `yaml:"export_dir"`
	LogPath        string `yaml:"log_path"`
}
