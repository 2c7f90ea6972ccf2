package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/claimsdesk/fnol/internal/app"
	"github.com/claimsdesk/fnol/internal/config"
)

// Version is stamped at build time with -ldflags.
var Version = "0.1.0"

// globals carries persistent flag state for one command tree.
type globals struct {
	v         *viper.Viper
	cfgFile   string
	prefsFile string
	verbose   bool
}

// NewRootCmd builds the fnol command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{v: viper.New()}

	root := &cobra.Command{
		Use:   "fnol [file]",
		Short: "FNOL intake console",
		Long: `fnol submits First Notice of Loss documents (PDF/TXT) to the claims
extraction service and shows the extracted fields, the recommended route
and the raw JSON payload.

Run without a subcommand to open the console. Pass a file to preselect it.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := g.appOptions()
			if len(args) == 1 {
				opts.File = args[0]
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.cfgFile, "config", "", "config file (default: "+config.DefaultPath()+")")
	flags.StringVar(&g.prefsFile, "prefs", "", "preferences file (default: ~/.config/fnol/prefs.toml)")
	flags.String("backend-url", "", "claims service base URL (env FNOL_BACKEND_URL)")
	flags.Duration("timeout", 0, "request timeout (env FNOL_REQUEST_TIMEOUT)")
	flags.String("export-dir", "", "directory for claim_output.json (env FNOL_EXPORT_DIR)")
	flags.String("log-path", "", "log file used while the console runs (env FNOL_LOG_PATH)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")

	_ = g.v.BindPFlag("backend_url", flags.Lookup("backend-url"))
	_ = g.v.BindPFlag("request_timeout", flags.Lookup("timeout"))
	_ = g.v.BindPFlag("export_dir", flags.Lookup("export-dir"))
	_ = g.v.BindPFlag("log_path", flags.Lookup("log-path"))

	root.AddCommand(
		newProcessCmd(g),
		newConfigCmd(g),
		newStubCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fnol v%s\n", Version)
		},
	}
}

// initConfig loads .env and binds FNOL_* environment variables. Values
// already present in the environment take precedence over .env.
func (g *globals) initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	g.v.SetEnvPrefix("FNOL")
	g.v.AutomaticEnv()
	if g.verbose {
		fmt.Fprintf(os.Stderr, "config file: %s\n", g.configPathForDisplay())
	}
	return nil
}

// overrides collects flag and environment values above the config file.
func (g *globals) overrides() config.Overrides {
	return config.Overrides{
		BackendURL:     g.v.GetString("backend_url"),
		RequestTimeout: g.v.GetDuration("request_timeout"),
		ExportDir:      g.v.GetString("export_dir"),
		LogPath:        g.v.GetString("log_path"),
	}
}

func (g *globals) appOptions() app.Options {
	return app.Options{
		ConfigPath: g.cfgFile,
		PrefsPath:  g.prefsFile,
		Overrides:  g.overrides(),
	}
}

func (g *globals) loadConfig() (config.Config, error) {
	return app.LoadConfig(g.appOptions())
}

func (g *globals) configPathForDisplay() string {
	path, err := config.ResolvePath(g.cfgFile)
	if err != nil {
		return g.cfgFile
	}
	return path
}
