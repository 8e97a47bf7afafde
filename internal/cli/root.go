// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/config"
	"github.com/aidanlsb/fieldmenu/internal/ui"
)

var (
	// Global flags
	vaultName     string // Named vault from config
	vaultPathFlag string // Explicit path
	configPath    string
	debugLogging  bool

	// Resolved values
	resolvedVaultPath  string
	resolvedConfigPath string
	cfg                *config.Config
	configWarnings     []Warning
	logger             = discardLogger()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fmenu",
	Short: "fieldmenu - quick-edit note attributes from links",
	Long: `fieldmenu adds attribute quick-edits to the context menu of a link.

Open the menu on a link to a note and every front-matter key and inline
"key:: value" field of that note becomes a menu item. Configured presets turn
an item into a one-click cycle, a multi-select or a single-select; true/false
values get a toggle and everything else a text prompt.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr(), debugLogging)

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		configWarnings = validationWarnings(cfg)
		for _, w := range configWarnings {
			logger.Warn("config problem", "path", resolvedConfigPath, "problem", w.Message)
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		// Skip vault resolution for commands that don't need it
		switch cmd.Name() {
		case "init", "completion", "help", "version", "presets":
			return nil
		}

		// Resolve vault path: explicit path > named vault > default
		switch {
		case vaultPathFlag != "":
			resolvedVaultPath = vaultPathFlag
		case vaultName != "":
			resolvedVaultPath, err = cfg.GetVaultPath(vaultName)
			if err != nil {
				return fmt.Errorf("vault '%s' not found\n\nAdd it under [vaults] in %s", vaultName, resolvedConfigPath)
			}
		default:
			resolvedVaultPath, err = cfg.GetVaultPath("")
			if err != nil {
				return fmt.Errorf(`no vault specified

Either:
  1. Use --vault <name> (from config)
  2. Use --vault-path /path/to/vault
  3. Set default_vault in %s`, resolvedConfigPath)
			}
		}

		if st, err := os.Stat(resolvedVaultPath); err != nil || !st.IsDir() {
			return fmt.Errorf("vault not found: %s", resolvedVaultPath)
		}
		return nil
	},
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run executes one command line. Errors not already reported as JSON are
// printed to stderr.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultName, "vault", "v", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit path to vault directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripts)")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Log debug details to stderr")
}

// getVaultPath returns the resolved vault path.
func getVaultPath() string {
	return resolvedVaultPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)
	loadedCfg, err := config.LoadFrom(resolvedPath)
	if err != nil {
		return nil, "", err
	}
	return loadedCfg, resolvedPath, nil
}

// validationWarnings turns preset problems into warnings. Broken presets are
// still usable: lookups take the first preset of a name, cycle wins over multi.
func validationWarnings(c *config.Config) []Warning {
	err := c.Validate()
	if err == nil {
		return nil
	}
	var out []Warning
	for _, line := range strings.Split(err.Error(), "\n") {
		out = append(out, Warning{Code: WarnConfigInvalid, Message: line})
	}
	return out
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
