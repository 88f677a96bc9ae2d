package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/virtuallist/internal/config"
	"github.com/rshade/virtuallist/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationFullScreen marks commands that take over the terminal; their logs
// must not be written to stderr.
const annotationFullScreen = "virtuallist/fullscreen"

// NewRootCmd creates the root Cobra command for the virtuallist CLI.
// It wires up configuration, logging with a per-invocation trace ID, and the
// compute, scroll, browse and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:     "virtuallist",
		Short:   "Compute and browse virtualized list windows",
		Long:    "virtuallist: Calculate which items of a long list are rendered for a given scroll position",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, configPath); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a config file (default $VIRTUALLIST_HOME/config.yaml or ~/.virtuallist/config.yaml)")
	cmd.AddCommand(NewComputeCmd(), NewScrollCmd(), NewBrowseCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Window for 1,000 synthetic items scrolled to offset 1000
  virtuallist compute --items 1000 --item-height 50 --container-height 500 --offset 1000

  # Same window as JSON
  virtuallist compute --items 1000 --item-height 50 --container-height 500 --offset 1000 --output json

  # Window for page 3 of a file, one item per line
  virtuallist compute --input items.txt --page 3

  # Replay a sequence of scroll offsets
  virtuallist scroll --items 1000 --item-height 50 --container-height 500 --offsets 0,1000,60000

  # Browse a JSON array interactively
  virtuallist browse --input items.json

  # Initialize configuration
  virtuallist config init`

// loadConfig installs the global configuration: the file named by --config
// when given, otherwise the global file plus any project overlay.
func loadConfig(cmd *cobra.Command, path string) error {
	if path != "" {
		cfg, err := config.NewFromFile(path)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", path, err)
		}
		config.SetGlobalConfig(cfg)
		return nil
	}

	ctx := cmd.Context()
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	cfg := config.NewWithProjectConfig(ctx, config.ResolveProjectConfig(ctx, wd))
	if loadErr := cfg.LoadError(); loadErr != nil {
		cmd.PrintErrf("Warning: using default configuration: %v\n", loadErr)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
