package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/virtuallist/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// It writes the built-in defaults to $VIRTUALLIST_HOME/config.yaml
// (~/.virtuallist/config.yaml when VIRTUALLIST_HOME is unset), or to --path.
func NewConfigInitCmd() *cobra.Command {
	var (
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

The file is written to $VIRTUALLIST_HOME/config.yaml, or ~/.virtuallist/config.yaml
when VIRTUALLIST_HOME is unset. Use --path to write it elsewhere.`,
		Example: `  # Create the default configuration
  virtuallist config init

  # Create configuration, overwriting existing
  virtuallist config init --force

  # Create a configuration for one project
  virtuallist config init --path ./virtuallist.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&path, "path", "", "write the configuration to this file")

	return cmd
}

// runConfigInit saves the default configuration to path or the default location.
func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}

	// Check if config already exists and force isn't set
	if !force {
		if _, err := os.Stat(path); err == nil {
			if !ConfirmOverwrite(cmd.OutOrStdout(), cmd.InOrStdin(), path).Accepted {
				return errors.New("configuration file already exists, use --force to overwrite")
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := config.Defaults()
	cfg.SetConfigPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Info().Ctx(cmd.Context()).Str("path", path).Msg("configuration initialized")

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)

	return nil
}
