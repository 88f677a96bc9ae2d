package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/virtuallist/internal/config"
	"github.com/rshade/virtuallist/internal/output"
)

// NewConfigShowCmd creates the config show command, which prints the effective
// configuration after file and environment overrides.
func NewConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Prints the configuration in effect: built-in defaults, overlaid with the
config file, .env and VIRTUALLIST_* environment variables.`,
		Example: `  # Show the effective configuration as YAML
  virtuallist config show

  # As JSON
  virtuallist config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", output.FormatYAML, "Output format: yaml or json")

	return cmd
}

func runConfigShow(cmd *cobra.Command, format string) error {
	cfg := config.GetGlobalConfig()

	switch format {
	case output.FormatYAML:
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		if err := encoder.Encode(cfg); err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		return encoder.Close()
	case output.FormatJSON:
		return output.RenderJSONValue(cmd.OutOrStdout(), cfg)
	default:
		return fmt.Errorf("%w: %q (valid: yaml, json)", output.ErrUnknownFormat, format)
	}
}
