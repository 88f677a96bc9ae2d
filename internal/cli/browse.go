package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/virtuallist/internal/ingest"
	"github.com/rshade/virtuallist/internal/tui"
)

// ErrNotTerminal is returned when browse is run without an interactive terminal.
var ErrNotTerminal = errors.New("browse requires an interactive terminal; use compute or scroll instead")

// browseParams holds the parameters for the browse command execution.
type browseParams struct {
	source   sourceFlags
	overscan int
}

// NewBrowseCmd creates the "browse" subcommand, an interactive full-screen
// list that renders only the window around the scroll position.
func NewBrowseCmd() *cobra.Command {
	var params browseParams

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a collection interactively",
		Long: `Open a full-screen, virtualized view of a collection.

Only the rows around the viewport are rendered, so very large collections
scroll smoothly. Use the arrow keys, j/k, PgUp/PgDn, g/G or the mouse wheel to
move, ':' to jump to an index, '?' for help and 'q' to quit.

Logs are never written to the terminal while browsing; set logging.file in the
config to keep them.`,
		Example: `  # Browse a million generated rows
  virtuallist browse --items 1000000

  # Browse a JSON array
  virtuallist browse --input items.json`,
		Annotations: map[string]string{annotationFullScreen: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeBrowse(cmd, params)
		},
	}

	params.source.register(cmd)
	cmd.Flags().IntVar(&params.overscan, "overscan", 0, "extra rows rendered beyond each edge of the viewport (default from config)")

	return cmd
}

// executeBrowse runs the browse command.
func executeBrowse(cmd *cobra.Command, params browseParams) error {
	if err := params.source.validate(cmd); err != nil {
		return err
	}
	if !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}
	overscan, err := resolveOverscan(cmd, params.overscan)
	if err != nil {
		return err
	}

	// A piped collection must be read before the program takes over input;
	// keys are then read from the controlling terminal.
	var stdin io.Reader = cmd.InOrStdin()
	if slices.Contains(params.source.inputs, ingest.StdinPath) {
		items, loadErr := params.source.load(cmd.Context(), cmd, stdin)
		if loadErr != nil {
			return loadErr
		}
		return runBrowse(cmd.Context(), tui.NewBrowseModel(params.source.describe(cmd), items, overscan), tea.WithInputTTY())
	}

	loader := func(ctx context.Context) ([]string, error) {
		return params.source.load(ctx, cmd, stdin)
	}
	return runBrowse(cmd.Context(),
		tui.NewBrowseModelWithLoading(cmd.Context(), params.source.describe(cmd), overscan, loader))
}

// resolveOverscan returns the --overscan flag when set, otherwise the configured value.
func resolveOverscan(cmd *cobra.Command, flagValue int) (int, error) {
	g := geometryFlags{overscan: flagValue}
	// Item and container heights are fixed by the terminal; only overscan is configurable.
	p, err := g.params(cmd)
	if err != nil {
		return 0, err
	}
	return p.Overscan, nil
}

func runBrowse(ctx context.Context, model *tui.BrowseModel, opts ...tea.ProgramOption) error {
	logger.Debug().Ctx(ctx).Msg("starting browse program")

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browse: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}
	return nil
}
