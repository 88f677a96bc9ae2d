package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/virtuallist/internal/cli/pagination"
	"github.com/rshade/virtuallist/internal/config"
	"github.com/rshade/virtuallist/internal/ingest"
	"github.com/rshade/virtuallist/internal/logging"
	"github.com/rshade/virtuallist/internal/window"
)

// Errors shared by the window commands.
var (
	ErrNoSource    = errors.New("one of --items or --input is required")
	ErrBothSources = errors.New("cannot use both --items and --input")
	ErrNegativeN   = errors.New("--items must be >= 0")
)

// sourceFlags selects the collection a command works on.
type sourceFlags struct {
	count   int
	prefix  string
	inputs  []string
	filters []string
	sort    string
}

// register adds the source flags to cmd.
func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&s.count, "items", "n", 0, "generate N synthetic items")
	cmd.Flags().StringVar(&s.prefix, "prefix", "item", "label prefix for generated items")
	cmd.Flags().StringSliceVarP(&s.inputs, "input", "i", nil,
		"input file(s): one item per line, a JSON array (.json) or a YAML sequence (.yaml); '-' reads stdin")
	cmd.Flags().StringArrayVar(&s.filters, "filter", nil,
		"keep matching items: contains=TEXT, prefix=TEXT, suffix=TEXT or match=REGEXP (repeatable)")
	cmd.Flags().StringVar(&s.sort, "sort", "", "sort items before windowing: value or length, optionally ':asc' or ':desc'")
}

// describe returns a short label for the source, used in headers and logs.
func (s *sourceFlags) describe(cmd *cobra.Command) string {
	if cmd.Flags().Changed("items") {
		return fmt.Sprintf("%d generated", s.count)
	}
	if len(s.inputs) == 1 {
		if s.inputs[0] == ingest.StdinPath {
			return "stdin"
		}
		return s.inputs[0]
	}
	return fmt.Sprintf("%d files", len(s.inputs))
}

// validate checks that exactly one source is selected.
func (s *sourceFlags) validate(cmd *cobra.Command) error {
	generated := cmd.Flags().Changed("items")
	switch {
	case generated && len(s.inputs) > 0:
		return ErrBothSources
	case !generated && len(s.inputs) == 0:
		return ErrNoSource
	case generated && s.count < 0:
		return fmt.Errorf("%w, got %d", ErrNegativeN, s.count)
	}
	if _, _, err := pagination.ParseSort(s.sort); err != nil {
		return err
	}
	return nil
}

// load builds the collection. stdin is read for every "-" input.
func (s *sourceFlags) load(ctx context.Context, cmd *cobra.Command, stdin io.Reader) ([]string, error) {
	log := logging.FromContext(ctx)

	var (
		items []string
		err   error
	)
	switch {
	case cmd.Flags().Changed("items"):
		items = ingest.Generate(s.count, s.prefix)
	default:
		items, err = ingest.LoadFiles(ctx, stdin, s.inputs...)
	}
	if err != nil {
		return nil, err
	}

	items, err = ApplyFilters(ctx, items, s.filters)
	if err != nil {
		return nil, err
	}

	items, err = pagination.ApplySort(pagination.NewItemSorter(), items, s.sort)
	if err != nil {
		return nil, err
	}

	log.Debug().Ctx(ctx).Str("component", "cli").Str("source", s.describe(cmd)).
		Int("items", len(items)).Msg("collection ready")
	return items, nil
}

// geometryFlags carries the window parameters. Unset flags fall back to the config.
type geometryFlags struct {
	itemHeight      float64
	containerHeight float64
	overscan        int
}

// register adds the geometry flags to cmd.
func (g *geometryFlags) register(cmd *cobra.Command) {
	defaults := config.Defaults().Window
	cmd.Flags().Float64Var(&g.itemHeight, "item-height", defaults.ItemHeight,
		"height of one item (default from config)")
	cmd.Flags().Float64Var(&g.containerHeight, "container-height", defaults.ContainerHeight,
		"height of the viewport (default from config)")
	cmd.Flags().IntVar(&g.overscan, "overscan", defaults.Overscan,
		"extra items rendered beyond each edge of the viewport (default from config)")
}

// params resolves and validates the window parameters.
func (g *geometryFlags) params(cmd *cobra.Command) (window.Params, error) {
	p := config.GetWindowConfig().Params()
	if cmd.Flags().Changed("item-height") {
		p.ItemHeight = g.itemHeight
	}
	if cmd.Flags().Changed("container-height") {
		p.ContainerHeight = g.containerHeight
	}
	if cmd.Flags().Changed("overscan") {
		p.Overscan = g.overscan
	}
	if err := p.Validate(); err != nil {
		return window.Params{}, err
	}
	return p, nil
}

// resolveOutputFormat returns the --output flag when set, otherwise the configured default.
func resolveOutputFormat(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed("output") {
		return flagValue
	}
	return config.GetDefaultOutputFormat()
}
