package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/virtuallist/internal/cli/pagination"
	"github.com/rshade/virtuallist/internal/config"
	"github.com/rshade/virtuallist/internal/logging"
	"github.com/rshade/virtuallist/internal/output"
	"github.com/rshade/virtuallist/internal/window"
)

// computeParams holds the parameters for the compute command execution.
type computeParams struct {
	source   sourceFlags
	geometry geometryFlags
	viewport pagination.ViewportParams
	output   string
}

// NewComputeCmd creates the "compute" subcommand, which prints the window of a
// collection for one scroll position.
//
// Registered flags:
//   - --items / --input: the collection (generated or loaded)
//   - --item-height, --container-height, --overscan: window geometry
//   - --offset or --page: the scroll position
//   - --sort: ordering applied before windowing
//   - --output: table, json, ndjson or yaml
func NewComputeCmd() *cobra.Command {
	var params computeParams

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the rendered window for one scroll position",
		Long: `Compute which items of a collection are rendered for a scroll position.

The window covers every item intersecting the viewport plus --overscan items on
each side, clamped to the collection. Offsets past either end are accepted and
clamp to the first or last item.`,
		Example: computeExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.viewport.OffsetSet = cmd.Flags().Changed("offset")
			return executeCompute(cmd, params)
		},
	}

	params.source.register(cmd)
	params.geometry.register(cmd)
	cmd.Flags().Float64Var(&params.viewport.Offset, "offset", pagination.DefaultOffset, "scroll offset from the top")
	cmd.Flags().IntVar(&params.viewport.Page, "page", pagination.DefaultPage,
		"1-based viewport page; page N starts at (N-1) * container height")
	cmd.Flags().StringVarP(&params.output, "output", "o", config.DefaultOutputFormat,
		"Output format: table, json, ndjson or yaml (default from config)")

	return cmd
}

const computeExample = `  # 1,000 items of height 50 in a 500 high viewport, scrolled to 1000
  virtuallist compute --items 1000 --item-height 50 --container-height 500 --offset 1000

  # Third page of a file, as JSON
  virtuallist compute --input items.txt --page 3 --output json

  # Longest lines first, from stdin
  cat items.txt | virtuallist compute --input - --sort length:desc`

// executeCompute runs the compute command.
func executeCompute(cmd *cobra.Command, params computeParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if err := params.source.validate(cmd); err != nil {
		return err
	}
	if err := params.viewport.Validate(); err != nil {
		return err
	}
	p, err := params.geometry.params(cmd)
	if err != nil {
		return err
	}
	offset, err := params.viewport.EffectiveOffset(p.ContainerHeight)
	if err != nil {
		return err
	}

	items, err := params.source.load(ctx, cmd, cmd.InOrStdin())
	if err != nil {
		return err
	}

	calc := window.New[string]()
	calc.SetScrollOffset(offset)
	res := calc.Compute(items, p)

	log.Debug().Ctx(ctx).Str("operation", "compute").
		Float64("offset", offset).
		Int("start", res.Range.Start).
		Int("end", res.Range.End).
		Int("rendered", len(res.Items)).
		Msg("window computed")

	report := output.NewReport(res, p, offset, len(items))
	return output.Render(cmd.OutOrStdout(), resolveOutputFormat(cmd, params.output),
		config.GetOutputPrecision(), report)
}
