package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/virtuallist/internal/cli/pagination"
	"github.com/rshade/virtuallist/internal/config"
	"github.com/rshade/virtuallist/internal/logging"
	"github.com/rshade/virtuallist/internal/output"
	"github.com/rshade/virtuallist/internal/window"
)

// Errors returned by the scroll command.
var (
	ErrNoOffsets    = errors.New("one of --offsets or --sweep is required")
	ErrBothOffsets  = errors.New("cannot use both --offsets and --sweep")
	ErrInvalidSweep = errors.New("--sweep must be a finite number > 0")
)

// maxSweepSteps bounds the number of offsets --sweep may produce.
const maxSweepSteps = 100_000

// scrollParams holds the parameters for the scroll command execution.
type scrollParams struct {
	source   sourceFlags
	geometry geometryFlags
	offsets  []string
	sweep    float64
	output   string
}

// NewScrollCmd creates the "scroll" subcommand, which replays a sequence of
// scroll offsets against one calculator and prints the window after each.
func NewScrollCmd() *cobra.Command {
	var params scrollParams

	cmd := &cobra.Command{
		Use:   "scroll",
		Short: "Replay a sequence of scroll offsets",
		Long: `Replay scroll positions against a collection and print the window after each one.

Offsets come from --offsets (a comma-separated list, applied in order) or from
--sweep STEP, which scrolls from the top to the last reachable offset in steps
of STEP. Every offset is reported as given, including ones past either end.`,
		Example: scrollExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeScroll(cmd, params)
		},
	}

	params.source.register(cmd)
	params.geometry.register(cmd)
	cmd.Flags().StringSliceVar(&params.offsets, "offsets", nil, "comma-separated scroll offsets, applied in order")
	cmd.Flags().Float64Var(&params.sweep, "sweep", 0, "scroll from the top to the bottom in steps of this size")
	cmd.Flags().StringVarP(&params.output, "output", "o", config.DefaultOutputFormat,
		"Output format: table, json, ndjson or yaml (default from config)")

	return cmd
}

const scrollExample = `  # Three positions, one row each
  virtuallist scroll --items 1000 --item-height 50 --container-height 500 --offsets 0,1000,60000

  # One page at a time, streamed as NDJSON
  virtuallist scroll --input items.txt --container-height 20 --sweep 20 --output ndjson`

// executeScroll runs the scroll command.
func executeScroll(cmd *cobra.Command, params scrollParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if err := params.source.validate(cmd); err != nil {
		return err
	}
	p, err := params.geometry.params(cmd)
	if err != nil {
		return err
	}

	sweep := cmd.Flags().Changed("sweep")
	switch {
	case sweep && len(params.offsets) > 0:
		return ErrBothOffsets
	case !sweep && len(params.offsets) == 0:
		return ErrNoOffsets
	}

	var offsets []float64
	if !sweep {
		if offsets, err = parseOffsets(params.offsets); err != nil {
			return err
		}
	}

	items, err := params.source.load(ctx, cmd, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if sweep {
		if offsets, err = sweepOffsets(params.sweep, len(items), p); err != nil {
			return err
		}
	}

	calc := window.New[string]()
	reports := make([]output.Report, 0, len(offsets))
	for _, offset := range offsets {
		calc.SetScrollOffset(offset)
		res := calc.Compute(items, p)
		reports = append(reports, output.NewReport(res, p, offset, len(items)))
	}

	log.Debug().Ctx(ctx).Str("operation", "scroll").
		Int("positions", len(reports)).
		Int("items", len(items)).
		Msg("scroll replayed")

	return output.Render(cmd.OutOrStdout(), resolveOutputFormat(cmd, params.output),
		config.GetOutputPrecision(), reports...)
}

// parseOffsets parses each value as a finite float.
func parseOffsets(values []string) ([]float64, error) {
	offsets := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", pagination.ErrInvalidOffset, v)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: got %v", pagination.ErrInvalidOffset, f)
		}
		offsets = append(offsets, f)
	}
	return offsets, nil
}

// sweepOffsets returns 0, step, 2*step, ... up to and including the maximum
// scroll offset of an n item collection.
func sweepOffsets(step float64, n int, p window.Params) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidSweep, step)
	}

	maxOffset := window.MaxScrollOffset(n, p)
	steps := math.Floor(maxOffset/step) + 1
	if steps > maxSweepSteps {
		return nil, fmt.Errorf("%w: %.0f positions exceeds the limit of %d", ErrInvalidSweep, steps, maxSweepSteps)
	}
	count := int(steps)

	offsets := make([]float64, 0, count+1)
	for i := 0; i < count; i++ {
		offsets = append(offsets, float64(i)*step)
	}
	if last := offsets[len(offsets)-1]; last < maxOffset {
		offsets = append(offsets, maxOffset)
	}
	return offsets, nil
}
