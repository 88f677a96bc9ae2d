package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/virtuallist/internal/cli"
	"github.com/rshade/virtuallist/internal/cli/pagination"
)

var scrollArgs = []string{ //nolint:gochecknoglobals // Shared test fixture.
	"scroll", "--items", "1000", "--item-height", "50", "--container-height", "500", "--overscan", "3",
}

// TestScroll_Offsets tests replaying explicit offsets in order.
func TestScroll_Offsets(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, nil, append(scrollArgs, "--offsets", "0,1000,60000,-5", "-o", "ndjson")...)
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 4)

	want := [][2]int{{0, 13}, {17, 33}, {999, 999}, {0, 13}}
	for i, row := range rows {
		w := decodeWindow(t, row)
		assert.Equal(t, want[i][0], w.VisibleRange.Start, "row %d", i)
		assert.Equal(t, want[i][1], w.VisibleRange.End, "row %d", i)
	}
	// Offsets are reported as given, not clamped.
	assert.InDelta(t, 60000.0, decodeWindow(t, rows[2]).ScrollOffset, 0)
}

// TestScroll_Trace tests the table trace output.
func TestScroll_Trace(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, nil, append(scrollArgs, "--offsets", "0,1000")...)
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 3)
	assert.Contains(t, rows[0], "OFFSET")
	assert.Contains(t, rows[2], "1,000")
}

// TestScroll_Sweep tests stepping from top to bottom.
func TestScroll_Sweep(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, nil, "scroll", "--items", "10", "--item-height", "1",
		"--container-height", "4", "--overscan", "0", "--sweep", "4", "-o", "json")
	require.NoError(t, err)

	var reports []windowJSON
	require.NoError(t, json.Unmarshal([]byte(out), &reports))

	// Offsets 0, 4 and the max offset 6.
	require.Len(t, reports, 3)
	assert.InDelta(t, 0.0, reports[0].ScrollOffset, 0)
	assert.InDelta(t, 4.0, reports[1].ScrollOffset, 0)
	assert.InDelta(t, 6.0, reports[2].ScrollOffset, 0)
	assert.Equal(t, 6, reports[2].VisibleRange.Start)
	assert.Equal(t, 9, reports[2].VisibleRange.End)
}

// TestScroll_Errors tests argument validation.
func TestScroll_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no offsets", args: []string{"scroll", "-n", "5"}, wantErr: cli.ErrNoOffsets},
		{
			name:    "offsets and sweep",
			args:    []string{"scroll", "-n", "5", "--offsets", "1", "--sweep", "1"},
			wantErr: cli.ErrBothOffsets,
		},
		{name: "bad offset", args: []string{"scroll", "-n", "5", "--offsets", "1,abc"}, wantErr: pagination.ErrInvalidOffset},
		{name: "infinite offset", args: []string{"scroll", "-n", "5", "--offsets", "Inf"}, wantErr: pagination.ErrInvalidOffset},
		{name: "zero sweep", args: []string{"scroll", "-n", "5", "--sweep", "0"}, wantErr: cli.ErrInvalidSweep},
		{
			name:    "sweep too fine",
			args:    []string{"scroll", "-n", "1000000", "--item-height", "1", "--sweep", "0.001"},
			wantErr: cli.ErrInvalidSweep,
		},
		{name: "no source", args: []string{"scroll", "--offsets", "1"}, wantErr: cli.ErrNoSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)

			_, err := executeCmd(t, nil, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
