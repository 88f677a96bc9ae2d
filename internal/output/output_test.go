package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/virtuallist/internal/ingest"
	"github.com/rshade/virtuallist/internal/output"
	"github.com/rshade/virtuallist/internal/window"
)

func scenarioReport(offset float64) output.Report {
	items := ingest.Generate(1000, "row")
	p := window.Params{ItemHeight: 50, ContainerHeight: 500, Overscan: 3}

	calc := window.New[string]()
	calc.SetScrollOffset(offset)
	return output.NewReport(calc.Compute(items, p), p, offset, len(items))
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in        float64
		precision int
		want      string
	}{
		{in: 50000, precision: 2, want: "50,000"},
		{in: 1234.5, precision: 2, want: "1,234.50"},
		{in: -1234567.891, precision: 1, want: "-1,234,567.9"},
		{in: 0.004, precision: 2, want: "0"},
		{in: 999.6, precision: 0, want: "1,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, output.FormatFloat(tt.in, tt.precision))
	}
	assert.Equal(t, "18,248", output.FormatNumber(18248))
}

func TestNewReport(t *testing.T) {
	r := scenarioReport(1000)

	assert.Equal(t, 17, r.VisibleRange.Start)
	assert.Equal(t, 33, r.VisibleRange.End)
	assert.InDelta(t, 50000.0, r.TotalHeight, 0)
	assert.InDelta(t, 850.0, r.OffsetTop, 0)
	assert.Len(t, r.VisibleItems, 17)
	assert.Equal(t, 3, r.Page.CurrentPage)
	assert.Equal(t, 100, r.Page.TotalPages)
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, output.FormatJSON, 2, scenarioReport(1000)))

	var decoded struct {
		TotalHeight  float64 `json:"total_height"`
		VisibleRange struct {
			Start int `json:"start_index"`
			End   int `json:"end_index"`
		} `json:"visible_range"`
		VisibleItems []struct {
			Item  string `json:"item"`
			Index int    `json:"index"`
		} `json:"visible_items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.InDelta(t, 50000.0, decoded.TotalHeight, 0)
	assert.Equal(t, 17, decoded.VisibleRange.Start)
	assert.Equal(t, 33, decoded.VisibleRange.End)
	require.Len(t, decoded.VisibleItems, 17)
	assert.Equal(t, "row 17", decoded.VisibleItems[0].Item)
	assert.Equal(t, 33, decoded.VisibleItems[16].Index)
}

func TestRenderJSON_ManyReportsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.RenderJSON(&buf, scenarioReport(0), scenarioReport(500)))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
}

func TestRenderNDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, output.FormatNDJSON, 2,
		scenarioReport(0), scenarioReport(1000), scenarioReport(100000)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var last map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
	rng, ok := last["visible_range"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 999.0, rng["start_index"], 0)
	assert.InDelta(t, 999.0, rng["end_index"], 0)
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, output.FormatYAML, 2, scenarioReport(1000)))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 50000, decoded["total_height"])
	assert.Equal(t, 850, decoded["offset_top"])
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, output.FormatTable, 2, scenarioReport(1000)))

	out := buf.String()
	assert.Contains(t, out, "17-33 (17 items)")
	assert.Contains(t, out, "50,000")
	assert.Contains(t, out, "3 of 100")
	assert.Contains(t, out, "row 33")
	assert.NotContains(t, out, "row 34")
}

func TestRenderTable_Empty(t *testing.T) {
	calc := window.New[string]()
	p := window.NewParams(50, 500)
	r := output.NewReport(calc.Compute(nil, p), p, 0, 0)

	var buf bytes.Buffer
	require.NoError(t, output.RenderTable(&buf, r, 2))
	assert.Contains(t, buf.String(), "empty")
	assert.NotContains(t, buf.String(), "INDEX")
}

func TestRenderTrace(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, output.FormatTable, 2, scenarioReport(0), scenarioReport(1000)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "OFFSET")
	assert.Equal(t, []string{"1,000", "17", "33", "17", "850", "3/100"}, strings.Fields(lines[2]))
}

func TestRender_UnknownFormat(t *testing.T) {
	err := output.Render(&bytes.Buffer{}, "xml", 2, scenarioReport(0))
	assert.ErrorIs(t, err, output.ErrUnknownFormat)
}
