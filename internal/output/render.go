package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rshade/virtuallist/internal/cli/pagination"
	"github.com/rshade/virtuallist/internal/window"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// ErrUnknownFormat is returned for an output format Render does not support.
var ErrUnknownFormat = errors.New("unknown output format")

// Report is one computed window together with the inputs that produced it.
type Report struct {
	ScrollOffset    float64               `json:"scroll_offset"    yaml:"scroll_offset"`
	ItemHeight      float64               `json:"item_height"      yaml:"item_height"`
	ContainerHeight float64               `json:"container_height" yaml:"container_height"`
	Overscan        int                   `json:"overscan"         yaml:"overscan"`
	TotalItems      int                   `json:"total_items"      yaml:"total_items"`
	TotalHeight     float64               `json:"total_height"     yaml:"total_height"`
	OffsetTop       float64               `json:"offset_top"       yaml:"offset_top"`
	VisibleRange    window.Range          `json:"visible_range"    yaml:"visible_range"`
	Page            pagination.PageMeta   `json:"page"             yaml:"page"`
	VisibleItems    []window.Item[string] `json:"visible_items"    yaml:"visible_items"`
}

// NewReport assembles a Report from a Compute result.
func NewReport(res window.Result[string], p window.Params, offset float64, totalItems int) Report {
	return Report{
		ScrollOffset:    offset,
		ItemHeight:      p.ItemHeight,
		ContainerHeight: p.ContainerHeight,
		Overscan:        p.Overscan,
		TotalItems:      totalItems,
		TotalHeight:     res.TotalHeight,
		OffsetTop:       window.OffsetTop(res.Range, p.ItemHeight),
		VisibleRange:    res.Range,
		Page:            pagination.NewPageMeta(offset, res.TotalHeight, p.ContainerHeight, totalItems),
		VisibleItems:    res.Items,
	}
}

// Render writes reports to w in format. precision applies to table output only.
func Render(w io.Writer, format string, precision int, reports ...Report) error {
	switch format {
	case FormatTable:
		if len(reports) == 1 {
			return RenderTable(w, reports[0], precision)
		}
		return RenderTrace(w, reports, precision)
	case FormatJSON:
		return RenderJSON(w, reports...)
	case FormatNDJSON:
		return RenderNDJSON(w, reports...)
	case FormatYAML:
		return RenderYAML(w, reports...)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// RenderTable writes a summary block followed by the visible items.
func RenderTable(w io.Writer, r Report, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	rangeText := "empty"
	if !r.VisibleRange.Empty() {
		rangeText = fmt.Sprintf("%d-%d (%d items)", r.VisibleRange.Start, r.VisibleRange.End, r.VisibleRange.Len())
	}

	summary := [][2]string{
		{"Items", FormatNumber(int64(r.TotalItems))},
		{"Item height", FormatFloat(r.ItemHeight, precision)},
		{"Container height", FormatFloat(r.ContainerHeight, precision)},
		{"Overscan", strconv.Itoa(r.Overscan)},
		{"Scroll offset", FormatFloat(r.ScrollOffset, precision)},
		{"Visible range", rangeText},
		{"Offset top", FormatFloat(r.OffsetTop, precision)},
		{"Total height", FormatFloat(r.TotalHeight, precision)},
		{"Page", fmt.Sprintf("%d of %d", r.Page.CurrentPage, r.Page.TotalPages)},
	}
	for _, row := range summary {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}

	if len(r.VisibleItems) > 0 {
		if _, err := fmt.Fprintln(tw, "\nINDEX\tITEM"); err != nil {
			return err
		}
		for _, it := range r.VisibleItems {
			if _, err := fmt.Fprintf(tw, "%d\t%s\n", it.Index, it.Value); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

// RenderTrace writes one row per report, for replaying a sequence of offsets.
func RenderTrace(w io.Writer, reports []Report, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintln(tw, "OFFSET\tSTART\tEND\tRENDERED\tOFFSET TOP\tPAGE"); err != nil {
		return err
	}
	for _, r := range reports {
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%d/%d\n",
			FormatFloat(r.ScrollOffset, precision),
			r.VisibleRange.Start,
			r.VisibleRange.End,
			len(r.VisibleItems),
			FormatFloat(r.OffsetTop, precision),
			r.Page.CurrentPage,
			r.Page.TotalPages,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// RenderJSON writes a single report as an object, or several as an array.
func RenderJSON(w io.Writer, reports ...Report) error {
	var v any = reports
	if len(reports) == 1 {
		v = reports[0]
	}
	return RenderJSONValue(w, v)
}

// RenderJSONValue writes v as indented JSON.
func RenderJSONValue(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderNDJSON writes each report as one JSON line.
func RenderNDJSON(w io.Writer, reports ...Report) error {
	encoder := json.NewEncoder(w)
	for _, r := range reports {
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

// RenderYAML writes a single report as a mapping, or several as a sequence.
func RenderYAML(w io.Writer, reports ...Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	var v any = reports
	if len(reports) == 1 {
		v = reports[0]
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}
