// Package ingest loads the collections shown by virtuallist.
//
// A collection is an ordered list of display strings. Sources are plain text
// (one item per line), JSON arrays and YAML sequences; non-string elements are
// rendered as compact JSON so that every item occupies a single row.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/virtuallist/internal/logging"
)

// StdinPath is the path that selects standard input.
const StdinPath = "-"

// maxLineBytes bounds a single line of plain-text input.
const maxLineBytes = 1 << 20

// Format identifies how an input file is decoded.
type Format string

// Supported input formats.
const (
	FormatLines Format = "lines"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Errors returned while loading collections.
var (
	ErrEmptyPath         = errors.New("input path is empty")
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrNoStdin           = errors.New("no standard input available")
)

// DetectFormat selects the decoder for path by extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatLines
	}
}

// LoadFile reads the collection stored at path. A path equal to StdinPath
// reads stdin instead.
func LoadFile(ctx context.Context, stdin io.Reader, path string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	log := logging.FromContext(ctx)

	var (
		data []byte
		err  error
	)
	if path == StdinPath {
		if stdin == nil {
			return nil, fmt.Errorf("reading %s: %w", path, ErrNoStdin)
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	format := DetectFormat(path)
	items, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("path", path).
		Str("format", string(format)).
		Int("items", len(items)).
		Msg("loaded collection")

	return items, nil
}

// LoadFiles loads every path concurrently and concatenates the collections in
// argument order. The first error cancels the remaining loads. StdinPath
// entries read stdin.
func LoadFiles(ctx context.Context, stdin io.Reader, paths ...string) ([]string, error) {
	results := make([][]string, len(paths))

	// stdin is read once up front; the loads below run concurrently.
	var stdinData []byte
	if slices.Contains(paths, StdinPath) && stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", StdinPath, err)
		}
		stdinData = data
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			var r io.Reader
			if stdinData != nil {
				r = bytes.NewReader(stdinData)
			}
			items, err := LoadFile(gCtx, r, p)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]string, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// Decode turns raw bytes into a collection using format.
func Decode(data []byte, format Format) ([]string, error) {
	switch format {
	case FormatLines:
		return decodeLines(data)
	case FormatJSON:
		var values []any
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("expected a JSON array: %w", err)
		}
		return stringify(values)
	case FormatYAML:
		var values []any
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("expected a YAML sequence: %w", err)
		}
		return stringify(values)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Generate returns n synthetic items named "<prefix> <index>".
func Generate(n int, prefix string) []string {
	if n <= 0 {
		return []string{}
	}
	if prefix == "" {
		prefix = "item"
	}
	items := make([]string, n)
	for i := range items {
		items[i] = prefix + " " + strconv.Itoa(i)
	}
	return items
}

func decodeLines(data []byte) ([]string, error) {
	items := []string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)
	for sc.Scan() {
		items = append(items, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func stringify(values []any) ([]string, error) {
	items := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			items = append(items, s)
			continue
		}
		b, err := json.Marshal(normalize(v))
		if err != nil {
			return nil, err
		}
		items = append(items, string(b))
	}
	return items, nil
}

// normalize converts YAML's map[string]any / map[any]any trees into values
// encoding/json can marshal.
func normalize(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
