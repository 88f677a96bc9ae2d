package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/virtuallist/internal/cli"
	"github.com/rshade/virtuallist/internal/config"
)

// setupCLITest isolates the config directory, working directory and
// environment, and resets global state afterwards.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("VIRTUALLIST_HOME", home)
	t.Setenv("VIRTUALLIST_LOG_LEVEL", "error")
	t.Setenv("VIRTUALLIST_PROJECT_CONFIG", "")
	t.Setenv("VIRTUALLIST_OUTPUT_FORMAT", "")
	chdir(t, t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// executeCmd runs the root command with args and returns stdout.
func executeCmd(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// windowJSON mirrors the fields of a JSON report used in assertions.
type windowJSON struct {
	ScrollOffset float64 `json:"scroll_offset"`
	TotalItems   int     `json:"total_items"`
	TotalHeight  float64 `json:"total_height"`
	OffsetTop    float64 `json:"offset_top"`
	VisibleRange struct {
		Start int `json:"start_index"`
		End   int `json:"end_index"`
	} `json:"visible_range"`
	Page struct {
		CurrentPage int `json:"current_page"`
		TotalPages  int `json:"total_pages"`
	} `json:"page"`
	VisibleItems []struct {
		Item  string `json:"item"`
		Index int    `json:"index"`
	} `json:"visible_items"`
}

func decodeWindow(t *testing.T, s string) windowJSON {
	t.Helper()
	var w windowJSON
	require.NoError(t, json.Unmarshal([]byte(s), &w))
	return w
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}
