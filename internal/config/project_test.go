package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/virtuallist/internal/config"
)

// writeProjectOverlay creates a project overlay in dir and returns its path.
func writeProjectOverlay(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.ProjectConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("VIRTUALLIST_HOME", t.TempDir())
	t.Setenv("VIRTUALLIST_PROJECT_CONFIG", "")
	chdir(t, t.TempDir())
}

func TestResolveProjectConfig_EnvOverride(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv("VIRTUALLIST_PROJECT_CONFIG", envFile)

	got := config.ResolveProjectConfig(context.Background(), "/does/not/matter")

	assert.Equal(t, envFile, got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectConfig_WalkUp(t *testing.T) {
	t.Setenv("VIRTUALLIST_PROJECT_CONFIG", "")

	root := t.TempDir()
	want := writeProjectOverlay(t, root, "window:\n  item_height: 2\n")

	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	assert.Equal(t, want, config.ResolveProjectConfig(context.Background(), subDir))
}

func TestResolveProjectConfig_NearestWins(t *testing.T) {
	t.Setenv("VIRTUALLIST_PROJECT_CONFIG", "")

	root := t.TempDir()
	writeProjectOverlay(t, root, "{}\n")
	inner := filepath.Join(root, "inner")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	want := writeProjectOverlay(t, inner, "{}\n")

	assert.Equal(t, want, config.ResolveProjectConfig(context.Background(), inner))
}

func TestResolveProjectConfig_NoOverlay(t *testing.T) {
	t.Setenv("VIRTUALLIST_PROJECT_CONFIG", "")

	assert.Empty(t, config.ResolveProjectConfig(context.Background(), ""))

	// A directory named like the overlay is not an overlay.
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, config.ProjectConfigFile), 0o755))
	got := config.ResolveProjectConfig(context.Background(), root)
	assert.NotEqual(t, filepath.Join(root, config.ProjectConfigFile), got)
}

func TestNewWithProjectConfig_Empty(t *testing.T) {
	isolateHome(t)

	cfg := config.NewWithProjectConfig(context.Background(), "")

	assert.Equal(t, config.Defaults().Window, cfg.Window)
}

func TestNewWithProjectConfig_ReplacesSection(t *testing.T) {
	isolateHome(t)

	path := writeProjectOverlay(t, t.TempDir(), "window:\n  item_height: 50\n  container_height: 500\n  overscan: 1\n")
	cfg := config.NewWithProjectConfig(context.Background(), path)

	assert.InDelta(t, 50.0, cfg.Window.ItemHeight, 0)
	assert.InDelta(t, 500.0, cfg.Window.ContainerHeight, 0)
	assert.Equal(t, 1, cfg.Window.Overscan)
	// Untouched sections keep their defaults.
	assert.Equal(t, config.DefaultOutputFormat, cfg.Output.DefaultFormat)
}

func TestNewWithProjectConfig_EnvStillWins(t *testing.T) {
	isolateHome(t)
	t.Setenv("VIRTUALLIST_OVERSCAN", "7")

	path := writeProjectOverlay(t, t.TempDir(), "window:\n  item_height: 50\n  container_height: 500\n  overscan: 1\n")
	cfg := config.NewWithProjectConfig(context.Background(), path)

	assert.Equal(t, 7, cfg.Window.Overscan)
}

func TestNewWithProjectConfig_CorruptedYAML(t *testing.T) {
	isolateHome(t)

	path := writeProjectOverlay(t, t.TempDir(), "window: [unclosed\n")
	cfg := config.NewWithProjectConfig(context.Background(), path)

	assert.Equal(t, config.Defaults().Window, cfg.Window)
}

func TestNewWithProjectConfig_MissingFile(t *testing.T) {
	isolateHome(t)

	cfg := config.NewWithProjectConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, config.Defaults().Window, cfg.Window)
}
