package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/virtuallist/internal/logging"
)

// ProjectConfigFile is the name of the project-local overlay discovered by walking up from the working directory.
const ProjectConfigFile = ".virtuallist.yaml"

// ResolveProjectConfig returns the project overlay file to apply.
// It checks (in order):
//  1. VIRTUALLIST_PROJECT_CONFIG env var
//  2. ProjectConfigFile in startDir or the nearest ancestor that has one
//
// Returns an absolute path, or an empty string when there is no overlay.
func ResolveProjectConfig(ctx context.Context, startDir string) string {
	if envPath := os.Getenv("VIRTUALLIST_PROJECT_CONFIG"); envPath != "" {
		return absPath(ctx, envPath)
	}
	if startDir == "" {
		return ""
	}

	dir := absPath(ctx, startDir)
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectConfig loads the global configuration and shallow-merges the
// overlay at overlayPath on top; environment variables still take precedence.
// If overlayPath is empty or missing, it behaves like New. A broken overlay is
// logged and ignored.
func NewWithProjectConfig(ctx context.Context, overlayPath string) *Config {
	cfg := New()
	if overlayPath == "" {
		return cfg
	}
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
		return cfg
	}
	if err := merged.ApplyEnv(); err != nil {
		merged.loadErr = err
	}

	return merged
}

func absPath(ctx context.Context, p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("path", p).
			Msg("failed to resolve absolute path")
		return p
	}
	return abs
}
