package config

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CurrentSchemaVersion is the schema version written by config init.
const CurrentSchemaVersion = "1.0.0"

// supportedSchemaRange is the range of config schema versions this build reads.
const supportedSchemaRange = "^1.0.0"

// ErrUnsupportedSchema is returned when a config file declares a schema this build cannot read.
var ErrUnsupportedSchema = errors.New("unsupported config schema version")

// CheckSchemaVersion reports whether version can be read by this build.
// An empty version is treated as the current one.
func CheckSchemaVersion(version string) error {
	if version == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a valid semantic version: %w", ErrUnsupportedSchema, version, err)
	}

	constraint, err := semver.NewConstraint(supportedSchemaRange)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedSchema, v, supportedSchemaRange)
	}
	return nil
}
