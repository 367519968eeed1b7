// Package worlderr defines the typed failures the world-generation pipeline
// and its services can return. Bad input either clamps to a documented
// invariant or propagates one of these; it is never swallowed silently.
package worlderr

import "fmt"

// ConfigError reports a build-time configuration problem: non-positive
// dimensions, an unknown time speed, a seed outside the 32-bit unsigned
// range, or an out-of-range classifier threshold.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config field %q: %s", e.Field, e.Reason)
}

// SaveFormatError reports a problem loading a save record: unknown
// version, a truncated buffer, or metadata/points inconsistency in the
// road blob.
type SaveFormatError struct {
	Reason string
}

func (e *SaveFormatError) Error() string {
	return fmt.Sprintf("save format error: %s", e.Reason)
}
