package main

import "fmt"

// ConfigError is raised at load time when a static parameter violates an
// invariant. The configuration has to be fixed before retrying; the same
// input always fails the same way.
type ConfigError struct {
	Field string
	Value float64
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s (%s = %g)", e.Msg, e.Field, e.Value)
}

// DiscretizationError is raised during a single discretization call when the
// numerical result is inconsistent (bin count, conservation). The caller may
// retry with different grid parameters; the failing output must not be used.
type DiscretizationError struct {
	Mode  int
	Value float64
	Msg   string
}

func (e *DiscretizationError) Error() string {
	if e.Mode >= 0 {
		return fmt.Sprintf("discretization failed: %s (mode %d, value %g)", e.Msg, e.Mode, e.Value)
	}
	return fmt.Sprintf("discretization failed: %s (value %g)", e.Msg, e.Value)
}
