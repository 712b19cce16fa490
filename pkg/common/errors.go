package common

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks invalid user configuration: unknown sort key,
	// colour, attribute, subject or export format.
	ErrConfig = errors.New("configuration error")
	// ErrSourceUnavailable marks a stat source that could not be sampled.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrNoBattery is returned by the battery source when the machine has
	// no battery.
	ErrNoBattery = errors.New("no battery found")
)

// ConfigError describes one rejected configuration value.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// SourceError names the stat source that failed.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source unavailable: %v", e.Source, e.Err)
}

// Unwrap exposes both the ErrSourceUnavailable marker and the cause.
func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}

// ExportError reports a failed export write.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
