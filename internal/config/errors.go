package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic handling while keeping human-readable
// messages in one place.
var (
	// ErrInvalidTimeout is returned when the fetch timeout is not positive.
	// A zero timeout would fail every request immediately.
	ErrInvalidTimeout = errors.New("invalid fetch timeout: must be positive")

	// ErrInvalidRedirects is returned when the redirect cap is negative.
	// Use 0 to disallow redirects entirely.
	ErrInvalidRedirects = errors.New("invalid redirect limit: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the body size cap is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrInvalidRate is returned when the aggregate request rate is not positive.
	ErrInvalidRate = errors.New("invalid request rate: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
