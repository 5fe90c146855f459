// Package domain defines domain-level errors for the timeseries feature.
package domain

import "errors"

// Domain errors for time-series operations. Callers are expected to test
// with errors.Is; lower layers wrap these with request context.
var (
	// ErrInvalidArgument indicates a request parameter outside its declared
	// enumeration or range. Detected before any network call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoAPIKey indicates that no API key could be resolved from the
	// request, the cached configuration, the key file, or the environment.
	ErrNoAPIKey = errors.New("no API key configured")

	// ErrRemoteAPI indicates the API answered with a non-"ok" status.
	// The wrapped error text carries the remote message verbatim.
	ErrRemoteAPI = errors.New("remote API error")

	// ErrMalformedData indicates a cell that should parse as a number or a
	// date/time did not. The whole call fails; rows are never skipped.
	ErrMalformedData = errors.New("malformed data")

	// ErrUnsupportedFormat indicates the requested output representation is
	// not available with the configured reshaping capability.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
