package workspace

import "errors"

var (
	// ErrUnavailable indicates the workspace API is unreachable.
	ErrUnavailable = errors.New("workspace unavailable")

	// ErrTimeout indicates the workspace request exceeded the configured timeout.
	ErrTimeout = errors.New("workspace request timed out")

	// ErrBadResponse indicates the workspace returned a payload that
	// could not be decoded into the expected shape.
	ErrBadResponse = errors.New("invalid workspace response")
)
