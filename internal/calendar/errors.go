package calendar

import "errors"

var (
	// ErrUnavailable indicates the calendar API is unreachable.
	ErrUnavailable = errors.New("calendar unavailable")

	// ErrTimeout indicates the calendar request exceeded the configured timeout.
	ErrTimeout = errors.New("calendar request timed out")

	// ErrBadResponse indicates the calendar returned a payload that
	// could not be decoded into the expected shape.
	ErrBadResponse = errors.New("invalid calendar response")

	// ErrRejected indicates the calendar refused an event write.
	ErrRejected = errors.New("calendar rejected event")
)
