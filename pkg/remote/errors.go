package remote

import "errors"

var (
	// ErrNetworkTimeout is returned when the source did not answer within the
	// client's timeout.
	ErrNetworkTimeout = errors.New("remote: request timed out")

	// ErrNetwork covers every other transport or source failure.
	ErrNetwork = errors.New("remote: source unavailable")

	// ErrMalformedRow marks a row that was skipped during a fetch.
	// It is only reported through logs and never returned by the client.
	ErrMalformedRow = errors.New("remote: malformed row")
)
