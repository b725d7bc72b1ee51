package venmo

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation is invoked before a
	// successful Login. It is a local precondition failure; nothing is sent.
	ErrNotAuthenticated = errors.New("not authenticated, run Login first")
	// ErrProtocolViolation is returned when a handshake step answers with an
	// unexpected status or is missing a required artifact. It is fatal for
	// the whole bootstrap and is never retried internally.
	ErrProtocolViolation = errors.New("login protocol violation")
	// ErrUnexpectedStatus is returned when an authenticated endpoint answers
	// outside the 2xx range.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
