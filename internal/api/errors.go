package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation.
type Kind int

const (
	// KindValidation means the request never reached the network
	// (empty topic, empty credential fields).
	KindValidation Kind = iota

	// KindNetwork means no response was received at all.
	KindNetwork

	// KindAuth means the server answered 401 or 403. On any
	// authenticated call this implies the credential is dead.
	KindAuth

	// KindServer means any other non-2xx response.
	KindServer
)

// String returns a short label for logging.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is the typed error surfaced at every component boundary.
// Message is human-readable; for KindServer it is the response body verbatim.
type Error struct {
	Kind    Kind
	Message string
	Status  int   // HTTP status, 0 when no response was received
	Wrapped error // underlying transport error, if any
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Wrapped != nil {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("%s error", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// ValidationError builds a KindValidation error.
func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NetworkError wraps a transport failure.
func NetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "cannot reach server: " + err.Error(), Wrapped: err}
}

// KindOf extracts the Kind from any error. Errors that are not *Error
// are reported as KindNetwork: they can only originate below the HTTP
// boundary.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindNetwork
}

// IsAuth reports whether err is a credential rejection.
func IsAuth(err error) bool {
	return err != nil && KindOf(err) == KindAuth
}
