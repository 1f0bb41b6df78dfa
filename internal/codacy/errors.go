package codacy

import (
	"errors"
	"fmt"
)

// ErrorKind classifies API failures so callers can decide between
// aborting, surfacing a bad identifier, or retrying.
type ErrorKind int

const (
	// KindAuth means the token is missing or was rejected (401/403).
	KindAuth ErrorKind = iota
	// KindNotFound means the organization, standard or tool does not exist (404).
	KindNotFound
	// KindTransient covers network failures, timeouts, 429 and 5xx.
	KindTransient
	// KindProtocol means the response body did not match the expected shape.
	KindProtocol
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindTransient:
		return "transient"
	case KindProtocol:
		return "protocol"
	}
	return "unknown"
}

// APIError is the error type for all Codacy API failures.
type APIError struct {
	Kind       ErrorKind
	StatusCode int // 0 when the failure happened before an HTTP status arrived
	Path       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("codacy api: %s: HTTP %d on %s: %s", e.Kind, e.StatusCode, e.Path, e.Message)
	}
	return fmt.Sprintf("codacy api: %s: %s: %s", e.Kind, e.Path, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func isKind(err error, k ErrorKind) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == k
}

// IsAuth reports whether err is a credential failure.
func IsAuth(err error) bool { return isKind(err, KindAuth) }

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool { return isKind(err, KindTransient) }

// IsProtocol reports whether err is an unexpected-response failure.
func IsProtocol(err error) bool { return isKind(err, KindProtocol) }
