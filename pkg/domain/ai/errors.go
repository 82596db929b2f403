package ai

import (
	"errors"
	"fmt"
)

// Kind classifies why a completion failed.
type Kind string

const (
	KindNone                    Kind = ""
	KindMissingCredential       Kind = "missing_credential"
	KindTransportFailure        Kind = "transport_failure"
	KindEmptyResponseBody       Kind = "empty_response_body"
	KindMalformedResponseBody   Kind = "malformed_response_body"
	KindUnexpectedResponseShape Kind = "unexpected_response_shape"
	KindProviderRejected        Kind = "provider_rejected"
)

// Sentinels for errors.Is matching against an *Error of the same kind.
var (
	ErrMissingCredential       = errors.New("missing credential")
	ErrTransportFailure        = errors.New("transport failure")
	ErrEmptyResponseBody       = errors.New("empty response body")
	ErrMalformedResponseBody   = errors.New("malformed response body")
	ErrUnexpectedResponseShape = errors.New("unexpected response shape")
	ErrProviderRejected        = errors.New("provider rejected request")
)

var sentinels = map[Kind]error{
	KindMissingCredential:       ErrMissingCredential,
	KindTransportFailure:        ErrTransportFailure,
	KindEmptyResponseBody:       ErrEmptyResponseBody,
	KindMalformedResponseBody:   ErrMalformedResponseBody,
	KindUnexpectedResponseShape: ErrUnexpectedResponseShape,
	KindProviderRejected:        ErrProviderRejected,
}

// Error is a classified completion failure.
type Error struct {
	Kind Kind
	// StatusCode is set for KindProviderRejected.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if s, ok := sentinels[e.Kind]; ok {
		msg = s.Error()
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// NewError wraps err with the given kind.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind carried by err. Unclassified errors count as
// transport failures since they can only come from below the provider.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransportFailure
}

// Classify returns err as an *Error, wrapping unclassified errors as
// transport failures.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewError(KindTransportFailure, err)
}

// Retryable reports whether another attempt could succeed.
func Retryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	switch e.Kind {
	case KindTransportFailure:
		return true
	case KindProviderRejected:
		return e.StatusCode >= 500 || e.StatusCode == 429
	default:
		return false
	}
}
