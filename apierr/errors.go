// Package apierr defines the error taxonomy returned by the Koywe client.
//
// Every failure surfaced by the auth and dispatch layers is an *Error. Callers
// match the kind with errors.Is against the sentinel values below; ErrAPI
// matches every *Error, so it can be used as a catch-all:
//
//	if errors.Is(err, apierr.ErrNotFound) { ... }
//
// The status code and the parsed response body are available through
// errors.As:
//
//	var apiErr *apierr.Error
//	if errors.As(err, &apiErr) {
//	    log.Printf("status=%d body=%v", apiErr.StatusCode, apiErr.Body)
//	}
package apierr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies an *Error.
type Kind int

const (
	KindAPI Kind = iota
	KindAuthentication
	KindValidation
	KindNotFound
	KindRateLimit
	KindServer
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "api"
	}
}

var (
	// ErrAPI is matched by every *Error.
	ErrAPI = errors.New("api error")

	ErrAuthentication = errors.New("authentication error")
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrServer         = errors.New("server error")
	ErrNetwork        = errors.New("network error")
)

var sentinels = map[Kind]error{
	KindAuthentication: ErrAuthentication,
	KindValidation:     ErrValidation,
	KindNotFound:       ErrNotFound,
	KindRateLimit:      ErrRateLimit,
	KindServer:         ErrServer,
	KindNetwork:        ErrNetwork,
}

// Error is an API or transport failure. StatusCode is zero when no HTTP
// response was received. Body is never nil.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Body       map[string]any
	Err        error
}

// New builds an *Error. A nil body is replaced with an empty map.
func New(kind Kind, message string, statusCode int, body map[string]any) *Error {
	if body == nil {
		body = map[string]any{}
	}
	return &Error{Kind: kind, Message: message, StatusCode: statusCode, Body: body}
}

// Wrap builds an *Error without a response, keeping cause reachable through
// errors.Unwrap.
func Wrap(kind Kind, message string, cause error) *Error {
	e := New(kind, message, 0, nil)
	e.Err = cause
	return e
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrAPI or the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	if target == ErrAPI {
		return true
	}
	s, ok := sentinels[e.Kind]
	return ok && target == s
}

// KindOf returns the kind of the first *Error in err's chain and whether one
// was found.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindAPI, false
}

// ParseBody decodes a response body into a JSON object. Empty bodies,
// invalid JSON and non-object values all yield an empty map.
func ParseBody(raw []byte) map[string]any {
	body := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return body
	}
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}
