package oauth

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is. Every error returned by
// Strategy matches exactly one of them; use errors.As with the concrete
// types below to read the details.
var (
	// ErrConfiguration matches *ConfigurationError.
	ErrConfiguration = errors.New("oauth: invalid configuration")

	// ErrCallbackCSRF matches *CallbackCSRFError.
	ErrCallbackCSRF = errors.New("oauth: state mismatch")

	// ErrCallback matches *CallbackError.
	ErrCallback = errors.New("oauth: provider returned an error")

	// ErrRequest matches *RequestError.
	ErrRequest = errors.New("oauth: request to provider failed")
)

// bodyExcerptLimit caps the provider body kept on a RequestError.
const bodyExcerptLimit = 512

// RequestErrorKind classifies a failed provider interaction.
type RequestErrorKind string

const (
	// KindUnreachable means the provider could not be reached at the transport level.
	KindUnreachable RequestErrorKind = "unreachable"

	// KindUnexpectedResponse means the provider answered with a success status
	// but the body was unparseable or carried an error.
	KindUnexpectedResponse RequestErrorKind = "unexpected_response"

	// KindInvalidServerResponse means the provider answered with a non-success status.
	KindInvalidServerResponse RequestErrorKind = "invalid_server_response"

	// KindUnauthorized means the user endpoint rejected the access token.
	KindUnauthorized RequestErrorKind = "unauthorized"
)

// ConfigurationError reports a missing endpoint or credential.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "oauth: " + e.Message
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// CallbackCSRFError reports a missing or mismatched state parameter.
// It intentionally carries no provider detail.
type CallbackCSRFError struct {
	Key string
}

func (e *CallbackCSRFError) Error() string {
	return fmt.Sprintf("oauth: CSRF detected with param key %q", e.Key)
}

func (e *CallbackCSRFError) Is(target error) bool {
	return target == ErrCallbackCSRF
}

// CallbackError carries the error parameters the provider put on the
// redirect, verbatim.
type CallbackError struct {
	Code        string
	Description string
	URI         string
}

func (e *CallbackError) Error() string {
	if e.Description == "" {
		return "oauth: " + e.Code
	}
	return "oauth: " + e.Code + ": " + e.Description
}

func (e *CallbackError) Is(target error) bool {
	return target == ErrCallback
}

// RequestError reports a failed call to the token or user endpoint.
type RequestError struct {
	// Err is the underlying transport or decode error, if any.
	Err        error
	Kind       RequestErrorKind
	Message    string
	Body       string
	StatusCode int
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oauth: %s: %v", e.Message, e.Err)
	}
	return "oauth: " + e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}

func errUnreachable(err error) *RequestError {
	return &RequestError{
		Kind:    KindUnreachable,
		Message: "Server was unreachable",
		Err:     err,
	}
}

func errUnexpectedResponse(body []byte, err error) *RequestError {
	return &RequestError{
		Kind:    KindUnexpectedResponse,
		Message: "An unexpected response was received",
		Body:    excerpt(body),
		Err:     err,
	}
}

func errInvalidServerResponse(status int, body []byte) *RequestError {
	return &RequestError{
		Kind:       KindInvalidServerResponse,
		Message:    fmt.Sprintf("Server responded with status: %d", status),
		StatusCode: status,
		Body:       excerpt(body),
	}
}

func errUnauthorizedToken(status int) *RequestError {
	return &RequestError{
		Kind:       KindUnauthorized,
		Message:    "Unauthorized token",
		StatusCode: status,
	}
}

func excerpt(body []byte) string {
	if len(body) > bodyExcerptLimit {
		return string(body[:bodyExcerptLimit])
	}
	return string(body)
}
