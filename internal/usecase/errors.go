package usecase

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorConfig       ErrorCode = "CONFIG_ERROR"
	ErrorUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrorInternal     ErrorCode = "INTERNAL_ERROR"
)

const (
	ReasonMissingAPIKey    = "missing_api_key"
	ReasonAPIKeyLookup     = "api_key_lookup_error"
	ReasonMalformedBody    = "malformed_body"
	ReasonInvalidFieldType = "invalid_field_type"
	ReasonEmptyQuestion    = "empty_question"
	ReasonProviderStatus   = "openai_error"
	ReasonProviderRequest  = "openai_request_error"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UpstreamStatus returns the provider's HTTP status when the error wraps a
// non-2xx provider response.
func (e *Error) UpstreamStatus() (int, bool) {
	if e == nil {
		return 0, false
	}
	return upstreamStatusCode(e.Err)
}

// UpstreamBody returns the provider's response text for non-2xx provider
// responses, or "".
func (e *Error) UpstreamBody() string {
	if e == nil {
		return ""
	}
	var withBody responseBodier
	if !errors.As(e.Err, &withBody) {
		return ""
	}
	return withBody.ResponseBody()
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

type responseBodier interface {
	ResponseBody() string
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
