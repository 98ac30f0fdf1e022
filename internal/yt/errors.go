package yt

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

const (
	CodeTransient         = "E_TRANSIENT"
	CodeQuotaExceeded     = "E_QUOTA_EXCEEDED"
	CodeAuthInvalid       = "E_AUTH_INVALID"
	CodeMalformedResponse = "E_MALFORMED_RESPONSE"
	CodeInvalidDuration   = "E_INVALID_DURATION"
)

// Error wraps YouTube API and data-contract failures with a retryability hint.
type Error struct {
	Code      string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

func wrapError(code string, retryable bool, err error) *Error {
	return &Error{Code: code, Retryable: retryable, Err: err}
}

// ErrorCode returns the code of the first *Error in err's chain, or "".
func ErrorCode(err error) string {
	var ytErr *Error
	if errors.As(err, &ytErr) {
		return ytErr.Code
	}
	return ""
}

// IsRetryable reports whether a failed run may succeed if repeated.
// Errors that carry no classification (sink and storage failures) are retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var ytErr *Error
	if errors.As(err, &ytErr) {
		return ytErr.Retryable
	}
	return true
}

var quotaReasons = map[string]bool{
	"quotaExceeded":           true,
	"dailyLimitExceeded":      true,
	"dailyLimitExceededUnreg": true,
}

var authReasons = map[string]bool{
	"keyInvalid":          true,
	"keyExpired":          true,
	"forbidden":           true,
	"accessNotConfigured": true,
}

// classifyAPIError converts google api client errors into *Error.
func classifyAPIError(err error) *Error {
	if err == nil {
		return nil
	}
	var ytErr *Error
	if errors.As(err, &ytErr) {
		return ytErr
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		for _, item := range gErr.Errors {
			if quotaReasons[item.Reason] {
				return wrapError(CodeQuotaExceeded, false, err)
			}
			if authReasons[item.Reason] {
				return wrapError(CodeAuthInvalid, false, err)
			}
		}
		switch {
		case gErr.Code == http.StatusTooManyRequests || gErr.Code >= 500:
			return wrapError(CodeTransient, true, err)
		case gErr.Code == http.StatusUnauthorized || gErr.Code == http.StatusForbidden:
			return wrapError(CodeAuthInvalid, false, err)
		default:
			return wrapError(CodeMalformedResponse, false, err)
		}
	}

	// Transport failures: timeouts, resets, DNS.
	return wrapError(CodeTransient, true, err)
}
