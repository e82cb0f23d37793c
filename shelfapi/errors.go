package shelfapi

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Code classifies an API failure. Callers are expected to branch on it
// rather than on status codes or message text.
type Code string

const (
	// CodeUnauthenticated means there was no session at call time, or
	// the server rejected the credential.
	CodeUnauthenticated Code = "unauthenticated"
	// CodeInvalidRequest means the server rejected the input as malformed.
	CodeInvalidRequest Code = "invalid_request"
	// CodeDuplicateMembership means a uniqueness constraint on a
	// (collection, game) or (user, game) pair was violated.
	CodeDuplicateMembership Code = "duplicate_membership"
	// CodeNotFound means the referenced game or collection does not exist.
	CodeNotFound Code = "not_found"
	// CodeServerError is any other 5xx or unexpected server failure.
	CodeServerError Code = "server_error"
	// CodeNetworkError means the request never reached the server, or
	// timed out before a response arrived.
	CodeNetworkError Code = "network_error"
)

// APIError represents a shelf API error. Some errors are just HTTP
// status codes, others carry more detailed messages.
type APIError struct {
	Code       Code     `json:"code"`
	StatusCode int      `json:"statusCode"`
	Messages   []string `json:"messages"`
}

var _ error = (*APIError)(nil)

func (ae *APIError) Error() string {
	if len(ae.Messages) == 0 {
		return fmt.Sprintf("shelf API error (%s, HTTP %d)", ae.Code, ae.StatusCode)
	}
	return fmt.Sprintf("shelf API error (%s, HTTP %d): %s", ae.Code, ae.StatusCode, strings.Join(ae.Messages, ", "))
}

// IsAPIError returns true if an error is a shelf API error, even if
// it's wrapped with github.com/pkg/errors.
func IsAPIError(err error) bool {
	_, ok := AsAPIError(err)
	return ok
}

// AsAPIError returns an *APIError and true if the passed error (no
// matter how deeply wrapped it is) is an *APIError. Otherwise it
// returns nil, false.
func AsAPIError(err error) (*APIError, bool) {
	rootErr := errors.Cause(err)
	apiError, ok := rootErr.(*APIError)
	return apiError, ok
}

// HasCode returns true if err is an *APIError carrying the given code.
func HasCode(err error, code Code) bool {
	if ae, ok := AsAPIError(err); ok {
		return ae.Code == code
	}
	return false
}

func networkError(cause error) *APIError {
	return &APIError{
		Code:     CodeNetworkError,
		Messages: []string{cause.Error()},
	}
}

// classifyStatus maps an HTTP status and the server's error messages to
// a Code. Some deployments report membership uniqueness violations as a
// bare 500 whose message mentions the constraint, so a recognizable
// message substring is accepted as a fallback for the dedicated 409.
func classifyStatus(statusCode int, messages []string) Code {
	switch {
	case statusCode == 401 || statusCode == 403:
		return CodeUnauthenticated
	case statusCode == 404:
		return CodeNotFound
	case statusCode == 409:
		return CodeDuplicateMembership
	case statusCode == 400 || statusCode == 422:
		return CodeInvalidRequest
	case statusCode >= 500:
		if mentionsUniqueConstraint(messages) {
			return CodeDuplicateMembership
		}
		return CodeServerError
	default:
		return CodeServerError
	}
}

func mentionsUniqueConstraint(messages []string) bool {
	for _, m := range messages {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "unique") || strings.Contains(lower, "duplicate") {
			return true
		}
	}
	return false
}
