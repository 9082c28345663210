package domain

import (
	"net/http"

	"github.com/jmgilman/go/errors"
)

// Error codes for the recipe and image pipeline. Codes that already exist in
// the errors library are aliased so callers can match on a single set.
const (
	// CodeInvalidURL is returned when a URL string cannot be parsed.
	CodeInvalidURL errors.ErrorCode = "INVALID_URL"

	// CodeInvalidData is returned when a response body cannot be decoded.
	CodeInvalidData errors.ErrorCode = "INVALID_DATA"

	// CodeInvalidResponse is the fallback for transport failures and
	// unexpected status codes.
	CodeInvalidResponse errors.ErrorCode = "INVALID_RESPONSE"

	// CodeBadRequest maps HTTP 400.
	CodeBadRequest errors.ErrorCode = "BAD_REQUEST"

	// CodeUnauthorized maps HTTP 401.
	CodeUnauthorized = errors.CodeUnauthorized

	// CodeForbidden maps HTTP 403.
	CodeForbidden = errors.CodeForbidden

	// CodeNotFound maps HTTP 404.
	CodeNotFound = errors.CodeNotFound

	// CodeServerError maps HTTP 500-599.
	CodeServerError errors.ErrorCode = "SERVER_ERROR"

	// CodeDirectoryUnavailable is returned when the cache directory could not
	// be found or created.
	CodeDirectoryUnavailable errors.ErrorCode = "CACHE_DIRECTORY_UNAVAILABLE"

	// CodeWriteFailed is returned when writing a cache entry fails.
	CodeWriteFailed errors.ErrorCode = "CACHE_WRITE_FAILED"
)

// StatusCode maps a non-200 HTTP status to the matching error code.
// Anything without a dedicated code falls back to CodeInvalidResponse.
func StatusCode(status int) errors.ErrorCode {
	switch {
	case status == http.StatusBadRequest:
		return CodeBadRequest
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusForbidden:
		return CodeForbidden
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= 500 && status <= 599:
		return CodeServerError
	default:
		return CodeInvalidResponse
	}
}

// NewStatusError builds the error returned for an unexpected HTTP status.
func NewStatusError(status int, url string) error {
	code := StatusCode(status)
	err := errors.Newf(code, "unexpected status %d", status)
	if code == CodeServerError {
		err = errors.WithClassification(err, errors.ClassificationRetryable)
	}
	err = errors.WithContext(err, "status", status)
	return errors.WithContext(err, "url", url)
}

// NewInvalidURLError builds the error returned for an unparsable URL.
func NewInvalidURLError(url string) error {
	err := errors.New(CodeInvalidURL, "the URL is invalid")
	return errors.WithContext(err, "url", url)
}

// NewDirectoryUnavailableError builds the error returned when the cache
// directory is missing.
func NewDirectoryUnavailableError(dir string) error {
	err := errors.New(CodeDirectoryUnavailable, "cache directory could not be found or created")
	return errors.WithContext(err, "dir", dir)
}

// NewWriteFailedError wraps the cause of a failed cache write.
func NewWriteFailedError(cause error, key string) error {
	err := errors.Wrap(cause, CodeWriteFailed, "failed to write data to cache")
	return errors.WithContext(err, "key", key)
}

// CodeOf returns the error code carried by err, or the library's unknown code.
func CodeOf(err error) errors.ErrorCode {
	return errors.GetCode(err)
}
