package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrBadRequest indicates the request was rejected as malformed (400).
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized indicates the credentials are missing or invalid (401).
	ErrUnauthorized = errors.New("invalid or missing credentials")
	// ErrPaymentRequired indicates the account has run out of credits (402).
	ErrPaymentRequired = errors.New("payment required")
	// ErrForbidden indicates the credentials lack access to the resource (403).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the requested resource does not exist (404).
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimited indicates the rate limit has been exceeded (429).
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrServer indicates the API failed to process the request (5xx).
	ErrServer = errors.New("server error")
	// ErrDecoding indicates a structured response body could not be parsed.
	ErrDecoding = errors.New("response decoding failed")
)

// APIError represents an HTTP error from the QuickEmailVerification API.
type APIError struct {
	StatusCode int
	// Body is the decoded error payload, or the raw body text when it
	// could not be decoded.
	Body    any
	Message string
	Header  http.Header
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return target == ErrBadRequest
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusPaymentRequired:
		return target == ErrPaymentRequired
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	}
	return e.StatusCode >= 500 && target == ErrServer
}

// DecodingError reports a response body that declared a structured content
// type but could not be parsed.
type DecodingError struct {
	ContentType string
	Body        string
	Err         error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.ContentType, e.Err)
}

func (e *DecodingError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecodingError) Is(target error) bool {
	return target == ErrDecoding
}

// ErrorHandler returns a middleware that converts responses with a status
// of 400 or above into an *APIError. The response body is consumed and
// closed; successful responses pass through unchanged.
func ErrorHandler() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil {
				return resp, err
			}
			if resp.StatusCode < http.StatusBadRequest {
				return resp, nil
			}
			return nil, parseErrorResponse(resp)
		})
	}
}

func parseErrorResponse(resp *http.Response) error {
	var raw []byte
	if resp.Body != nil {
		defer resp.Body.Close()
		raw, _ = io.ReadAll(resp.Body)
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
	}

	body, err := DecodeBody(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		apiErr.Body = string(raw)
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	apiErr.Body = body
	apiErr.Message = errorMessage(body)
	return apiErr
}

// errorMessage extracts a human readable message from a decoded error body.
func errorMessage(body any) string {
	switch b := body.(type) {
	case map[string]any:
		for _, key := range []string{"message", "error"} {
			if s, ok := b[key].(string); ok && s != "" {
				return s
			}
		}
		return ""
	case string:
		return strings.TrimSpace(b)
	}
	return ""
}
