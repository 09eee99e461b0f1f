package quickemailverification

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"

	"github.com/quickemailverification/quickemailverification-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidConfig is matched by every *ConfigurationError.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrMissingAPIKey is returned when an empty API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrMissingUsername is returned when basic auth has no username.
	ErrMissingUsername = errors.New("basic auth username is required")

	// ErrUnsupportedMethod is returned for a Method outside GET, POST, PUT,
	// PATCH and DELETE.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	// ErrBadRequest is returned when the API rejects a malformed request (400).
	ErrBadRequest = api.ErrBadRequest

	// ErrUnauthorized is returned when the credentials are missing or invalid (401).
	ErrUnauthorized = api.ErrUnauthorized

	// ErrPaymentRequired is returned when the account has no credits left (402).
	ErrPaymentRequired = api.ErrPaymentRequired

	// ErrForbidden is returned when the credentials lack access (403).
	ErrForbidden = api.ErrForbidden

	// ErrNotFound is returned when the resource does not exist (404).
	ErrNotFound = api.ErrNotFound

	// ErrRateLimited is returned when the API rate limit is exceeded (429).
	ErrRateLimited = api.ErrRateLimited

	// ErrServer is returned for any 5xx status.
	ErrServer = api.ErrServer

	// ErrDecoding is returned when a structured response body cannot be parsed.
	ErrDecoding = api.ErrDecoding
)

// Error is implemented by all errors created by this package.
type Error interface {
	error
	QuickEmailVerificationError() // marker method
}

// ConfigurationError reports invalid settings passed to New. Err holds every
// problem found, not just the first.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// QuickEmailVerificationError implements the Error interface.
func (e *ConfigurationError) QuickEmailVerificationError() {}

// APIError is returned in place of a Response when the API answers with a
// status of 400 or above.
type APIError struct {
	StatusCode int
	// Body is the decoded error payload, or the raw body text when the
	// payload could not be decoded.
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
	return (&api.APIError{StatusCode: e.StatusCode}).Is(target)
}

// Decode maps the error body into v, which must be a pointer.
func (e *APIError) Decode(v any) error {
	return decodeInto(e.Body, v)
}

// QuickEmailVerificationError implements the Error interface.
func (e *APIError) QuickEmailVerificationError() {}

// DecodingError reports a response body that declared a structured content
// type but failed to parse.
type DecodingError struct {
	ContentType string
	Body        string
	Err         error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.ContentType, e.Err)
}

// Unwrap returns the underlying parser error.
func (e *DecodingError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecodingError) Is(target error) bool {
	return target == ErrDecoding
}

// QuickEmailVerificationError implements the Error interface.
func (e *DecodingError) QuickEmailVerificationError() {}

// wrapError converts internal API errors to public errors.
// Transport errors are returned unchanged.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.Body,
			Message:    apiErr.Message,
			Header:     apiErr.Header,
		}
	}

	var decErr *api.DecodingError
	if errors.As(err, &decErr) {
		return &DecodingError{
			ContentType: decErr.ContentType,
			Body:        decErr.Body,
			Err:         decErr.Err,
		}
	}

	return err
}

func decodeInto(body, v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}
	return dec.Decode(body)
}
