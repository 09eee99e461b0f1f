package quickemailverification

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickemailverification/quickemailverification-go/internal/api"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrInvalidConfig", ErrInvalidConfig},
		{"ErrMissingAPIKey", ErrMissingAPIKey},
		{"ErrMissingUsername", ErrMissingUsername},
		{"ErrUnsupportedMethod", ErrUnsupportedMethod},
		{"ErrBadRequest", ErrBadRequest},
		{"ErrUnauthorized", ErrUnauthorized},
		{"ErrPaymentRequired", ErrPaymentRequired},
		{"ErrForbidden", ErrForbidden},
		{"ErrNotFound", ErrNotFound},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrServer", ErrServer},
		{"ErrDecoding", ErrDecoding},
	}

	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			require.NotNil(t, s.err)
			assert.NotEmpty(t, s.err.Error())
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "API error 422: invalid email", (&APIError{StatusCode: 422, Message: "invalid email"}).Error())
	assert.Equal(t, "API error 500", (&APIError{StatusCode: 500}).Error())
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		statusCode int
		target     error
		expected   bool
	}{
		{401, ErrUnauthorized, true},
		{402, ErrPaymentRequired, true},
		{404, ErrNotFound, true},
		{429, ErrRateLimited, true},
		{502, ErrServer, true},
		{422, ErrBadRequest, false},
		{401, ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.statusCode), func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.Is(&APIError{StatusCode: tt.statusCode}, tt.target))
		})
	}
}

func TestAPIError_Decode(t *testing.T) {
	err := &APIError{
		StatusCode: 400,
		Body:       map[string]any{"success": "false", "message": "Missing parameter: email"},
	}

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, err.Decode(&payload))
	assert.False(t, payload.Success)
	assert.Equal(t, "Missing parameter: email", payload.Message)
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Err: ErrMissingAPIKey}

	assert.Contains(t, err.Error(), "invalid configuration")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestDecodingError(t *testing.T) {
	cause := errors.New("invalid character")
	err := &DecodingError{ContentType: "application/json", Body: "x", Err: cause}

	assert.ErrorIs(t, err, ErrDecoding)
	assert.ErrorIs(t, err, cause)
}

func TestSDKErrorInterface(t *testing.T) {
	var _ Error = (*ConfigurationError)(nil)
	var _ Error = (*APIError)(nil)
	var _ Error = (*DecodingError)(nil)
}

func TestWrapError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, wrapError(nil))
	})

	t.Run("api error", func(t *testing.T) {
		err := wrapError(&api.APIError{StatusCode: 404, Message: "not found", Body: "not found"})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, "not found", apiErr.Message)
		assert.Equal(t, "not found", apiErr.Body)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("decoding error", func(t *testing.T) {
		cause := errors.New("bad json")
		err := wrapError(&api.DecodingError{ContentType: "application/json", Body: "{", Err: cause})

		var decErr *DecodingError
		require.True(t, errors.As(err, &decErr))
		assert.Equal(t, "{", decErr.Body)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("transport error unchanged", func(t *testing.T) {
		orig := &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}
		assert.Same(t, orig, wrapError(orig))
	})
}
