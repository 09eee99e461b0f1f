package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        any
	}{
		{"json object", "application/json", `{"result":"valid","safe_to_send":"true"}`, map[string]any{"result": "valid", "safe_to_send": "true"}},
		{"json with charset", "application/json; charset=utf-8", `{"a":1}`, map[string]any{"a": float64(1)}},
		{"json array", "application/json", `[1,"two"]`, []any{float64(1), "two"}},
		{"json suffix type", "application/problem+json", `{"title":"x"}`, map[string]any{"title": "x"}},
		{"empty json body", "application/json", "", nil},
		{"plain text", "text/plain", "ok", "ok"},
		{"missing content type", "", "ok", "ok"},
		{"unknown content type", "application/octet-stream", "\x00\x01", "\x00\x01"},
		{"form", "application/x-www-form-urlencoded", "a=1&b=x&b=y", map[string]any{"a": "1", "b": []any{"x", "y"}}},
		{"malformed content type is lenient", "text/plain;;;", "ok", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBody(tt.contentType, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeBody_InvalidJSON(t *testing.T) {
	_, err := DecodeBody("application/json", []byte("not json"))
	require.Error(t, err)

	var decErr *DecodingError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "not json", decErr.Body)
	assert.Equal(t, "application/json", decErr.ContentType)
	assert.NotNil(t, decErr.Err)
}
