package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureRequest(t *testing.T, mws ...Middleware) *http.Request {
	t.Helper()

	var got *http.Request
	rt := Chain(RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		got = req
		return newResponse(http.StatusOK, "", ""), nil
	}), mws...)

	req, err := http.NewRequest(http.MethodGet, "https://example.com/v1/verify?email=a%40b.com", nil)
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Empty(t, req.Header.Get("Authorization"), "caller request must not be mutated")
	return got
}

func TestAuthHandler_HeaderAuth(t *testing.T) {
	got := captureRequest(t, AuthHandler(HeaderAuth{Value: "secret-key"}))
	assert.Equal(t, "secret-key", got.Header.Get("Authorization"))
	assert.Equal(t, "email=a%40b.com", got.URL.RawQuery)
}

func TestAuthHandler_CustomHeaderName(t *testing.T) {
	got := captureRequest(t, AuthHandler(HeaderAuth{Name: "X-API-Key", Value: "secret-key"}))
	assert.Equal(t, "secret-key", got.Header.Get("X-API-Key"))
	assert.Empty(t, got.Header.Get("Authorization"))
}

func TestAuthHandler_BasicAuth(t *testing.T) {
	got := captureRequest(t, AuthHandler(BasicAuth{Username: "u", Password: "p"}))
	assert.Equal(t, "Basic dTpw", got.Header.Get("Authorization"))

	user, pass, ok := got.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "u", user)
	assert.Equal(t, "p", pass)
}

func TestAuthHandler_Nil(t *testing.T) {
	got := captureRequest(t, AuthHandler(nil))
	assert.Empty(t, got.Header.Get("Authorization"))
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(req)
			})
		}
	}

	captureRequest(t, mark("first"), nil, mark("second"))
	assert.Equal(t, []string{"first", "second"}, order)
}
