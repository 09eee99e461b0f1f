package quickemailverification

import (
	"net/http"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConstants(t *testing.T) {
	assert.Equal(t, "http://api.quickemailverification.com", DefaultBaseURL)
	assert.Equal(t, "v1", DefaultAPIVersion)
	assert.Contains(t, DefaultUserAgent, "quickemailverification-go/"+Version)
}

func TestWithBaseURL(t *testing.T) {
	cfg := &clientConfig{}
	WithBaseURL("https://custom.example.com")(cfg)
	assert.Equal(t, "https://custom.example.com", cfg.BaseURL)
}

func TestWithAPIVersion(t *testing.T) {
	cfg := &clientConfig{}
	WithAPIVersion("v2")(cfg)
	assert.Equal(t, "v2", cfg.APIVersion)
}

func TestWithHeader_LowercasesName(t *testing.T) {
	cfg := &clientConfig{}
	WithHeader("X-Custom", "a")(cfg)
	WithHeaders(map[string]string{"ACCEPT": "text/plain"})(cfg)
	WithHeader("x-CUSTOM", "b")(cfg)

	assert.Equal(t, map[string]string{"x-custom": "b", "accept": "text/plain"}, cfg.Headers)
}

func TestWithHTTPClient(t *testing.T) {
	cfg := &clientConfig{}
	customClient := &http.Client{Timeout: 99 * time.Second}
	WithHTTPClient(customClient)(cfg)
	assert.Same(t, customClient, cfg.httpClient)
}

func TestWithTimeout(t *testing.T) {
	cfg := &clientConfig{}
	WithTimeout(120 * time.Second)(cfg)
	assert.Equal(t, 120*time.Second, cfg.Timeout)
}

func TestWithLogger(t *testing.T) {
	cfg := &clientConfig{}
	logger := hclog.NewNullLogger()
	WithLogger(logger)(cfg)
	assert.Equal(t, logger, cfg.logger)
}

func TestWithDefaultRequestType(t *testing.T) {
	cfg := &clientConfig{}
	WithDefaultRequestType(RequestTypeJSON)(cfg)
	assert.Equal(t, RequestTypeJSON, cfg.RequestType)
}

func TestWithAuthHeader(t *testing.T) {
	cfg := &clientConfig{}
	WithAuthHeader("X-API-Key")(cfg)
	assert.Equal(t, "X-API-Key", cfg.AuthHeader)
}

func TestRequestOptions(t *testing.T) {
	rc := &requestConfig{}
	WithRequestHeader("X-Trace", "1")(rc)
	WithRequestHeaders(map[string]string{"Accept": "application/json"})(rc)
	WithQuery("page", "2")(rc)
	WithQueryParams(nil)(rc)
	WithRequestType(RequestTypeRaw)(rc)
	WithVersion("v2")(rc)

	assert.Equal(t, map[string]string{"x-trace": "1", "accept": "application/json"}, rc.headers)
	assert.Len(t, rc.query, 1)
	assert.Equal(t, RequestTypeRaw, rc.requestType)
	if assert.NotNil(t, rc.version) {
		assert.Equal(t, "v2", *rc.version)
	}

	WithoutVersion()(rc)
	assert.Equal(t, "", *rc.version)
}

func TestWithMiddleware(t *testing.T) {
	cfg := &clientConfig{}
	mw := func(next http.RoundTripper) http.RoundTripper { return next }
	WithMiddleware(mw)(cfg)
	WithMiddleware(mw, mw)(cfg)
	assert.Len(t, cfg.middlewares, 3)
}
