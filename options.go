package quickemailverification

import (
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/quickemailverification/quickemailverification-go/internal/api"
)

const (
	// DefaultBaseURL is the QuickEmailVerification API endpoint.
	DefaultBaseURL = "http://api.quickemailverification.com"
	// DefaultAPIVersion is the path segment prefixed to every request.
	DefaultAPIVersion = "v1"
	// DefaultUserAgent identifies this library to the API.
	DefaultUserAgent = "quickemailverification-go/" + Version +
		" (https://github.com/quickemailverification/quickemailverification-go)"
)

// Middleware wraps the transport of every request. Middlewares run after
// authentication and status error handling have been installed, closest
// to the network, in the order given.
type Middleware = api.Middleware

// clientConfig holds configuration for the client.
type clientConfig struct {
	Config
	httpClient  *http.Client
	logger      hclog.Logger
	middlewares []Middleware
}

// requestConfig holds the per-call overrides of a single request.
type requestConfig struct {
	headers     map[string]string
	query       []any
	version     *string
	requestType RequestType
}

// Option configures the client.
type Option func(*clientConfig)

// RequestOption configures a single request. Values set here take
// precedence over the client configuration.
type RequestOption func(*requestConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.BaseURL = url
	}
}

// WithAPIVersion sets the version segment prefixed to every path.
// An empty version disables the prefix.
func WithAPIVersion(version string) Option {
	return func(c *clientConfig) {
		c.APIVersion = version
	}
}

// WithUserAgent sets the User-Agent header. A "user-agent" entry set with
// WithHeader takes precedence.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.UserAgent = ua
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(name, value string) Option {
	return func(c *clientConfig) {
		c.Headers = setHeader(c.Headers, name, value)
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *clientConfig) {
		for k, v := range headers {
			c.Headers = setHeader(c.Headers, k, v)
		}
	}
}

// WithDefaultRequestType sets how request bodies are encoded.
// Default: RequestTypeForm
func WithDefaultRequestType(t RequestType) Option {
	return func(c *clientConfig) {
		c.RequestType = t
	}
}

// WithAuthHeader sets the header that carries an APIKey.
// Default: Authorization
func WithAuthHeader(name string) Option {
	return func(c *clientConfig) {
		c.AuthHeader = name
	}
}

// WithTimeout sets the per-request timeout.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client. The client is copied and its
// transport wrapped; the value passed in is not modified.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithLogger sets the logger used for debug traces of each request.
// Default: a null logger
func WithLogger(logger hclog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithMiddleware adds transport middlewares, for example to record
// metrics or inject tracing headers. Nil middlewares are ignored.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *clientConfig) {
		c.middlewares = append(c.middlewares, mws...)
	}
}

// WithRequestHeader sets a header for this request only. It overrides a
// client header with the same name, regardless of case.
func WithRequestHeader(name, value string) RequestOption {
	return func(c *requestConfig) {
		c.headers = setHeader(c.headers, name, value)
	}
}

// WithRequestHeaders sets headers for this request only.
func WithRequestHeaders(headers map[string]string) RequestOption {
	return func(c *requestConfig) {
		for k, v := range headers {
			c.headers = setHeader(c.headers, k, v)
		}
	}
}

// WithQuery sets a query parameter.
func WithQuery(key, value string) RequestOption {
	return func(c *requestConfig) {
		c.query = append(c.query, map[string]string{key: value})
	}
}

// WithQueryParams merges params into the query string. params may be a
// map, url.Values or a struct with json tags. Later values replace earlier
// ones with the same key.
func WithQueryParams(params any) RequestOption {
	return func(c *requestConfig) {
		if params != nil {
			c.query = append(c.query, params)
		}
	}
}

// WithVersion replaces the client API version for this request.
func WithVersion(version string) RequestOption {
	return func(c *requestConfig) {
		c.version = &version
	}
}

// WithoutVersion sends this request without a version prefix.
func WithoutVersion() RequestOption {
	return WithVersion("")
}

// WithRequestType overrides the body encoding for this request.
func WithRequestType(t RequestType) RequestOption {
	return func(c *requestConfig) {
		c.requestType = t
	}
}

func setHeader(headers map[string]string, name, value string) map[string]string {
	if headers == nil {
		headers = make(map[string]string)
	}
	headers[strings.ToLower(name)] = value
	return headers
}
