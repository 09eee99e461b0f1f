package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultTimeout is the request timeout used when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// Config configures the transport client.
type Config struct {
	// BaseURL is the absolute URL every request path is appended to.
	BaseURL string
	// HTTPClient is copied, never modified. Its Transport is wrapped by the
	// middleware chain.
	HTTPClient *http.Client
	// Auth attaches credentials to every request. Nil sends none.
	Auth Authenticator
	// Logger receives debug traces of each exchange.
	Logger hclog.Logger
	// Middlewares run inside the auth and error stages, closest to the
	// network.
	Middlewares []Middleware
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     hclog.Logger
}

// Call describes a single prepared request.
type Call struct {
	Method string
	// Path is appended to the base URL as is.
	Path   string
	Query  url.Values
	Header http.Header
	// Body is sent when non-nil.
	Body []byte
}

// Result is a successfully decoded response.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       any
}

// NewClient creates a transport client with the auth and error handlers
// installed.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var hc http.Client
	if cfg.HTTPClient != nil {
		hc = *cfg.HTTPClient
	} else {
		hc.Timeout = DefaultTimeout
	}

	mws := []Middleware{
		AuthHandler(cfg.Auth),
		ErrorHandler(),
	}
	mws = append(mws, cfg.Middlewares...)
	mws = append(mws, LogHandler(logger))
	hc.Transport = Chain(hc.Transport, mws...)

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &hc,
		logger:     logger,
	}, nil
}

// Do sends the call and decodes the response body. Status errors are
// returned as *APIError, undecodable structured bodies as *DecodingError.
func (c *Client) Do(ctx context.Context, call *Call) (*Result, error) {
	endpoint := c.baseURL + call.Path
	if len(call.Query) > 0 {
		endpoint += "?" + call.Query.Encode()
	}

	var bodyReader io.Reader
	if call.Body != nil {
		bodyReader = bytes.NewReader(call.Body)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vv := range call.Header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// http.Client wraps RoundTripper errors in *url.Error; surface
		// status errors from the ErrorHandler directly.
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	body, err := DecodeBody(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		return nil, err
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// LogHandler returns a middleware that traces every exchange at debug
// level. Errors are left to the caller.
func LogHandler(logger hclog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			logger.Debug("sending request", "method", req.Method, "url", req.URL.Redacted())

			resp, err := next.RoundTrip(req)
			if err == nil {
				logger.Debug("received response",
					"method", req.Method,
					"url", req.URL.Redacted(),
					"status", resp.StatusCode,
					"duration", time.Since(start))
			}
			return resp, err
		})
	}
}
