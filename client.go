package quickemailverification

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/quickemailverification/quickemailverification-go/internal/api"
)

// Method is an HTTP method supported by Client.Request.
type Method string

// Supported methods.
const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

// Client is the QuickEmailVerification API client.
type Client struct {
	cfg       Config
	headers   map[string]string // lower-cased, user-agent seeded
	apiClient *api.Client
}

// New creates a client authenticated with auth. Pass APIKey("...") or
// BasicAuth{...}; nil sends no credentials. Invalid settings are reported
// as a *ConfigurationError.
func New(auth Credentials, opts ...Option) (*Client, error) {
	cfg := &clientConfig{Config: DefaultConfig()}
	for _, opt := range opts {
		opt(cfg)
	}

	var result *multierror.Error
	if err := cfg.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	authenticator, err := authenticatorFor(auth, cfg.AuthHeader)
	if err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	apiClient, err := buildAPIClient(cfg, authenticator)
	if err != nil {
		return nil, &ConfigurationError{Err: err} //coverage:ignore
	}

	frozen := cfg.clone()
	headers := map[string]string{"user-agent": frozen.UserAgent}
	for k, v := range frozen.Headers {
		headers[k] = v
	}

	return &Client{
		cfg:       frozen,
		headers:   headers,
		apiClient: apiClient,
	}, nil
}

// buildAPIClient creates the transport client from the given config.
func buildAPIClient(cfg *clientConfig, auth api.Authenticator) (*api.Client, error) {
	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return api.NewClient(api.Config{
		BaseURL:     cfg.BaseURL,
		HTTPClient:  httpClient,
		Auth:        auth,
		Logger:      cfg.logger,
		Middlewares: cfg.middlewares,
	})
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg.clone()
}

// Get sends a GET request. params become the query string and replace
// values of the same key set with WithQuery or WithQueryParams.
func (c *Client) Get(ctx context.Context, path string, params any, opts ...RequestOption) (*Response, error) {
	opts = append(opts[:len(opts):len(opts)], WithQueryParams(params))
	return c.Request(ctx, MethodGet, path, nil, opts...)
}

// Post sends a POST request with body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, MethodPost, path, body, opts...)
}

// Put sends a PUT request with body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, MethodPut, path, body, opts...)
}

// Patch sends a PATCH request with body.
func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, MethodPatch, path, body, opts...)
}

// Delete sends a DELETE request with body.
func (c *Client) Delete(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, MethodDelete, path, body, opts...)
}

// Request sends a request and decodes the response.
//
// For GET the body is ignored. For every other method a nil body is sent
// as an empty mapping in the configured request type. Responses with a
// status of 400 or above are returned as *APIError.
func (c *Client) Request(ctx context.Context, method Method, path string, body any, opts ...RequestOption) (*Response, error) {
	rc := &requestConfig{requestType: c.cfg.RequestType}
	for _, opt := range opts {
		opt(rc)
	}

	headers := mergeHeaders(c.headers, rc.headers)

	call := &api.Call{Method: string(method)}
	switch method {
	case MethodGet:
	case MethodPost, MethodPut, MethodPatch, MethodDelete:
		data, contentType, err := api.EncodeBody(rc.requestType, body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		if contentType != "" {
			headers["content-type"] = contentType
		}
		call.Body = data
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	query, err := mergeQuery(rc.query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	call.Query = query

	version := c.cfg.APIVersion
	if rc.version != nil {
		version = *rc.version
	}
	call.Path = resolvePath(version, path)

	call.Header = make(http.Header, len(headers))
	for k, v := range headers {
		call.Header.Set(k, v)
	}

	result, err := c.apiClient.Do(ctx, call)
	if err != nil {
		return nil, wrapError(err)
	}

	return &Response{
		Body:       result.Body,
		StatusCode: result.StatusCode,
		Header:     result.Header,
	}, nil
}

// mergeHeaders returns base overlaid with override. Keys are lower-cased so
// an override matches a base header regardless of the caller's casing.
func mergeHeaders(base, override map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		merged[strings.ToLower(k)] = v
	}
	for k, v := range override {
		merged[strings.ToLower(k)] = v
	}
	return merged
}

// mergeQuery encodes each source in order; a later source replaces every
// value of a key set by an earlier one.
func mergeQuery(sources []any) (url.Values, error) {
	query := url.Values{}
	for _, src := range sources {
		values, err := api.EncodeParams(src)
		if err != nil {
			return nil, err
		}
		for k, vv := range values {
			query[k] = vv
		}
	}
	return query, nil
}

// resolvePath prefixes path with "/{version}" when version is set.
func resolvePath(version, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if version == "" {
		return path
	}
	return "/" + version + path
}
