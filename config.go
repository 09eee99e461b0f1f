package quickemailverification

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/http/httpguts"

	"github.com/quickemailverification/quickemailverification-go/internal/api"
)

// RequestType selects how request bodies are encoded.
type RequestType = api.RequestType

// Request type constants.
const (
	// RequestTypeForm encodes bodies as application/x-www-form-urlencoded.
	RequestTypeForm = api.RequestTypeForm
	// RequestTypeJSON encodes bodies as application/json.
	RequestTypeJSON = api.RequestTypeJSON
	// RequestTypeRaw sends string and []byte bodies unchanged.
	RequestTypeRaw = api.RequestTypeRaw
)

// Config holds the settings a Client is built with. It is fixed once New
// returns; Client.Config hands out copies.
type Config struct {
	BaseURL string `json:"base_url"`
	// APIVersion is prefixed to every path as "/{APIVersion}". Empty
	// disables the prefix.
	APIVersion string `json:"api_version"`
	UserAgent  string `json:"user_agent"`
	// Headers are sent with every request. Names are lower-cased.
	Headers     map[string]string `json:"headers"`
	RequestType RequestType       `json:"request_type"`
	// AuthHeader names the header that carries an APIKey.
	AuthHeader string `json:"auth_header"`
	// Timeout bounds each request when no custom HTTP client is supplied.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the settings used when no options are given.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		APIVersion:  DefaultAPIVersion,
		UserAgent:   DefaultUserAgent,
		Headers:     map[string]string{},
		RequestType: RequestTypeForm,
		AuthHeader:  api.DefaultAuthHeader,
		Timeout:     api.DefaultTimeout,
	}
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(absoluteHTTPURL)),
		validation.Field(&c.APIVersion, validation.By(pathSegment)),
		validation.Field(&c.UserAgent, validation.By(headerValue)),
		validation.Field(&c.Headers, validation.By(headerMap)),
		validation.Field(&c.RequestType, validation.Required, validation.By(requestType)),
		validation.Field(&c.AuthHeader, validation.Required, validation.By(headerName)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var result *multierror.Error
	keys := make([]string, 0, len(fieldErrs))
	for k := range fieldErrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		result = multierror.Append(result, fmt.Errorf("%s: %w", k, fieldErrs[k]))
	}
	return result.ErrorOrNil()
}

// clone returns a copy that shares no mutable state with c.
func (c Config) clone() Config {
	headers := make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		headers[k] = v
	}
	c.Headers = headers
	return c
}

func absoluteHTTPURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return errors.New("must not include a query or fragment")
	}
	return nil
}

func requestType(value any) error {
	t, _ := value.(RequestType)
	if t != "" && !t.Valid() {
		return fmt.Errorf("must be one of %s, %s or %s", RequestTypeForm, RequestTypeJSON, RequestTypeRaw)
	}
	return nil
}

func pathSegment(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, "/?# ") {
		return errors.New("must be a single path segment")
	}
	return nil
}

func headerName(value any) error {
	s, _ := value.(string)
	if s != "" && !httpguts.ValidHeaderFieldName(s) {
		return fmt.Errorf("invalid header name %q", s)
	}
	return nil
}

func headerValue(value any) error {
	s, _ := value.(string)
	if !httpguts.ValidHeaderFieldValue(s) {
		return errors.New("invalid header value")
	}
	return nil
}

func headerMap(value any) error {
	headers, _ := value.(map[string]string)
	for name, v := range headers {
		if err := headerName(name); err != nil {
			return err
		}
		if name == "" {
			return errors.New("header name must not be empty")
		}
		if !httpguts.ValidHeaderFieldValue(v) {
			return fmt.Errorf("invalid value for header %q", name)
		}
	}
	return nil
}
