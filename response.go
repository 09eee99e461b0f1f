package quickemailverification

import "net/http"

// Response is a successful API response.
type Response struct {
	// Body is the decoded payload: map[string]any or []any for JSON, the
	// raw text for any other content type.
	Body       any
	StatusCode int
	Header     http.Header
}

// Decode maps the response body into v, which must be a pointer to a
// struct or map. Fields are matched by their json tag and string values
// such as "true" are converted to the field type.
func (r *Response) Decode(v any) error {
	return decodeInto(r.Body, v)
}
