package api

import "net/http"

// DefaultAuthHeader is the header that carries an API key.
const DefaultAuthHeader = "Authorization"

// Authenticator attaches credentials to an outgoing request.
type Authenticator interface {
	Authenticate(req *http.Request)
}

// HeaderAuth sends Value verbatim in the header Name.
type HeaderAuth struct {
	Name  string
	Value string
}

// Authenticate implements Authenticator.
func (a HeaderAuth) Authenticate(req *http.Request) {
	name := a.Name
	if name == "" {
		name = DefaultAuthHeader
	}
	req.Header.Set(name, a.Value)
}

// BasicAuth sends the standard Basic Authorization header.
type BasicAuth struct {
	Username string
	Password string
}

// Authenticate implements Authenticator.
func (a BasicAuth) Authenticate(req *http.Request) {
	req.SetBasicAuth(a.Username, a.Password)
}

// AuthHandler returns a middleware that authenticates every request.
// The request is cloned so the caller's value is left untouched, as
// required by the http.RoundTripper contract.
func AuthHandler(auth Authenticator) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if auth == nil {
			return next
		}
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			req = req.Clone(req.Context())
			auth.Authenticate(req)
			return next.RoundTrip(req)
		})
	}
}
