package quickemailverification

import (
	"github.com/quickemailverification/quickemailverification-go/internal/api"
)

// Credentials authenticate every request made by a Client. Use APIKey or
// BasicAuth; a nil Credentials sends no authentication.
type Credentials interface {
	authenticator(header string) (api.Authenticator, error)
}

// authenticatorFor resolves auth for the given API key header. A nil
// Credentials yields no authenticator; a nil *APIKey or *BasicAuth is
// reported like its empty value.
func authenticatorFor(auth Credentials, header string) (api.Authenticator, error) {
	switch a := auth.(type) {
	case nil:
		return nil, nil
	case *APIKey:
		if a == nil {
			return nil, ErrMissingAPIKey
		}
	case *BasicAuth:
		if a == nil {
			return nil, ErrMissingUsername
		}
	}
	return auth.authenticator(header)
}

// APIKey is sent verbatim in the configured auth header (Authorization by
// default, see WithAuthHeader).
type APIKey string

func (k APIKey) authenticator(header string) (api.Authenticator, error) {
	if k == "" {
		return nil, ErrMissingAPIKey
	}
	return api.HeaderAuth{Name: header, Value: string(k)}, nil
}

// BasicAuth is sent as a standard Basic Authorization header.
type BasicAuth struct {
	Username string
	Password string
}

func (b BasicAuth) authenticator(string) (api.Authenticator, error) {
	if b.Username == "" {
		return nil, ErrMissingUsername
	}
	return api.BasicAuth{Username: b.Username, Password: b.Password}, nil
}
