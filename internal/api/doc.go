// Package api provides the HTTP request pipeline used by the
// QuickEmailVerification client. It handles authentication, request body
// encoding, response body decoding and translation of error statuses.
//
// # Pipeline
//
// Every request travels through an ordered middleware chain wrapped around
// the underlying [http.RoundTripper]:
//
//   - [AuthHandler]: attaches credentials to the outgoing request.
//   - [ErrorHandler]: turns responses with a status of 400 or above into an
//     [*APIError] before the caller sees them.
//
// Extra [Middleware] values supplied in [Config] run between the error
// handler and the network.
//
// Bodies are handled outside the chain by [EncodeBody] (before dispatch)
// and [DecodeBody] (after a successful response).
//
// # Request Types
//
// Request bodies are encoded according to a [RequestType]:
//
//   - [RequestTypeForm]: application/x-www-form-urlencoded (default).
//   - [RequestTypeJSON]: application/json.
//   - [RequestTypeRaw]: strings and byte slices sent unchanged.
//
// # Error Handling
//
// Status errors surface as [*APIError], bodies that claim a JSON content
// type but fail to parse surface as [*DecodingError]. Network errors are
// returned unchanged from the transport.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Its configuration is never
// mutated after [NewClient] returns.
package api
