// Package quickemailverification provides a Go client for the
// QuickEmailVerification REST API.
//
// The client composes authentication, error translation, request body
// encoding and response body decoding into a single call path. Each verb
// method blocks until the exchange completes and returns a *Response or an
// error.
//
// Basic usage:
//
//	client, err := quickemailverification.New(quickemailverification.APIKey("your-api-key"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get(ctx, "/verify", map[string]string{"email": "user@example.com"})
//	if err != nil {
//	    var apiErr *quickemailverification.APIError
//	    if errors.As(err, &apiErr) {
//	        log.Fatalf("API returned %d: %s", apiErr.StatusCode, apiErr.Message)
//	    }
//	    log.Fatal(err)
//	}
//
//	fmt.Println(resp.Body)
//
// Per-call overrides are passed as RequestOption values:
//
//	resp, err := client.Post(ctx, "/batches", map[string]any{"name": "x"},
//	    quickemailverification.WithRequestType(quickemailverification.RequestTypeJSON),
//	    quickemailverification.WithRequestHeader("X-Trace", "abc"),
//	)
package quickemailverification
