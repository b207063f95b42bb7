// Package api provides a small generic JSON client over HTTP.
//
// # Usage
//
//	client, err := api.New("https://api.example.com")
//	if err != nil {
//		return err
//	}
//	user, err := api.Fetch[User](ctx, client, "users/42")
//	created, err := api.Post[User](ctx, client, "users", NewUser{Name: "Ada"})
//
// The request URL is the base URL, a slash, and the endpoint. Fetch and Post
// are package functions because Go methods cannot take type parameters.
//
// # Error Handling
//
// Every failure is returned as an *apperr.Error value:
//
//   - Network: empty or unparsable endpoint, transport failure, or a status
//     outside 200-299
//   - Encoding: the POST body could not be marshalled
//   - Decoding: the response body is not valid JSON for the target type
//
// # Dates
//
// time.Time values travel as ISO-8601 (RFC 3339) text, so a record posted and
// decoded back compares equal.
//
// # Concurrency
//
// A Client is immutable after New. No timeout is set beyond the transport's
// own; callers bound a request through the context they pass.
package api
