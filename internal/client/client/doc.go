// Package client contains the transport side of the Family Account client.
//
// HTTPClient is a small JSON-over-HTTP pipeline rooted at a fixed base URL.
// Before every Do call it reads the current bearer token from a TokenSource
// and, when one is stored, sends it as "Authorization: Bearer <token>".
// DoWithHeaders is the escape hatch for multipart uploads: the caller owns
// the header set entirely.
//
// Failures come back as *RequestError. Transport failures and timeouts wrap
// ErrUnavailable; 401 and 403 responses match ErrUnauthorized with
// errors.Is. Message extracts the text a screen should display.
//
// The package also bootstraps the local SQLite database (InitDatabase,
// RunMigrations) that backs the token store.
package client
