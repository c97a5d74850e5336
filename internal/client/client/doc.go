// Package client is the REST transport of the GoBarber client.
//
// # Overview
//
// Client is the API contract used by the services layer; HTTPClient
// implements it over net/http against a configured base URL:
//
//	POST  /sessions          sign in, returns {user, token}
//	POST  /users             sign up
//	POST  /password/forgot   request a reset email
//	PUT   /profile           update name/email/password, returns {user}
//	PATCH /users/avatar      multipart avatar upload, returns {user}
//	GET   /providers         dashboard listing
//
// Once SetToken is called every request carries "Authorization: Bearer
// <token>". Each request also gets a fresh X-Request-ID.
//
// # Error Handling
//
// Transport failures and non-2xx responses are reported the same way: an
// *Error matching ErrRequestFailed with errors.Is. Status codes are kept on
// the error for logging only; callers are not expected to branch on them.
//
// Timeouts come from the underlying *http.Client. There are no retries.
package client
