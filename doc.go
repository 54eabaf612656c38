// Package stayhooks is a client for the StayHere webhook APIs. It manages
// webhook credentials for a room (create, update, rotate, delete) using an
// owner token, and delivers message, embed, poll, and image payloads to
// invoke endpoints using a per-webhook shared secret.
//
// Payloads are validated client-side before any request is made, and every
// failure surfaces as a category-tagged error that callers can classify with
// IsValidation, IsAuth, IsHTTP, and IsNetwork. The client performs exactly
// one request per call; retry policy belongs to the caller.
package stayhooks
