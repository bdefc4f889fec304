// Package httputil provides shared HTTP response helpers for handlers.
//
// Handlers use these instead of raw http.ResponseWriter calls so that error
// envelopes stay consistent and internal error detail never leaks to
// clients.
package httputil
