// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request logging, flash sessions, rate limiting, New Relic
// tracing and panic recovery. The global error handler lives here too.
package middleware
