// Package handler is the HTTP layer after the router.
//
// Handlers bind and validate input, call the service layer once, store
// flash messages and pick a respond.Response for the negotiated format.
package handler
