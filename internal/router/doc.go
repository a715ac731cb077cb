// Package router maps parsed HTTP requests onto route handlers.
//
// The Dispatcher evaluates a fixed, ordered route table (see
// Dispatcher.Dispatch) and delegates to plain handler methods: a welcome
// page, a query echo, static file serving with path traversal protection,
// and CRUD over the in-memory record store.
//
// Handlers enforce their own allowed method sets and express every failure
// as a well-formed JSON error response ({"error": message}) with the
// matching status code. Panics inside handlers are caught at the dispatch
// boundary and downgraded to a 500, so a routing fault can never take down
// the connection it ran on, let alone the server.
package router
