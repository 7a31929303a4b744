// Package http implements the HTTP plumbing shared by every route group.
//
// It builds the base chi router with the cross-cutting middleware chain
// (request tracing, access logging, panic recovery, compression) and routes
// unknown paths and unsupported methods to the application's error responder.
// Route handlers written as func(w, r) error are adapted with [Handle].
package http
