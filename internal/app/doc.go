// Package app bootstraps the application.
//
// [CreateApp] turns a configuration source into a ready [App]: it loads the
// configuration, initializes the extensions, registers the route groups, the
// error handlers and the CLI commands, and finally configures logging. Each
// step runs once per call and in that order.
package app
