// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON or YAML config file
//  3. .env files
//  4. Environment variables
//  5. Command-line flags
//
// The application bootstrap consumes a [Source]; [Default] is the built-in
// one, [Object] and [File] serve tests and tools. Every source validates the
// merged result and reports problems as [*Error].
package config
