// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// application. It aggregates all sub-configurations and is populated by
// merging built-in defaults, .env files, an optional JSON/YAML file,
// environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - validate: go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds application-level settings such as the environment name,
	// debug mode and the secret key.
	App App `envPrefix:"APP_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Security holds password hashing and CSRF protection settings.
	Security Security `envPrefix:"SECURITY_"`

	// Cache selects and tunes the cache backend.
	Cache Cache `envPrefix:"CACHE_"`

	// Mail holds SMTP settings for outgoing mail.
	Mail Mail `envPrefix:"MAIL_"`

	// DebugToolbar controls the development diagnostics endpoints.
	DebugToolbar DebugToolbar `envPrefix:"DEBUG_TB_"`

	// Assets holds static file locations used by the fingerprinting extension.
	Assets Assets `envPrefix:"STATIC_"`

	// Logging holds log output settings.
	Logging Logging `envPrefix:"LOG_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	FilePath string `env:"CONFIG"`
}

// Environment names accepted by App.Env.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTesting     = "testing"
)

// App holds application-level configuration values.
type App struct {
	// Env is the deployment environment: production, development or testing.
	// Env: APP_ENV
	Env string `env:"ENV" validate:"oneof=production development testing"`

	// Debug enables debug behaviour (verbose logging, debug toolbar).
	// Env: APP_DEBUG
	Debug bool `env:"DEBUG"`

	// SecretKey signs CSRF tokens. Must be kept confidential.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY" validate:"required"`

	// SendFileMaxAge is the Cache-Control max-age for static files that are
	// requested without a content fingerprint.
	// Env: APP_SEND_FILE_MAX_AGE
	SendFileMaxAge time.Duration `env:"SEND_FILE_MAX_AGE" validate:"min=0"`

	// MembersPasswordHash is the bcrypt hash guarding the members area.
	// An empty value locks the members area entirely.
	// Env: APP_MEMBERS_PASSWORD_HASH
	MembersPasswordHash string `env:"MEMBERS_PASSWORD_HASH"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" validate:"required,hostname_port"`

	// RequestTimeout bounds reading a request and writing its response.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"min=0"`

	// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"min=0"`
}

// Security holds password hashing and CSRF settings.
type Security struct {
	// BcryptLogRounds is the bcrypt cost factor.
	// Env: SECURITY_BCRYPT_LOG_ROUNDS
	BcryptLogRounds int `env:"BCRYPT_LOG_ROUNDS" validate:"min=4,max=31"`

	// CSRFTimeLimit is how long an issued CSRF token stays valid.
	// Env: SECURITY_CSRF_TIME_LIMIT
	CSRFTimeLimit time.Duration `env:"CSRF_TIME_LIMIT" validate:"min=0"`

	// DisableCSRF switches CSRF validation off (tests, API-only deployments).
	// Env: SECURITY_DISABLE_CSRF
	DisableCSRF bool `env:"DISABLE_CSRF"`
}

// Cache backend names accepted by Cache.Type.
const (
	CacheNull   = "null"
	CacheSimple = "simple"
	CacheRedis  = "redis"
)

// Cache selects the cache backend.
type Cache struct {
	// Type is one of "null", "simple" (in-process LRU) or "redis".
	// Env: CACHE_TYPE
	Type string `env:"TYPE" validate:"oneof=null simple redis"`

	// DefaultTimeout is the TTL applied when a caller passes zero.
	// Env: CACHE_DEFAULT_TIMEOUT
	DefaultTimeout time.Duration `env:"DEFAULT_TIMEOUT" validate:"min=0"`

	// Threshold is the maximum number of entries held by the simple backend.
	// Env: CACHE_THRESHOLD
	Threshold int `env:"THRESHOLD" validate:"min=1"`

	// RedisURL is the redis:// URL used by the redis backend.
	// Env: CACHE_REDIS_URL
	RedisURL string `env:"REDIS_URL" validate:"required_if=Type redis"`

	// KeyPrefix is prepended to every cache key.
	// Env: CACHE_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`
}

// Mail holds SMTP settings.
type Mail struct {
	// Env: MAIL_SERVER
	Server string `env:"SERVER" validate:"required"`
	// Env: MAIL_PORT
	Port int `env:"PORT" validate:"min=1,max=65535"`
	// Env: MAIL_USE_TLS
	UseTLS bool `env:"USE_TLS"`
	// Env: MAIL_USERNAME
	Username string `env:"USERNAME"`
	// Env: MAIL_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: MAIL_DEFAULT_SENDER
	DefaultSender string `env:"DEFAULT_SENDER" validate:"required,email"`

	// SuppressSend records outgoing messages instead of delivering them.
	// Always on in the testing environment.
	// Env: MAIL_SUPPRESS_SEND
	SuppressSend bool `env:"SUPPRESS_SEND"`
}

// DebugToolbar controls the development diagnostics endpoints.
type DebugToolbar struct {
	// Enabled switches the toolbar on. App.Debug enables it as well.
	// Env: DEBUG_TB_ENABLED
	Enabled bool `env:"ENABLED"`

	// URLPrefix is the mount point of the diagnostics routes.
	// Env: DEBUG_TB_URL_PREFIX
	URLPrefix string `env:"URL_PREFIX" validate:"required,startswith=/"`
}

// Assets holds static file settings.
type Assets struct {
	// Dir is the directory scanned for static files.
	// Env: STATIC_DIR
	Dir string `env:"DIR" validate:"required"`

	// URLPrefix is the URL path static files are served under.
	// Env: STATIC_URL_PREFIX
	URLPrefix string `env:"URL_PREFIX" validate:"required,startswith=/"`
}

// Logging holds log output settings.
type Logging struct {
	// Level is a zerolog level name. Empty means debug when App.Debug is set
	// and info otherwise.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

// Source produces a validated configuration. It is the input of the
// application bootstrap.
type Source interface {
	Load() (*StructuredConfig, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() (*StructuredConfig, error)

// Load calls f.
func (f SourceFunc) Load() (*StructuredConfig, error) {
	return f()
}

// Default returns the built-in configuration source, loading in the following
// priority order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON or YAML file (path resolved from CONFIG or --config)
//  3. .env files (only variables not already set in the environment)
//  4. Environment variables
//  5. Command-line flags from os.Args
func Default() Source {
	var args []string
	if len(os.Args) > 1 {
		args = os.Args[1:]
	}

	return NewBuilder().
		WithDefaults().
		WithDotEnv().
		WithEnv().
		WithFlags(args).
		WithFile()
}

// Object returns a Source that yields a copy of cfg as-is, without defaults.
// The copy is still validated.
func Object(cfg StructuredConfig) Source {
	return NewBuilder().WithObject(cfg)
}

// File returns a Source made of the built-in defaults and a single JSON or
// YAML file.
func File(path string) Source {
	return NewBuilder().
		WithDefaults().
		WithObject(StructuredConfig{FilePath: path}).
		WithFile()
}
