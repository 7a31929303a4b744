package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := validObject()
	assert.NoError(t, cfg.validate())
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		field   string
		missing bool
	}{
		{"missing secret key", func(c *StructuredConfig) { c.App.SecretKey = "" }, "App.SecretKey", true},
		{"unknown env", func(c *StructuredConfig) { c.App.Env = "staging" }, "App.Env", false},
		{"bad address", func(c *StructuredConfig) { c.Server.HTTPAddress = "localhost" }, "Server.HTTPAddress", false},
		{"bcrypt cost too low", func(c *StructuredConfig) { c.Security.BcryptLogRounds = 3 }, "Security.BcryptLogRounds", false},
		{"unknown cache type", func(c *StructuredConfig) { c.Cache.Type = "memcached" }, "Cache.Type", false},
		{"redis without url", func(c *StructuredConfig) { c.Cache.Type = CacheRedis }, "Cache.RedisURL", true},
		{"sender not an email", func(c *StructuredConfig) { c.Mail.DefaultSender = "nobody" }, "Mail.DefaultSender", false},
		{"relative toolbar prefix", func(c *StructuredConfig) { c.DebugToolbar.URLPrefix = "_debug" }, "DebugToolbar.URLPrefix", false},
		{"unknown log level", func(c *StructuredConfig) { c.Logging.Level = "verbose" }, "Logging.Level", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validObject()
			tt.mutate(&cfg)

			err := cfg.validate()

			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			if tt.missing {
				assert.ErrorIs(t, err, ErrMissingSetting)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSetting)
			}
		})
	}
}

func TestFinalize(t *testing.T) {
	cfg := validObject()
	cfg.App.Debug = true
	cfg.App.Env = EnvTesting

	cfg.finalize()

	assert.True(t, cfg.DebugToolbar.Enabled)
	assert.True(t, cfg.Mail.SuppressSend)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestFinalize_KeepsExplicitLevel(t *testing.T) {
	cfg := validObject()
	cfg.Logging.Level = "error"

	cfg.finalize()

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.False(t, cfg.DebugToolbar.Enabled)
}

func TestError_Message(t *testing.T) {
	withField := &Error{Field: "App.SecretKey", Err: ErrMissingSetting}
	withoutField := &Error{Err: errors.New("boom")}

	assert.Equal(t, "config: App.SecretKey: missing required setting", withField.Error())
	assert.Equal(t, "config: boom", withoutField.Error())
	assert.ErrorIs(t, withField, ErrMissingSetting)
}
