package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFile_JSON(t *testing.T) {
	path := writeTempFile(t, "config.json", `{
		"app": {"env": "development", "secret_key": "json-secret", "send_file_max_age": "2h"},
		"server": {"http_address": "localhost:8000", "request_timeout": 1000000000},
		"cache": {"type": "null"},
		"static": {"dir": "assets"}
	}`)

	cfg, err := parseFile(path)

	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.App.Env)
	assert.Equal(t, "json-secret", cfg.App.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.App.SendFileMaxAge)
	assert.Equal(t, "localhost:8000", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, CacheNull, cfg.Cache.Type)
	assert.Equal(t, "assets", cfg.Assets.Dir)
}

func TestParseFile_YAML(t *testing.T) {
	path := writeTempFile(t, "config.yml", `
app:
  secret_key: yaml-secret
  debug: true
security:
  bcrypt_log_rounds: 4
  csrf_time_limit: 10m
mail:
  server: smtp.local
  port: 2525
  default_sender: robot@example.com
logging:
  level: trace
`)

	cfg, err := parseFile(path)

	require.NoError(t, err)
	assert.Equal(t, "yaml-secret", cfg.App.SecretKey)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 4, cfg.Security.BcryptLogRounds)
	assert.Equal(t, 10*time.Minute, cfg.Security.CSRFTimeLimit)
	assert.Equal(t, "smtp.local", cfg.Mail.Server)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, "robot@example.com", cfg.Mail.DefaultSender)
	assert.Equal(t, "trace", cfg.Logging.Level)
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.json") }},
		{"malformed json", func(t *testing.T) string { return writeTempFile(t, "bad.json", "{not valid json") }},
		{"malformed yaml", func(t *testing.T) string { return writeTempFile(t, "bad.yaml", "app: [unterminated") }},
		{"bad duration", func(t *testing.T) string {
			return writeTempFile(t, "dur.json", `{"server": {"request_timeout": "soon"}}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFile(tt.path(t))
			assert.Error(t, err)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
