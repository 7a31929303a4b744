package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of a configuration file. JSON and YAML
// files share the same keys.
type fileConfig struct {
	App struct {
		Env                 string   `json:"env" yaml:"env"`
		Debug               bool     `json:"debug" yaml:"debug"`
		SecretKey           string   `json:"secret_key" yaml:"secret_key"`
		SendFileMaxAge      Duration `json:"send_file_max_age" yaml:"send_file_max_age"`
		MembersPasswordHash string   `json:"members_password_hash" yaml:"members_password_hash"`
		Version             string   `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server" yaml:"server"`

	Security struct {
		BcryptLogRounds int      `json:"bcrypt_log_rounds" yaml:"bcrypt_log_rounds"`
		CSRFTimeLimit   Duration `json:"csrf_time_limit" yaml:"csrf_time_limit"`
		DisableCSRF     bool     `json:"disable_csrf" yaml:"disable_csrf"`
	} `json:"security" yaml:"security"`

	Cache struct {
		Type           string   `json:"type" yaml:"type"`
		DefaultTimeout Duration `json:"default_timeout" yaml:"default_timeout"`
		Threshold      int      `json:"threshold" yaml:"threshold"`
		RedisURL       string   `json:"redis_url" yaml:"redis_url"`
		KeyPrefix      string   `json:"key_prefix" yaml:"key_prefix"`
	} `json:"cache" yaml:"cache"`

	Mail struct {
		Server        string `json:"server" yaml:"server"`
		Port          int    `json:"port" yaml:"port"`
		UseTLS        bool   `json:"use_tls" yaml:"use_tls"`
		Username      string `json:"username" yaml:"username"`
		Password      string `json:"password" yaml:"password"`
		DefaultSender string `json:"default_sender" yaml:"default_sender"`
		SuppressSend  bool   `json:"suppress_send" yaml:"suppress_send"`
	} `json:"mail" yaml:"mail"`

	DebugToolbar struct {
		Enabled   bool   `json:"enabled" yaml:"enabled"`
		URLPrefix string `json:"url_prefix" yaml:"url_prefix"`
	} `json:"debug_toolbar" yaml:"debug_toolbar"`

	Assets struct {
		Dir       string `json:"dir" yaml:"dir"`
		URLPrefix string `json:"url_prefix" yaml:"url_prefix"`
	} `json:"static" yaml:"static"`

	Logging struct {
		Level string `json:"level" yaml:"level"`
	} `json:"logging" yaml:"logging"`
}

// parseFile reads a configuration file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.toStructured(), nil
}

func (f *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:                 f.App.Env,
			Debug:               f.App.Debug,
			SecretKey:           f.App.SecretKey,
			SendFileMaxAge:      time.Duration(f.App.SendFileMaxAge),
			MembersPasswordHash: f.App.MembersPasswordHash,
			Version:             f.App.Version,
		},
		Server: Server{
			HTTPAddress:     f.Server.HTTPAddress,
			RequestTimeout:  time.Duration(f.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(f.Server.ShutdownTimeout),
		},
		Security: Security{
			BcryptLogRounds: f.Security.BcryptLogRounds,
			CSRFTimeLimit:   time.Duration(f.Security.CSRFTimeLimit),
			DisableCSRF:     f.Security.DisableCSRF,
		},
		Cache: Cache{
			Type:           f.Cache.Type,
			DefaultTimeout: time.Duration(f.Cache.DefaultTimeout),
			Threshold:      f.Cache.Threshold,
			RedisURL:       f.Cache.RedisURL,
			KeyPrefix:      f.Cache.KeyPrefix,
		},
		Mail: Mail{
			Server:        f.Mail.Server,
			Port:          f.Mail.Port,
			UseTLS:        f.Mail.UseTLS,
			Username:      f.Mail.Username,
			Password:      f.Mail.Password,
			DefaultSender: f.Mail.DefaultSender,
			SuppressSend:  f.Mail.SuppressSend,
		},
		DebugToolbar: DebugToolbar{
			Enabled:   f.DebugToolbar.Enabled,
			URLPrefix: f.DebugToolbar.URLPrefix,
		},
		Assets: Assets{
			Dir:       f.Assets.Dir,
			URLPrefix: f.Assets.URLPrefix,
		},
		Logging: Logging{
			Level: f.Logging.Level,
		},
	}
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s" as well as plain numbers of
// nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
