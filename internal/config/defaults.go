package config

import "time"

// Defaults returns the built-in settings used as the lowest-priority layer of
// the Default source. The secret key is deliberately left empty: every
// deployment has to provide one.
func Defaults() StructuredConfig {
	return StructuredConfig{
		App: App{
			Env:            EnvProduction,
			SendFileMaxAge: time.Hour,
		},
		Server: Server{
			HTTPAddress:     "localhost:5000",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: Security{
			BcryptLogRounds: 13,
			CSRFTimeLimit:   time.Hour,
		},
		Cache: Cache{
			Type:           CacheSimple,
			DefaultTimeout: 5 * time.Minute,
			Threshold:      500,
		},
		Mail: Mail{
			Server:        "localhost",
			Port:          25,
			DefaultSender: "noreply@localhost.localdomain",
		},
		DebugToolbar: DebugToolbar{
			URLPrefix: "/_debug",
		},
		Assets: Assets{
			Dir:       "static",
			URLPrefix: "/static",
		},
	}
}

// finalize derives settings that depend on other settings.
func (cfg *StructuredConfig) finalize() {
	if cfg.App.Debug {
		cfg.DebugToolbar.Enabled = true
	}

	if cfg.App.Env == EnvTesting {
		cfg.Mail.SuppressSend = true
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
		if cfg.App.Debug {
			cfg.Logging.Level = "debug"
		}
	}
}
