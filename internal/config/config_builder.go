package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// Builder assembles a configuration from ordered layers. Later layers
// override non-zero fields of earlier ones; the file layer is always placed
// directly above the defaults so that the environment and flags can override
// file values. Builder implements [Source].
type Builder struct {
	configs     []*StructuredConfig
	hasDefaults bool
	err         error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		configs: make([]*StructuredConfig, 0, 5),
	}
}

// Load merges all layers, derives dependent settings and validates the result.
func (b *Builder) Load() (*StructuredConfig, error) {
	return b.build()
}

func (b *Builder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	config.finalize()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// WithDefaults adds the built-in settings as the lowest layer.
func (b *Builder) WithDefaults() *Builder {
	defaults := Defaults()
	b.configs = append([]*StructuredConfig{&defaults}, b.configs...)
	b.hasDefaults = true
	return b
}

// WithObject adds cfg as a layer.
func (b *Builder) WithObject(cfg StructuredConfig) *Builder {
	b.configs = append(b.configs, &cfg)
	return b
}

// WithDotEnv loads .env files into the process environment. It adds no layer
// by itself; call WithEnv afterwards to pick the values up.
func (b *Builder) WithDotEnv(files ...string) *Builder {
	if err := loadDotEnv(files...); err != nil {
		b.fail(&Error{Err: fmt.Errorf("%w: %w", ErrSourceUnavailable, err)})
	}
	return b
}

// WithEnv adds the environment variables layer.
func (b *Builder) WithEnv() *Builder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.fail(&Error{Err: fmt.Errorf("%w: %w", ErrInvalidSetting, err)})
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

// WithFlags adds the command-line flags layer parsed from args.
func (b *Builder) WithFlags(args []string) *Builder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.fail(&Error{Err: fmt.Errorf("%w: %w", ErrInvalidSetting, err)})
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

// WithFile adds the JSON or YAML file layer. The path is the last non-empty
// FilePath among the layers added so far; without one this is a no-op.
func (b *Builder) WithFile() *Builder {
	var path string
	for _, cfg := range b.configs {
		if cfg.FilePath != "" {
			path = cfg.FilePath
		}
	}

	if path == "" {
		return b
	}

	fileCfg, err := parseFile(path)
	if err != nil {
		b.fail(&Error{Field: "FilePath", Err: fmt.Errorf("%w: %w", ErrSourceUnavailable, err)})
		return b
	}

	at := 0
	if b.hasDefaults {
		at = 1
	}
	b.configs = append(b.configs[:at], append([]*StructuredConfig{fileCfg}, b.configs[at:]...)...)

	return b
}

func (b *Builder) fail(err error) {
	b.err = errors.Join(b.err, err)
}
