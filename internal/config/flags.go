package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags holds the values bound by [RegisterFlags]. Call [Flags.Config] after
// the flag set has been parsed.
type Flags struct {
	address        NetAddress
	configPath     string
	secretKey      string
	env            string
	logLevel       string
	debug          bool
	requestTimeout time.Duration
}

// RegisterFlags binds all configuration flags to fs.
//
// Flags:
//
//	-a/--address server address in format [host]:[port]
//	-c/--config JSON or YAML file path with configs
//	--secret-key application secret key
//	--env environment name (production, development, testing)
//	--debug enable debug mode
//	--log-level log level (trace, debug, info, warn, error)
//	--request-timeout request timeout (e.g., "30s", "1m")
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := new(Flags)

	fs.VarP(&f.address, "address", "a", "Net address host:port")
	fs.StringVarP(&f.configPath, "config", "c", "", "JSON or YAML config file path")
	fs.StringVar(&f.secretKey, "secret-key", "", "Application secret key")
	fs.StringVar(&f.env, "env", "", "Environment: production, development or testing")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug mode")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level")
	fs.DurationVar(&f.requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	return f
}

// Config converts the parsed flag values into a configuration layer. Flags
// that were not given stay at their zero value and do not override other
// layers.
func (f *Flags) Config() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:       f.env,
			Debug:     f.debug,
			SecretKey: f.secretKey,
		},
		Server: Server{
			HTTPAddress:    f.address.String(),
			RequestTimeout: f.requestTimeout,
		},
		Logging: Logging{
			Level: f.logLevel,
		},
		FilePath: f.configPath,
	}
}

// ParseFlags parses the configuration flags out of args. Unknown flags are
// ignored and parsing stops at the first positional argument, so that the
// flags of a CLI subcommand (e.g. "test -c") are never read as configuration.
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetInterspersed(false)

	flags := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return flags.Config(), nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
