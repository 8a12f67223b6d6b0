package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ifreport/internal/system"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the effective run configuration.
type Config struct {
	Source SourceConfig `mapstructure:"source" yaml:"source"`
	Table  TableConfig  `mapstructure:"table" yaml:"table"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// SourceConfig describes where the interfaces page lives and how to reach it.
type SourceConfig struct {
	Host         string            `mapstructure:"host" yaml:"host"`
	Path         string            `mapstructure:"path" yaml:"path"`
	Port         int               `mapstructure:"port" yaml:"port"`
	Headers      map[string]string `mapstructure:"headers" yaml:"headers"`
	Timeout      time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	Mode         string            `mapstructure:"mode" yaml:"mode"`             // direct | socks5
	SocksAddr    string            `mapstructure:"socks_addr" yaml:"socks_addr"` // required when mode=socks5
	MaxBodyBytes int64             `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

type TableConfig struct {
	MarkerClass   string `mapstructure:"marker_class" yaml:"marker_class"`
	SkipMalformed bool   `mapstructure:"skip_malformed" yaml:"skip_malformed"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // text | json | yaml
	Color  bool   `mapstructure:"color" yaml:"color"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"` // text | json
	File       string `mapstructure:"file" yaml:"file"`     // empty = stderr only
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

const (
	ModeDirect = "direct"
	ModeSOCKS5 = "socks5"

	envPrefix  = "IFREPORT"
	configName = "ifreport"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"host":           "source.host",
	"path":           "source.path",
	"port":           "source.port",
	"header":         "source.headers",
	"timeout":        "source.timeout",
	"mode":           "source.mode",
	"socks-addr":     "source.socks_addr",
	"max-body-bytes": "source.max_body_bytes",
	"marker-class":   "table.marker_class",
	"skip-malformed": "table.skip_malformed",
	"format":         "output.format",
	"color":          "output.color",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"log-file":       "log.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.host", "vn.grnoc.iu.edu")
	v.SetDefault("source.path", "/Internet2/interfaces/interfaces-addresses.html")
	v.SetDefault("source.port", 80)
	v.SetDefault("source.headers", map[string]string{})
	v.SetDefault("source.timeout", 30*time.Second)
	v.SetDefault("source.mode", ModeDirect)
	v.SetDefault("source.socks_addr", "")
	v.SetDefault("source.max_body_bytes", int64(16<<20))

	v.SetDefault("table.marker_class", "hlBG")
	v.SetDefault("table.skip_malformed", false)

	v.SetDefault("output.format", "text")
	v.SetDefault("output.color", false)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", false)
}

// Load builds the configuration from defaults, an optional YAML file,
// IFREPORT_* environment variables and changed flags, in rising priority.
// An explicit configPath must exist; the default search locations are optional.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if dir, err := system.ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Source.Headers == nil {
		cfg.Source.Headers = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields a run depends on.
func (c *Config) Validate() error {
	s := c.Source
	switch {
	case strings.TrimSpace(s.Host) == "":
		return fmt.Errorf("%w: source.host is empty", ErrInvalid)
	case !strings.HasPrefix(s.Path, "/"):
		return fmt.Errorf("%w: source.path %q must start with /", ErrInvalid, s.Path)
	case s.Port < 1 || s.Port > 65535:
		return fmt.Errorf("%w: source.port %d out of range", ErrInvalid, s.Port)
	case s.Timeout < 0:
		return fmt.Errorf("%w: source.timeout cannot be negative", ErrInvalid)
	case s.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: source.max_body_bytes must be positive", ErrInvalid)
	}

	switch s.Mode {
	case ModeDirect:
	case ModeSOCKS5:
		if s.SocksAddr == "" {
			return fmt.Errorf("%w: source.socks_addr is required when mode=socks5", ErrInvalid)
		}
		if _, _, err := net.SplitHostPort(s.SocksAddr); err != nil {
			return fmt.Errorf("%w: source.socks_addr %q: %v", ErrInvalid, s.SocksAddr, err)
		}
	default:
		return fmt.Errorf("%w: source.mode %q (use direct|socks5)", ErrInvalid, s.Mode)
	}

	if strings.TrimSpace(c.Table.MarkerClass) == "" {
		return fmt.Errorf("%w: table.marker_class is empty", ErrInvalid)
	}

	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: output.format %q (use text|json|yaml)", ErrInvalid, c.Output.Format)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (use text|json)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// URL returns the page address. Path may carry a query string.
func (s SourceConfig) URL() (string, error) {
	u, err := url.Parse(s.Path)
	if err != nil {
		return "", fmt.Errorf("parse source.path %q: %w", s.Path, err)
	}
	u.Scheme = "http"
	u.Host = net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	return u.String(), nil
}

// YAML renders the configuration the way a config file would hold it.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
