package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ifreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// header looks a key up case-insensitively; viper may fold key case.
func header(h map[string]string, key string) string {
	for k, v := range h {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("host", "", "")
	fs.Int("port", 0, "")
	fs.StringToString("header", nil, "")
	fs.String("format", "", "")
	fs.Bool("skip-malformed", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "vn.grnoc.iu.edu", cfg.Source.Host)
	assert.Equal(t, "/Internet2/interfaces/interfaces-addresses.html", cfg.Source.Path)
	assert.Equal(t, 80, cfg.Source.Port)
	assert.Equal(t, ModeDirect, cfg.Source.Mode)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.Empty(t, cfg.Source.Headers)
	assert.Equal(t, "hlBG", cfg.Table.MarkerClass)
	assert.False(t, cfg.Table.SkipMalformed)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
source:
  host: example.net
  port: 8080
  timeout: 5s
  headers:
    accept: text/html
table:
  skip_malformed: true
output:
  format: json
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "example.net", cfg.Source.Host)
	assert.Equal(t, 8080, cfg.Source.Port)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "text/html", header(cfg.Source.Headers, "Accept"))
	assert.True(t, cfg.Table.SkipMalformed)
	assert.Equal(t, "json", cfg.Output.Format)
	// untouched keys keep defaults
	assert.Equal(t, "/Internet2/interfaces/interfaces-addresses.html", cfg.Source.Path)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	path := writeFile(t, "source:\n  host: from-file\n  port: 8080\n")
	t.Setenv("IFREPORT_SOURCE_PORT", "9090")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--host", "from-flag", "--header", "X-Trace=1", "--skip-malformed"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Source.Host)
	assert.Equal(t, 9090, cfg.Source.Port)
	assert.Equal(t, "1", header(cfg.Source.Headers, "X-Trace"))
	assert.True(t, cfg.Table.SkipMalformed)
}

func TestUnchangedFlagsDoNotOverride(t *testing.T) {
	isolate(t)
	path := writeFile(t, "output:\n  format: yaml\n")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Source: SourceConfig{
				Host:         "example.net",
				Path:         "/x.html",
				Port:         80,
				Mode:         ModeDirect,
				MaxBodyBytes: 1024,
			},
			Table:  TableConfig{MarkerClass: "hlBG"},
			Output: OutputConfig{Format: "text"},
			Log:    LogConfig{Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty host", mutate: func(c *Config) { c.Source.Host = " " }, wantErr: true},
		{name: "relative path", mutate: func(c *Config) { c.Source.Path = "x.html" }, wantErr: true},
		{name: "port zero", mutate: func(c *Config) { c.Source.Port = 0 }, wantErr: true},
		{name: "port too big", mutate: func(c *Config) { c.Source.Port = 70000 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Source.Timeout = -time.Second }, wantErr: true},
		{name: "zero body limit", mutate: func(c *Config) { c.Source.MaxBodyBytes = 0 }, wantErr: true},
		{name: "unknown mode", mutate: func(c *Config) { c.Source.Mode = "tor" }, wantErr: true},
		{name: "socks5 without addr", mutate: func(c *Config) { c.Source.Mode = ModeSOCKS5 }, wantErr: true},
		{name: "socks5 bad addr", mutate: func(c *Config) {
			c.Source.Mode = ModeSOCKS5
			c.Source.SocksAddr = "localhost"
		}, wantErr: true},
		{name: "socks5 ok", mutate: func(c *Config) {
			c.Source.Mode = ModeSOCKS5
			c.Source.SocksAddr = "127.0.0.1:1080"
		}},
		{name: "empty marker", mutate: func(c *Config) { c.Table.MarkerClass = "" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Output.Format = "csv" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSourceURL(t *testing.T) {
	s := SourceConfig{Host: "vn.grnoc.iu.edu", Port: 80, Path: "/Internet2/interfaces/interfaces-addresses.html"}
	u, err := s.URL()
	require.NoError(t, err)
	assert.Equal(t, "http://vn.grnoc.iu.edu:80/Internet2/interfaces/interfaces-addresses.html", u)

	s = SourceConfig{Host: "::1", Port: 8080, Path: "/p?view=all"}
	u, err = s.URL()
	require.NoError(t, err)
	assert.Equal(t, "http://[::1]:8080/p?view=all", u)
}

func TestYAMLRoundTrip(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "marker_class: hlBG")
	assert.Contains(t, string(out), "timeout: 30s")

	path := writeFile(t, string(out))
	again, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
