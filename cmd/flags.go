package cmd

import (
	"fmt"
	"os"

	"ifreport/internal/models"

	"github.com/spf13/pflag"
)

// Flag defaults are left empty; effective defaults live in internal/config
// and only changed flags override the file and environment.
var (
	configPath = pflag.String("config", "", "path to YAML config file")

	_ = pflag.String("host", "", "host serving the interfaces page")
	_ = pflag.String("path", "", "request path of the interfaces page")
	_ = pflag.Int("port", 0, "HTTP port")
	_ = pflag.StringToString("header", nil, "extra request header k=v (repeatable)")
	_ = pflag.Duration("timeout", 0, "fetch timeout")
	_ = pflag.String("mode", "", "egress mode: direct | socks5")
	_ = pflag.String("socks-addr", "", "SOCKS5 proxy address (mode=socks5)")
	_ = pflag.Int64("max-body-bytes", 0, "largest accepted response body")

	_ = pflag.String("marker-class", "", "class of the table header row")
	_ = pflag.Bool("skip-malformed", false, "drop short rows instead of failing")

	format = pflag.String("format", "", "report format: text | json | yaml")
	color  = pflag.Bool("color", false, "highlight router names on a terminal")

	_ = pflag.String("log-level", "", "log level: debug | info | warn | error")
	_ = pflag.String("log-format", "", "log format: text | json")
	_ = pflag.String("log-file", "", "also write logs to this rotated file")
)

func badFlagUse() (bool, string) {
	if *color && pflag.CommandLine.Changed("format") && *format != "text" {
		return false, "--color only applies to --format text"
	}
	return true, ""
}

// setupFlagsAndParse sets up the command-line flags and parses them.
func setupFlagsAndParse() {
	pflag.Usage = printHelp
	pflag.CommandLine.SortFlags = false
	pflag.Parse()

	ok, msg := badFlagUse()
	if !ok {
		fmt.Fprintln(os.Stderr, msg)
		printHelp()
		os.Exit(models.ExitUsage)
	}
}
