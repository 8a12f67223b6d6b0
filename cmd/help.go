package cmd

import (
	"fmt"

	"github.com/Des1red/clihelp"
)

func printHelp() {
	fmt.Println("ifreport - Internet2 router interface address report")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ifreport [flags] [command]")
	fmt.Println()

	// ─── Commands ────────────────────────────────────────────
	fmt.Println("Commands:")
	clihelp.Print(
		clihelp.F("(none)", "", "Fetch the page and print the report"),
		clihelp.F("parse", "file", "Build the report from a saved HTML page"),
		clihelp.F("show-config", "", "Print the effective configuration as YAML"),
		clihelp.F("doctor", "", "Check config, logs and the remote page"),
		clihelp.F("help", "", "Show this help"),
	)
	fmt.Println()

	// ─── Source ──────────────────────────────────────────────
	fmt.Println("Source:")
	clihelp.Print(
		clihelp.F("--host", "string", "Host serving the interfaces page"),
		clihelp.F("--path", "string", "Request path (may carry a query)"),
		clihelp.F("--port", "int", "HTTP port"),
		clihelp.F("--header", "k=v", "Extra request header (repeatable)"),
		clihelp.F("--timeout", "duration", "Fetch timeout"),
		clihelp.F("--max-body-bytes", "int", "Largest accepted response body"),
	)
	fmt.Println()

	// ─── Egress ──────────────────────────────────────────────
	fmt.Println("Egress:")
	clihelp.Print(
		clihelp.F("--mode", "string", "Egress mode (direct | socks5)"),
		clihelp.F("--socks-addr", "address", "SOCKS5 proxy address"),
	)
	fmt.Println()

	// ─── Table ───────────────────────────────────────────────
	fmt.Println("Table:")
	clihelp.Print(
		clihelp.F("--marker-class", "string", "Class of the header marker row"),
		clihelp.F("--skip-malformed", "", "Drop short rows instead of failing"),
	)
	fmt.Println()

	// ─── Output ──────────────────────────────────────────────
	fmt.Println("Output:")
	clihelp.Print(
		clihelp.F("--format", "string", "Report format (text | json | yaml)"),
		clihelp.F("--color", "", "Highlight router names on a terminal"),
	)
	fmt.Println()

	fmt.Println("Logging:")
	clihelp.Print(
		clihelp.F("--log-level", "string", "debug | info | warn | error"),
		clihelp.F("--log-format", "string", "text | json"),
		clihelp.F("--log-file", "path", "Also write logs to a rotated file"),
	)
	fmt.Println()

	fmt.Println("Config:")
	clihelp.Print(
		clihelp.F("--config", "path", "YAML config file"),
	)
	fmt.Println()

	// ─── Notes ───────────────────────────────────────────────
	fmt.Println("Notes:")
	fmt.Println("  • Precedence: flags > IFREPORT_* env > config file > defaults")
	fmt.Println("  • Without --config, ./ifreport.yaml and the user config dir are searched")
	fmt.Println("  • Logs go to stderr; stdout carries only the report")
	fmt.Println("  • A short table row fails the run unless --skip-malformed is set")
}
