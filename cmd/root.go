package cmd

import (
	"os"

	"ifreport/cmd/commands"

	"github.com/spf13/pflag"
)

// Execute runs the main execution flow
func Execute() {
	// Setup flags and parse them
	setupFlagsAndParse()

	// help needs no config, so a broken file or env cannot block it
	if helpRequested(pflag.Args()) {
		printHelp()
		return
	}

	// Resolve defaults, config file, env and flags
	cfg := loadConfig()

	// Setup structured logging
	setupLogging(cfg)
	resolveColor(cfg)

	ctx, stop := runContext()
	defer stop()

	// Handle subcommands first (parse, show-config, doctor, help)
	handled, err := commands.DispatchSystemCommands(ctx, cfg, pflag.Args(), os.Stdout, printHelp)
	if !handled {
		// Default flow: fetch, extract, report
		err = commands.RunReport(ctx, cfg, os.Stdout)
	}

	if err != nil {
		stop()
		commands.Fatal(err)
	}
}
