package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ifreport/cmd/commands"
	"ifreport/internal/config"
	"ifreport/internal/logging"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func helpRequested(args []string) bool {
	return len(args) > 0 && args[0] == "help"
}

// loadConfig resolves the effective configuration or exits.
func loadConfig() *config.Config {
	cfg, err := config.Load(*configPath, pflag.CommandLine)
	if err != nil {
		commands.Fatal(commands.ConfigError(err))
	}
	return cfg
}

// setupLogging configures the global logger from cfg or exits.
func setupLogging(cfg *config.Config) {
	if err := logging.SetupLogger(cfg.Log); err != nil {
		commands.Fatal(commands.ConfigError(err))
	}
}

// resolveColor keeps colour only when stdout is a terminal.
func resolveColor(cfg *config.Config) {
	if cfg.Output.Color && !term.IsTerminal(int(os.Stdout.Fd())) {
		logging.GetLogger().Debug("stdout is not a terminal, colour disabled")
		cfg.Output.Color = false
	}
}

// runContext is cancelled on SIGINT or SIGTERM.
func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
