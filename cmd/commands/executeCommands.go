package commands

import (
	"context"
	"fmt"
	"io"

	"ifreport/internal/config"
	"ifreport/internal/models"
)

// DispatchSystemCommands runs the subcommand named by args[0], if any.
// It reports handled=false when args is empty so the caller runs the
// default fetch-and-report flow.
func DispatchSystemCommands(ctx context.Context, cfg *config.Config, args []string, w io.Writer, usage func()) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	switch args[0] {
	case "parse":
		if len(args) != 2 {
			return true, usageError("usage: ifreport parse <file.html>")
		}
		return true, runParse(cfg, args[1], w)

	case "show-config":
		if len(args) != 1 {
			return true, usageError("usage: ifreport show-config")
		}
		return true, runShowConfig(cfg, w)

	case "doctor":
		runDoctor(ctx, cfg, w)
		return true, nil

	case "help":
		usage()
		return true, nil

	default:
		usage()
		return true, usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return models.NewCLIError(models.CodeUsage, models.ExitUsage, msg)
}
