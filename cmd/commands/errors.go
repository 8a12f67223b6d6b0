package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"ifreport/internal/config"
	"ifreport/internal/extract"
	"ifreport/internal/fetch"
	"ifreport/internal/logging"
	"ifreport/internal/models"
)

// Fatal prints err for the user and exits with its code.
func Fatal(err error) {
	msg, code := models.FormatForUser(err)
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

// classify maps pipeline failures to user-facing CLI errors. Errors that
// already are CLI errors pass through.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var ce *models.CLIError
	if errors.As(err, &ce) {
		return err
	}

	var fe *fetch.FetchError
	var mre *extract.MalformedRowError
	switch {
	case errors.As(err, &fe):
		e := models.Wrap(models.CodeFetchFailed, models.ExitExternal, "could not fetch the interfaces page", err)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			e.WithHint("raise --timeout or check the host is reachable")
		case errors.Is(err, context.Canceled):
			e.WithHint("the request was interrupted")
		case fe.StatusCode != 0:
			e.WithHint("check --host, --port and --path")
		}
		return e

	case errors.Is(err, extract.ErrStructureNotFound):
		return models.Wrap(models.CodeParseStructure, models.ExitParse,
			"fetched the page but could not find the expected interfaces table", err).
			WithHint("the page layout may have changed; see --marker-class")

	case errors.As(err, &mre):
		return models.Wrap(models.CodeMalformedRow, models.ExitParse,
			"fetched the page but a table row does not match the expected columns", err).
			WithHint("use --skip-malformed to drop short rows")

	case errors.Is(err, config.ErrInvalid):
		return models.Wrap(models.CodeConfigInvalid, models.ExitConfig, "invalid configuration", err)
	}

	logging.GetLogger().WithError(err).Debug("unclassified error")
	return models.Wrap("RUNTIME", models.ExitRuntime, "run failed", err)
}

// ConfigError wraps a configuration load failure for Fatal.
func ConfigError(err error) error {
	if errors.Is(err, config.ErrInvalid) {
		return classify(err)
	}
	return models.Wrap(models.CodeConfigInvalid, models.ExitConfig, "could not load configuration", err).
		WithHint("check --config and IFREPORT_* environment variables")
}
