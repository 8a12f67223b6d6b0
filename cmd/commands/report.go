package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"ifreport/internal/config"
	"ifreport/internal/dialer"
	"ifreport/internal/extract"
	"ifreport/internal/fetch"
	"ifreport/internal/logging"
	"ifreport/internal/models"
	"ifreport/internal/report"
)

// newFetchClient builds the HTTP client for cfg's egress mode.
func newFetchClient(cfg *config.Config) (*fetch.Client, error) {
	d, err := dialer.New(cfg.Source.Mode, cfg.Source.SocksAddr, cfg.Source.Timeout)
	if err != nil {
		return nil, models.Wrap(models.CodeConfigInvalid, models.ExitConfig, "invalid egress settings", err)
	}
	client, err := fetch.New(cfg.Source, d)
	if err != nil {
		return nil, models.Wrap(models.CodeConfigInvalid, models.ExitConfig, "invalid source settings", err)
	}
	return client, nil
}

// RunReport fetches the page, extracts the table and writes the report to w.
// Nothing is written to w unless the whole page was extracted.
func RunReport(ctx context.Context, cfg *config.Config, w io.Writer) error {
	client, err := newFetchClient(cfg)
	if err != nil {
		return err
	}

	logging.GetLogger().WithField("url", client.URL()).Debug("fetching interfaces page")
	body, err := client.Fetch(ctx)
	if err != nil {
		return classify(err)
	}
	return renderBody(body, cfg, w)
}

// renderBody runs extraction, grouping and rendering on a complete body.
func renderBody(body string, cfg *config.Config, w io.Writer) error {
	x := extract.New(extract.Options{
		MarkerClass:   cfg.Table.MarkerClass,
		SkipMalformed: cfg.Table.SkipMalformed,
		OnSkip:        logging.LogSkippedRow,
	})

	pairs, err := x.Extract(body)
	if err != nil {
		return classify(err)
	}

	groups := report.Group(pairs)
	logging.LogExtraction(len(pairs), len(groups))

	if err := report.Render(w, groups, report.Options{
		Format: cfg.Output.Format,
		Color:  cfg.Output.Color,
	}); err != nil {
		return models.Wrap(models.CodeIOFailed, models.ExitIO, "could not write report", err)
	}
	return nil
}

// runParse renders a report from a saved copy of the page.
func runParse(cfg *config.Config, path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Wrap(models.CodeIOFailed, models.ExitIO, fmt.Sprintf("could not read %s", path), err)
	}
	return renderBody(string(data), cfg, w)
}
