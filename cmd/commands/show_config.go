package commands

import (
	"io"

	"ifreport/internal/config"
	"ifreport/internal/models"
)

func runShowConfig(cfg *config.Config, w io.Writer) error {
	out, err := cfg.YAML()
	if err != nil {
		return models.Wrap(models.CodeConfigInvalid, models.ExitConfig, "could not encode configuration", err)
	}
	if _, err := w.Write(out); err != nil {
		return models.Wrap(models.CodeIOFailed, models.ExitIO, "could not write configuration", err)
	}
	return nil
}
