package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"ifreport/internal/config"
	"ifreport/internal/system"

	"github.com/google/uuid"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// runIDHook stamps every entry with the id of the current run.
type runIDHook struct {
	id string
}

func (h runIDHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h runIDHook) Fire(e *logrus.Entry) error {
	e.Data["run_id"] = h.id
	return nil
}

// SetupLogger initializes logrus. Logs always go to stderr so stdout
// carries only the report; a rotated file is added when cfg.File is set.
func SetupLogger(cfg config.LogConfig) error {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:   time.RFC3339,
			DisableHTMLEscape: true,
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	writers := []io.Writer{os.Stderr}
	if cfg.File != "" {
		file, err := ResolveLogFile(cfg.File)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    cfg.MaxSize, // MB before rotating
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		})
	}
	l.SetOutput(io.MultiWriter(writers...))

	l.AddHook(runIDHook{id: uuid.NewString()})

	Logger = l
	return nil
}

// ResolveLogFile returns the path the rotated log is written to. A bare
// file name is placed in the default log directory; paths with a
// directory part are used as given.
func ResolveLogFile(name string) (string, error) {
	if filepath.Base(name) == name {
		dir, err := system.LogDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, name), nil
	}
	return name, nil
}

// GetLogger returns the global logrus Logger instance, falling back to a
// stderr logger when SetupLogger has not run.
func GetLogger() *logrus.Logger {
	if Logger == nil {
		Logger = logrus.New()
		Logger.SetOutput(os.Stderr)
		Logger.SetLevel(logrus.WarnLevel)
	}
	return Logger
}

// LogFetch logs the outcome of one page retrieval.
func LogFetch(url string, status int, size int, elapsed time.Duration) {
	GetLogger().WithFields(logrus.Fields{
		"url":     url,
		"status":  status,
		"bytes":   size,
		"elapsed": elapsed.Truncate(time.Millisecond).String(),
	}).Info("page fetched")
}

// LogExtraction logs how many rows became records.
func LogExtraction(records, routers int) {
	GetLogger().WithFields(logrus.Fields{
		"records": records,
		"routers": routers,
	}).Info("table extracted")
}

// LogSkippedRow logs a short row dropped under the skip policy.
func LogSkippedRow(row, cells int) {
	GetLogger().WithFields(logrus.Fields{
		"row":   row,
		"cells": cells,
	}).Warn("skipping malformed row")
}
