package report

import (
	"encoding/json"
	"fmt"
	"io"

	"ifreport/internal/models"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Options struct {
	Format string // text (default) | json | yaml
	// Color highlights router header lines in text output. The caller
	// decides whether the destination is a terminal.
	Color bool
}

// Render writes groups to w in the selected format.
func Render(w io.Writer, groups []models.RouterGroup, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return renderText(w, groups, opts.Color)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(groups))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(groups)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}

// renderText writes the Format lines one per write, colouring each
// router header line.
func renderText(w io.Writer, groups []models.RouterGroup, colored bool) error {
	header := color.New(color.Bold, color.FgCyan)
	if colored {
		header.EnableColor()
	} else {
		header.DisableColor()
	}

	next, g := 0, 0 // index of the next header line and its group
	for i, line := range Format(groups) {
		if i == next && g < len(groups) {
			line = header.Sprint(line)
			next += len(groups[g].Interfaces) + 2
			g++
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// nonNil keeps an empty report encoded as [] rather than null.
func nonNil(groups []models.RouterGroup) []models.RouterGroup {
	if groups == nil {
		return []models.RouterGroup{}
	}
	return groups
}
