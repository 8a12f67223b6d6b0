package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"ifreport/internal/config"
	"ifreport/internal/extract"
	"ifreport/internal/logging"
	"ifreport/internal/system"
)

func runDoctor(ctx context.Context, cfg *config.Config, w io.Writer) {
	fmt.Fprintln(w, "ifreport Doctor Report")
	fmt.Fprintln(w, "----------------------")
	fmt.Fprintf(w, "OS                : %s\n", runtime.GOOS)
	fmt.Fprintf(w, "Running as        : %s (uid=%d)\n", os.Getenv("USER"), os.Getuid())

	fmt.Fprintln(w, "\nConfig")
	if dir, err := system.ConfigDir(); err == nil {
		checkPath(w, filepath.Join(dir, "ifreport.yaml"))
	} else {
		fmt.Fprintf(w, "  Config dir      : unknown (%v)\n", err)
	}

	fmt.Fprintln(w, "\nLogs")
	if cfg.Log.File != "" {
		if path, err := logging.ResolveLogFile(cfg.Log.File); err == nil {
			checkPath(w, path)
		} else {
			fmt.Fprintf(w, "  Log file        : unresolved (%v)\n", err)
		}
	} else {
		fmt.Fprintln(w, "  Destination     : stderr")
		if dir, err := system.LogDir(); err == nil {
			fmt.Fprintf(w, "  Default dir     : %s\n", dir)
		}
	}

	fmt.Fprintln(w, "\nRemote")
	checkRemote(ctx, cfg, w)
}

func checkPath(w io.Writer, path string) {
	fmt.Fprintf(w, "  Path            : %s\n", path)

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  Exists          : no (%v)\n", err)
		return
	}
	fmt.Fprintf(w, "  Exists          : yes\n")

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		fmt.Fprintf(w, "  Writable        : no (%v)\n", err)
		return
	}
	f.Close()
	fmt.Fprintf(w, "  Writable        : yes\n")
}

func checkRemote(ctx context.Context, cfg *config.Config, w io.Writer) {
	client, err := newFetchClient(cfg)
	if err != nil {
		fmt.Fprintf(w, "  Source          : invalid (%v)\n", err)
		return
	}
	fmt.Fprintf(w, "  URL             : %s\n", client.URL())
	fmt.Fprintf(w, "  Egress          : %s\n", cfg.Source.Mode)

	body, err := client.Fetch(ctx)
	if err != nil {
		fmt.Fprintln(w, "  Page            : unreachable")
		fmt.Fprintf(w, "  Error           : %v\n", err)
		return
	}
	fmt.Fprintln(w, "  Page            : reachable")
	fmt.Fprintf(w, "  Size            : %d bytes\n", len(body))

	pairs, err := extract.New(extract.Options{
		MarkerClass:   cfg.Table.MarkerClass,
		SkipMalformed: true,
	}).Extract(body)
	if err != nil {
		fmt.Fprintf(w, "  Table           : not found (%v)\n", err)
		return
	}
	fmt.Fprintln(w, "  Table           : found")
	fmt.Fprintf(w, "  Rows            : %d\n", len(pairs))
}
