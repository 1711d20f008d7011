package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

// Set at build time via -ldflags.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "radprep: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "radprep",
		Usage:     "prepare radiology report text and inspect risk models",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
				EnvVars: []string{"RADPREP_VERBOSE"},
			},
		},
		Commands: []*cli.Command{
			cleanCommand(ui),
			importCommand(ui),
			lsCommand(ui),
			labelsCommand(ui),
			showCommand(ui),
			statCommand(ui),
			encodeCommand(ui),
			importanceCommand(ui),
			queryCommand(ui),
			versionCommand(ui),
		},
	}
}

// newLogger returns a JSON structured logger on the error stream. Debug
// records are dropped unless the --verbose flag is set.
func newLogger(c *cli.Context, ui UI) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(ui.Err, &slog.HandlerOptions{Level: level}))
}
