package main

import (
	"fmt"
	"os"
	"time"

	"github.com/radprep/radprep/cleaner"
	"github.com/radprep/radprep/report"
	"github.com/radprep/radprep/split"
	"github.com/radprep/radprep/storage"
	"github.com/radprep/radprep/storage/sqlite/zombiezen"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

func importCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import a labeled report CSV into a repository",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "labeled report CSV `FILE`",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target repository `PATH` (directory or sqlite file)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "newline",
				Usage: "treat line breaks as sentence boundaries",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "skip text cleaning before the split",
			},
		},
		Action: func(c *cli.Context) error {
			return importAction(c, ui)
		},
	}
}

func importAction(c *cli.Context, ui UI) error {
	logger := newLogger(c, ui)

	f, err := os.Open(c.String("from"))
	if err != nil {
		return err
	}
	records, err := report.ReadRecords(f)
	f.Close()
	if err != nil {
		return err
	}
	logger.Debug("records loaded", "file", c.String("from"), "count", len(records))

	dst, closeTarget, err := importTarget(c.String("to"))
	if err != nil {
		return err
	}
	defer closeTarget()

	splitter := split.Splitter{Newline: c.Bool("newline")}
	clean := !c.Bool("raw")

	coll := report.Collection{
		Source: c.String("from"),
		Date:   time.Now().Format("2006-01-02"),
	}
	for i, rec := range records {
		text := rec.Impression
		if clean {
			text = cleaner.Clean(text)
		}
		doc := splitter.Document(i, rec.Name, text)
		doc.Labels = rec.Labels
		coll.Add(doc)
	}

	fmt.Fprintf(ui.Out, "Reading reports from %s...\n", c.String("from"))

	uiprogress.Start()
	bar := uiprogress.AddBar(coll.Len())
	bar.AppendCompleted()
	bar.PrependElapsed()

	count := 0
	for _, doc := range coll.Documents {
		if err := dst.Write(doc); err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to write report %s: %w", doc.Name, err)
		}
		count++
		bar.Incr()
	}
	uiprogress.Stop()

	fmt.Fprintf(ui.Out, "Successfully imported %d reports from %s to %s\n", count, c.String("from"), c.String("to"))
	return nil
}

// importTarget opens the destination for writing. A path ending in .db (or
// any existing file) is an SQLite database whose tables are created on
// demand; anything else is a directory of JSON documents, created if absent.
func importTarget(path string) (storage.ReportWriter, func() error, error) {
	noop := func() error { return nil }

	info, err := os.Stat(path)
	isDir := err == nil && info.IsDir()
	if os.IsNotExist(err) {
		isDir = !isSQLitePath(path)
	}

	if isDir {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, noop, fmt.Errorf("failed to create target directory: %w", err)
		}
		var p Pool
		repo, err := NewReportRepository(&p, path)
		return repo, noop, err
	}

	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, noop, err
	}
	if err := zombiezen.CreateReportTables(pool); err != nil {
		pool.Close()
		return nil, noop, fmt.Errorf("failed to create report tables: %w", err)
	}
	return zombiezen.NewReportStore(pool), pool.Close, nil
}

func isSQLitePath(path string) bool {
	for _, ext := range []string{".db", ".sqlite", ".sqlite3"} {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}
