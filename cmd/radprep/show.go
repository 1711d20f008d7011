package main

import (
	"fmt"
	"strconv"

	"github.com/radprep/radprep/render"
	"github.com/radprep/radprep/report"
	"github.com/radprep/radprep/storage/filesystem"

	"github.com/urfave/cli/v2"
)

func showCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print the sentences of a report",
		ArgsUsage: "<report-id>",
		Flags: []cli.Flag{
			repoFlag(),
			&cli.StringFlag{
				Name:  "file",
				Usage: "read a single report document JSON `FILE` instead of the repository",
			},
			&cli.IntFlag{
				Name:  "start",
				Usage: "first sentence to print",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "number of sentences to print",
				Value: -1,
			},
		},
		Action: func(c *cli.Context) error {
			var doc report.Document

			if path := c.String("file"); path != "" {
				var err error
				doc, err = filesystem.ReadDocument(path)
				if err != nil {
					return err
				}
			} else {
				if !c.Args().Present() {
					return fmt.Errorf("report id required")
				}
				id, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return fmt.Errorf("invalid report id %q", c.Args().First())
				}

				var p Pool
				defer p.Close()
				repo, err := openRepo(c, &p)
				if err != nil {
					return err
				}
				doc, err = repo.Read(id)
				if err != nil {
					return err
				}
			}

			renderDocument(doc, c.Int("start"), c.Int("count"), ui)
			return nil
		},
	}
}

func renderDocument(doc report.Document, start, count int, ui UI) {
	sentences := doc.Sentences()
	if start < 0 {
		start = 0
	}
	if start >= len(sentences) {
		return
	}
	sentences = sentences[start:]
	if count >= 0 && count < len(sentences) {
		sentences = sentences[:count]
	}

	r := render.NewRenderer(ui.Out)
	for i, s := range sentences {
		prefix := fmt.Sprintf("✍  %d-%d ", doc.Id, start+i)
		r.Sentence(s.Text, prefix)
	}
}
