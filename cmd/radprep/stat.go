package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/radprep/radprep/stat"
	"github.com/radprep/radprep/storage"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

// preloader is implemented by the filesystem store, which otherwise loads
// documents one by one during aggregation.
type preloader interface {
	Preload(func(current, total int, name string)) error
}

// preloadRepo warms a lazy-loading repository with a progress bar before a
// whole-corpus scan.
func preloadRepo(repo storage.ReportRepository) error {
	pre, ok := repo.(preloader)
	if !ok {
		return nil
	}

	var bar *uiprogress.Bar
	err := pre.Preload(func(current, total int, name string) {
		if bar == nil {
			uiprogress.Start()
			bar = uiprogress.AddBar(total)
			bar.AppendCompleted()
		}
		bar.Incr()
	})
	if bar != nil {
		uiprogress.Stop()
	}
	return err
}

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print sentence and token statistics",
		ArgsUsage: "[report-id]",
		Flags: []cli.Flag{
			repoFlag(),
			&cli.BoolFlag{
				Name:  "dist",
				Usage: "print the tokens-per-sentence distribution",
			},
		},
		Action: func(c *cli.Context) error {
			var p Pool
			defer p.Close()

			repo, err := openRepo(c, &p)
			if err != nil {
				return err
			}

			hdl := stat.NewHandler()

			if c.Args().Present() {
				id, err := strconv.Atoi(c.Args().First())
				if err != nil {
					return fmt.Errorf("invalid report id %q", c.Args().First())
				}
				doc, err := repo.Read(id)
				if err != nil {
					return err
				}
				hdl.Aggregate(doc)
			} else {
				if err := preloadRepo(repo); err != nil {
					return err
				}
				docs, err := repo.List("")
				if err != nil {
					return err
				}
				for _, meta := range docs {
					doc, err := repo.Read(meta.Id)
					if err != nil {
						return err
					}
					hdl.Aggregate(doc)
				}
			}

			stats := hdl.Get()
			fmt.Fprintf(ui.Out, "Num reports %d, num sentences %d, num tokens %d, tokens per sentence %d\n",
				stats.NumDocuments, stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean)

			if c.Bool("dist") {
				lengths := make([]int, 0, len(stats.TokensPerSentenceDist))
				for n := range stats.TokensPerSentenceDist {
					lengths = append(lengths, n)
				}
				sort.Ints(lengths)
				for _, n := range lengths {
					fmt.Fprintf(ui.Out, "%4d tokens: %d\n", n, stats.TokensPerSentenceDist[n])
				}
			}
			return nil
		},
	}
}
