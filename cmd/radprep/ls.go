package main

import (
	"fmt"
	"strings"

	"github.com/radprep/radprep/storage"

	"github.com/urfave/cli/v2"
)

func lsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list reports in a repository",
		Flags: []cli.Flag{
			repoFlag(),
			&cli.StringFlag{
				Name:  "label",
				Usage: "only reports with a label containing `MATCH`",
			},
		},
		Action: func(c *cli.Context) error {
			var p Pool
			defer p.Close()

			repo, err := openRepo(c, &p)
			if err != nil {
				return err
			}

			docs, err := repo.List(c.String("label"))
			if err != nil {
				return err
			}

			for _, doc := range docs {
				labels := ""
				if len(doc.Labels) > 0 {
					labels = " [" + strings.Join(doc.Labels, ",") + "]"
				}
				fmt.Fprintf(ui.Out, "📖 %d %s%s\n", doc.Id, doc.Name, labels)
			}
			return nil
		},
	}
}

func repoFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "repo",
		Usage:   "report repository `PATH` (directory or sqlite file)",
		EnvVars: []string{"RADPREP_REPO"},
	}
}

// openRepo opens the repository named by the --repo flag.
func openRepo(c *cli.Context, p *Pool) (storage.ReportRepository, error) {
	path := c.String("repo")
	if path == "" {
		return nil, fmt.Errorf("repository path required (--repo or RADPREP_REPO)")
	}
	return NewReportRepository(p, path)
}
