package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func labelsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "list labels present in a repository",
		ArgsUsage: "[pattern]",
		Flags:     []cli.Flag{repoFlag()},
		Action: func(c *cli.Context) error {
			var p Pool
			defer p.Close()

			repo, err := openRepo(c, &p)
			if err != nil {
				return err
			}

			labels, err := repo.Labels(c.Args().First())
			if err != nil {
				return err
			}

			if len(labels) > 0 {
				fmt.Fprintln(ui.Out, strings.Join(labels, ", "))
			}
			return nil
		},
	}
}
