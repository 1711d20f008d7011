package main

import (
	"github.com/radprep/radprep/query"
	"github.com/radprep/radprep/render"

	"github.com/urfave/cli/v2"
)

func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "search sentences interactively by term and label",
		Flags: []cli.Flag{
			repoFlag(),
		},
		Action: func(c *cli.Context) error {
			var p Pool
			defer p.Close()

			repo, err := openRepo(c, &p)
			if err != nil {
				return err
			}

			hdl := query.NewHandler(repo, render.NewRenderer(ui.Out))
			return hdl.Run()
		},
	}
}
