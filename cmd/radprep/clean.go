package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/radprep/radprep/cleaner"

	"github.com/urfave/cli/v2"
)

func cleanCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "normalize report text",
		ArgsUsage: "[sentence...]",
		Description: "Cleans report impressions: lowercase, and/or -> or,\n" +
			"slash alternatives -> or, doubled periods collapsed, spacing after\n" +
			"punctuation, whitespace trimmed. Reads stdin when no arguments are given.",
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				fmt.Fprintln(ui.Out, cleaner.Clean(strings.Join(c.Args().Slice(), " ")))
				return nil
			}

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				fmt.Fprintln(ui.Out, cleaner.Clean(scanner.Text()))
			}
			return scanner.Err()
		},
	}
}
