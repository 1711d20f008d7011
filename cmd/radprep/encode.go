package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/radprep/radprep/cleaner"
	"github.com/radprep/radprep/encode"

	"github.com/urfave/cli/v2"
)

func encodeCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "prepare classifier input ids for a question/passage pair",
		ArgsUsage: "[passage]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "vocab",
				Usage:    "vocabulary `FILE`, one token per line",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "question",
				Aliases:  []string{"q"},
				Usage:    "question `TEXT` prepended to the passage",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "max-len",
				Usage: "padded sequence length",
				Value: 128,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the input as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			vocab, err := encode.LoadVocabFile(c.String("vocab"))
			if err != nil {
				return err
			}

			passage, err := passageText(c)
			if err != nil {
				return err
			}

			enc := encode.Encoder{Vocab: vocab}
			question := cleaner.Fields(cleaner.Clean(c.String("question")))
			input := enc.Encode(question, cleaner.Fields(cleaner.Clean(passage)), c.Int("max-len"))

			if c.Bool("json") {
				e := json.NewEncoder(ui.Out)
				e.SetIndent("", "  ")
				return e.Encode(input)
			}

			fmt.Fprintf(ui.Out, "tokens: %s\n", strings.Join(input.Tokens, " "))
			fmt.Fprintf(ui.Out, "ids:   ")
			for _, id := range input.IDs {
				fmt.Fprintf(ui.Out, " %d", id)
			}
			fmt.Fprintln(ui.Out)
			fmt.Fprintf(ui.Out, "mask:  ")
			for _, m := range input.Mask {
				if m {
					fmt.Fprintf(ui.Out, " 1")
				} else {
					fmt.Fprintf(ui.Out, " 0")
				}
			}
			fmt.Fprintln(ui.Out)
			return nil
		},
	}
}

// passageText returns the passage from the arguments, or from stdin when no
// argument is given.
func passageText(c *cli.Context) (string, error) {
	if c.Args().Present() {
		return strings.Join(c.Args().Slice(), " "), nil
	}

	var b strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteString(" ")
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("passage text required")
	}
	return text, nil
}
