package main

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/radprep/radprep/frame"
	"github.com/radprep/radprep/model"
	"github.com/radprep/radprep/perm"

	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

func importanceCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "importance",
		Usage: "rank features by permutation importance",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "model",
				Usage:    "logistic model JSON `FILE`",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "data",
				Usage:    "feature CSV `FILE` with an index column",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "outcomes",
				Usage:    "binary outcome CSV `FILE`, one 0/1 value per row",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "feature",
				Usage: "score a single feature `COLUMN` instead of all",
			},
			&cli.IntFlag{
				Name:  "reps",
				Usage: "shuffles per feature",
				Value: 30,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "random seed, 0 picks one",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print results as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger(c, ui)

			m, err := model.LoadFile(c.String("model"))
			if err != nil {
				return err
			}
			f, err := frame.ReadCSVFile(c.String("data"))
			if err != nil {
				return err
			}
			outcomes, err := frame.ReadOutcomesFile(c.String("outcomes"))
			if err != nil {
				return err
			}
			if len(outcomes) != f.NumRows() {
				return fmt.Errorf("outcomes has %d rows, data has %d", len(outcomes), f.NumRows())
			}

			seed := c.Int64("seed")
			if seed == 0 {
				seed = rand.Int63()
			}

			run := uuid.New()
			logger.Debug("importance run",
				"run", run.String(),
				"rows", f.NumRows(),
				"features", len(f.Columns),
				"reps", c.Int("reps"),
				"seed", seed)

			runner := perm.Runner{
				Model: m,
				Reps:  c.Int("reps"),
				Rand:  rand.New(rand.NewSource(seed)),
			}

			features := f.Columns
			if name := c.String("feature"); name != "" {
				if _, err := f.ColumnIndex(name); err != nil {
					return err
				}
				features = []string{name}
			}

			uiprogress.Start()
			bar := uiprogress.AddBar(len(features) * runner.Reps)
			bar.AppendCompleted()
			bar.PrependElapsed()
			runner.Progress = func() { bar.Incr() }

			var results []perm.Result
			if len(features) == 1 {
				res, err := runner.Importance(f, outcomes, features[0])
				if err != nil {
					uiprogress.Stop()
					return err
				}
				results = []perm.Result{res}
			} else {
				results, err = runner.All(f, outcomes)
				if err != nil {
					uiprogress.Stop()
					return err
				}
			}
			uiprogress.Stop()

			if len(results) == 0 {
				return fmt.Errorf("data has no feature columns")
			}

			if c.Bool("json") {
				e := json.NewEncoder(ui.Out)
				e.SetIndent("", "  ")
				return e.Encode(results)
			}

			fmt.Fprintf(ui.Out, "run %s, baseline c-index %.4f\n", run, results[0].Baseline)
			for _, res := range results {
				fmt.Fprintf(ui.Out, "%-24s %.4f\n", res.Feature, res.Importance)
			}
			return nil
		},
	}
}
