package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/bytepair/internal/bpe"
)

func inspectCmd() *cli.Command {
	var (
		asJSON bool
		limit  int64
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Show the merge table of a trained model",
		Flags: []cli.Flag{
			modelFlag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the JSON export instead of a table",
				Destination: &asJSON,
			},
			&cli.Int64Flag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "show at most N merges (0 = all)",
				Destination: &limit,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := resolveModelPath(modelPath, appConfig)
			if err != nil {
				return err
			}
			m, err := loadModel(ctx, path)
			if err != nil {
				return err
			}

			out := stdout(cmd)
			if asJSON {
				data, err := m.MarshalJSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			fmt.Fprintf(out, "model:      %s\n", path)
			fmt.Fprintf(out, "vocab size: %d\n", m.VocabSize())
			fmt.Fprintf(out, "merges:     %d\n\n", m.NumMerges())

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLEFT\tRIGHT\tTEXT")
			for i, mg := range m.Merges() {
				if limit > 0 && int64(i) >= limit {
					break
				}
				raw, err := m.TokenBytes(mg.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%d\t%d\t%d\t%q\n", mg.ID, mg.Pair.Left, mg.Pair.Right, bpe.Printable(raw))
			}
			return tw.Flush()
		},
	}
}
