package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/bytepair/internal/bpe"
	"github.com/samcharles93/bytepair/internal/logger"
)

func trainCmd() *cli.Command {
	var (
		inputPath     string
		outPath       string
		jsonPath      string
		vocabSize     int64
		progressEvery int64
	)

	return &cli.Command{
		Name:  "train",
		Usage: "Learn a merge table from a training text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "training text file",
				Required:    true,
				Destination: &inputPath,
			},
			&cli.Int64Flag{
				Name:        "vocab-size",
				Aliases:     []string{"v"},
				Usage:       "total vocabulary size including the 256 byte ids",
				Value:       bpe.DefaultVocabSize,
				Destination: &vocabSize,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "where to write the .bpm model",
				Value:       "model.bpm",
				Destination: &outPath,
			},
			&cli.StringFlag{
				Name:        "json",
				Usage:       "also write a JSON export of the merge table",
				Destination: &jsonPath,
			},
			&cli.Int64Flag{
				Name:        "progress-every",
				Usage:       "log a progress line every N merges (debug level)",
				Value:       100,
				Destination: &progressEvery,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			if appConfig.VocabSize != nil && !cmd.IsSet("vocab-size") {
				vocabSize = *appConfig.VocabSize
			}
			if outPath == "" && jsonPath == "" {
				return errors.New("train: nothing to write, set --out or --json")
			}

			text, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}

			m, err := bpe.New(string(text), int(vocabSize),
				bpe.WithLogger(log),
				bpe.WithProgressEvery(int(progressEvery)),
			)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}

			start := time.Now()
			if err := m.Train(); err != nil {
				return fmt.Errorf("train: %w (try a smaller --vocab-size for %d bytes of text)", err, len(text))
			}
			elapsed := time.Since(start)

			if outPath != "" {
				if err := m.Save(outPath); err != nil {
					return fmt.Errorf("train: save model: %w", err)
				}
			}
			if jsonPath != "" {
				data, err := m.MarshalJSON()
				if err != nil {
					return fmt.Errorf("train: export json: %w", err)
				}
				if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
					return fmt.Errorf("train: write json: %w", err)
				}
			}

			log.Info("model written", "out", outPath, "json", jsonPath, "elapsed", elapsed.Round(time.Millisecond))
			_, err = fmt.Fprintf(stdout(cmd), "trained %d merges (vocab %d) from %d bytes in %s\n",
				m.NumMerges(), m.VocabSize(), len(text), elapsed.Round(time.Millisecond))
			return err
		},
	}
}
