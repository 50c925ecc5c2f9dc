package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
)

func encodeCmd() *cli.Command {
	var (
		inputPath string
		asJSON    bool
	)

	return &cli.Command{
		Name:      "encode",
		Usage:     "Convert text to token ids",
		ArgsUsage: "[TEXT...]",
		Flags: []cli.Flag{
			modelFlag(),
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "read text from a file instead of the arguments",
				Destination: &inputPath,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print ids as a JSON array",
				Destination: &asJSON,
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

			text, err := encodeInput(cmd, inputPath)
			if err != nil {
				return err
			}
			ids, err := m.Encode(text)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			out := stdout(cmd)
			if asJSON {
				data, err := json.Marshal(ids)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			_, err = fmt.Fprintln(out, formatIDs(ids))
			return err
		},
	}
}

func encodeInput(cmd *cli.Command, inputPath string) (string, error) {
	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", fmt.Errorf("encode: %w", err)
		}
		return string(data), nil
	}
	if cmd.Args().Len() > 0 {
		return strings.Join(cmd.Args().Slice(), " "), nil
	}
	data, err := io.ReadAll(stdin(cmd))
	if err != nil {
		return "", fmt.Errorf("encode: read stdin: %w", err)
	}
	return string(data), nil
}

func decodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Convert token ids back to text",
		ArgsUsage: "[ID...]",
		Flags:     []cli.Flag{modelFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := resolveModelPath(modelPath, appConfig)
			if err != nil {
				return err
			}
			m, err := loadModel(ctx, path)
			if err != nil {
				return err
			}

			raw := strings.Join(cmd.Args().Slice(), " ")
			if cmd.Args().Len() == 0 {
				data, err := io.ReadAll(stdin(cmd))
				if err != nil {
					return fmt.Errorf("decode: read stdin: %w", err)
				}
				raw = string(data)
			}
			ids, err := parseIDs(raw)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			text, err := m.Decode(ids)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			_, err = io.WriteString(stdout(cmd), text)
			return err
		},
	}
}
