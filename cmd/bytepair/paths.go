package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/bytepair/internal/bpe"
	"github.com/samcharles93/bytepair/internal/logger"
)

const envModelPath = "BYTEPAIR_MODEL"

var errNoModel = errors.New("no model given: pass --model, set model_path in config.yaml, or set " + envModelPath)

// resolveModelPath picks the model file: flag first, then config, then env.
func resolveModelPath(fromFlag string, cfg Config) (string, error) {
	for _, p := range []string{fromFlag, cfg.ModelPath, os.Getenv(envModelPath)} {
		if p = strings.TrimSpace(p); p != "" {
			return filepath.Clean(p), nil
		}
	}
	return "", errNoModel
}

// loadModel opens a .bpm file, or a JSON export when the name ends in .json.
func loadModel(ctx context.Context, path string) (*bpe.Model, error) {
	log := logger.FromContext(ctx)
	opts := []bpe.Option{bpe.WithLogger(log)}

	var (
		m   *bpe.Model
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, rerr
		}
		m, err = bpe.LoadJSON(data, opts...)
	} else {
		m, err = bpe.Load(path, opts...)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("model loaded", "path", path, "vocab_size", m.VocabSize(), "merges", m.NumMerges())
	return m, nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
