package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/bytepair/internal/api"
	"github.com/samcharles93/bytepair/internal/logger"
)

const defaultServeAddr = "127.0.0.1:8080"

func serveCmd() *cli.Command {
	var (
		addr              string
		readHeaderTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve encode/decode over HTTP",
		Flags: []cli.Flag{
			modelFlag(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       defaultServeAddr,
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "header read timeout",
				Value:       30 * time.Second,
				Destination: &readHeaderTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			addr = serveAddress(addr, cmd.IsSet("addr"), appConfig)

			path, err := resolveModelPath(modelPath, appConfig)
			if err != nil {
				return err
			}
			e, err := newServeEcho(ctx, path, log)
			if err != nil {
				return err
			}

			log.Info("starting server", "address", addr, "model", path)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readHeaderTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}

// serveAddress returns the config address unless --addr was given.
func serveAddress(fromFlag string, flagSet bool, cfg Config) string {
	if cfg.ServerAddress != "" && !flagSet {
		return cfg.ServerAddress
	}
	return fromFlag
}

// newServeEcho loads the model at path and mounts the API on a new echo
// instance.
func newServeEcho(ctx context.Context, path string, log logger.Logger) (*echo.Echo, error) {
	m, err := loadModel(ctx, path)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	api.NewServer(m, log).Register(e)

	log.Debug("api mounted", "model", path, "vocab_size", m.VocabSize(), "merges", m.NumMerges())
	return e, nil
}
