package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/bytepair/internal/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := version.Resolve()
			out := stdout(cmd)
			fmt.Fprintf(out, "bytepair:   %s\n", info.Version)
			if info.Commit != "" {
				fmt.Fprintf(out, "commit:     %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Fprintf(out, "build time: %s\n", info.BuildTime)
			}
			fmt.Fprintf(out, "go:         %s\n", info.GoVersion)
			return nil
		},
	}
}
