package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/keagud/gptty/internal/tui"
)

func resumeCommand() *cli.Command {
	return &cli.Command{
		Name:      "resume",
		Usage:     "resume a saved conversation thread",
		ArgsUsage: "<1-based index>",
		Action: func(c *cli.Context) error {
			e, ok := envFrom(c)
			if !ok {
				return fmt.Errorf("environment not initialized")
			}
			if c.NArg() != 1 {
				return cli.Exit("resume requires exactly one argument: a 1-based index", 1)
			}
			if err := requireTerminal(); err != nil {
				return cli.Exit(err, 1)
			}

			n, err := resolveIndex(e, c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}

			thread := e.sess.OrderedThreads()[n-1]
			return tui.Run(context.Background(), e.sess, e.engine, e.log, thread.ID)
		},
	}
}
