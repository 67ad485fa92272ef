package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/keagud/gptty/internal/tui"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "start a new conversation thread",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prompt", Usage: "persona label to seed the thread with"},
		},
		Action: func(c *cli.Context) error {
			e, ok := envFrom(c)
			if !ok {
				return fmt.Errorf("environment not initialized")
			}

			if err := requireTerminal(); err != nil {
				return cli.Exit(err, 1)
			}

			persona, err := resolvePersona(e, c.String("prompt"))
			if err != nil {
				return cli.Exit(err, 1)
			}

			id, err := e.sess.NewThread(persona)
			if err != nil {
				return cli.Exit(err, 1)
			}

			return tui.Run(context.Background(), e.sess, e.engine, e.log, id)
		},
	}
}
