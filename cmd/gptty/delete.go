package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a saved conversation thread",
		ArgsUsage: "<1-based index>",
		Action: func(c *cli.Context) error {
			e, ok := envFrom(c)
			if !ok {
				return fmt.Errorf("environment not initialized")
			}
			if c.NArg() != 1 {
				return cli.Exit("delete requires exactly one argument: a 1-based index", 1)
			}

			n, err := resolveIndex(e, c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}

			thread := e.sess.OrderedThreads()[n-1]
			title := thread.DisplayTitle()

			if !confirm(fmt.Sprintf("Delete thread '%s'? (y/N) ", title)) {
				fmt.Println("cancelled")
				return nil
			}

			existed, err := e.sess.DeleteThread(thread.ID)
			if err != nil {
				return cli.Exit(err, 1)
			}
			if !existed {
				return cli.Exit(fmt.Sprintf("thread %d no longer exists", n), 1)
			}

			fmt.Println("deleted")
			return nil
		},
	}
}
