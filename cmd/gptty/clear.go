package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func clearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "delete every saved conversation thread",
		Action: func(c *cli.Context) error {
			e, ok := envFrom(c)
			if !ok {
				return fmt.Errorf("environment not initialized")
			}

			threads := e.sess.OrderedThreads()
			if len(threads) == 0 {
				fmt.Println("no saved threads")
				return nil
			}

			if !confirm(fmt.Sprintf("Delete all %d threads? This cannot be undone! (y/N): ", len(threads))) {
				fmt.Println("cancelled")
				return nil
			}

			for _, t := range threads {
				if _, err := e.sess.DeleteThread(t.ID); err != nil {
					return cli.Exit(err, 1)
				}
			}

			fmt.Println("cleared")
			return nil
		},
	}
}
