package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list saved conversation threads",
		Action: func(c *cli.Context) error {
			e, ok := envFrom(c)
			if !ok {
				return fmt.Errorf("environment not initialized")
			}
			return listThreads(e)
		},
	}
}

func listThreads(e *env) error {
	threads := e.sess.OrderedThreads()
	if len(threads) == 0 {
		fmt.Println("no saved threads")
		return nil
	}

	for i, t := range threads {
		preview, ok := t.ListPreview()
		if !ok {
			continue
		}
		fmt.Printf("%d. %s\n", i+1, preview)
	}
	return nil
}
