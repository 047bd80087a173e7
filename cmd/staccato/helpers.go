package main

import "github.com/urfave/cli/v2"

// getPaths returns input paths from positional args, defaulting to stdin.
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{stdinPath}
}
