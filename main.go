// Command anvilmap inspects NBT files and renders top-down maps from
// Minecraft worlds.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app := &cli.App{
		Name:  "anvilmap",
		Usage: "inspect NBT files and render Minecraft world maps",
		Commands: []*cli.Command{
			dumpCommand(),
			mapitemCommand(),
			worldmapCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// intArg parses the i-th positional argument, or returns def when absent.
func intArg(c *cli.Context, i, def int) (int, error) {
	if i >= c.NArg() {
		return def, nil
	}
	v, err := strconv.Atoi(c.Args().Get(i))
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("argument %d: %q is not a number", i+1, c.Args().Get(i)), 2)
	}
	return v, nil
}
