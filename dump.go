package main

import (
	"fmt"

	"github.com/astei/anvilmap/nbt"
	"github.com/urfave/cli/v2"
)

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print the tag tree of an NBT file",
		ArgsUsage: "<file> [tag-path]",
		Description: "Decodes an uncompressed or gzipped NBT file and prints the subtree\n" +
			"at the dotted tag path. An empty path prints the whole document.",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("usage: dump <file> [tag-path]", 2)
			}
			path := c.Args().Get(0)
			tagPath := c.Args().Get(1)

			root, err := nbt.LoadFile(path)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			tag := root.Get(tagPath)
			if tag == nil {
				return cli.Exit(fmt.Sprintf("there is no such tag %q in file %q", tagPath, path), 1)
			}
			fmt.Println(tag.String())
			return nil
		},
	}
}
