package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/astei/anvilmap/render"
	"github.com/urfave/cli/v2"
)

func mapitemCommand() *cli.Command {
	return &cli.Command{
		Name:      "mapitem",
		Usage:     "render a map item to a PNG",
		ArgsUsage: "<world_root> <map-id> [zoom=5] [info-size=0]",
		Description: "Decodes data/map_<id>.dat and expands its color ids through the fixed\n" +
			"map palette into map_<id>.png.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "output PNG path (default map_<id>.png)",
			},
		},
		Action: runMapitem,
	}
}

func runMapitem(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("usage: mapitem <world_root> <map-id> [zoom] [info-size]", 2)
	}
	worldRoot := c.Args().Get(0)

	var parseErr error
	arg := func(i, def int) int {
		v, err := intArg(c, i, def)
		if err != nil && parseErr == nil {
			parseErr = err
		}
		return v
	}
	mapID := arg(1, 0)
	zoom := arg(2, 5)
	infoSize := arg(3, 0)
	if parseErr != nil {
		return parseErr
	}

	item, err := render.LoadMapItem(worldRoot, mapID)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	surface, err := item.Render(zoom)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	img := surface.Image()
	drawInfo(img, infoSize, color.NRGBA{R: 255, G: 255, A: 255}, []string{
		fmt.Sprintf("scale=%d", item.Scale),
		fmt.Sprintf("dimension=%d", item.Dimension),
		fmt.Sprintf("xCenter=%d", item.XCenter),
		fmt.Sprintf("zCenter=%d", item.ZCenter),
	})

	out := c.String("out")
	if out == "" {
		out = fmt.Sprintf("map_%d.png", mapID)
	}
	if err := writePNG(out, img); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintf(os.Stderr, "Saved %s\n", out)
	return nil
}
