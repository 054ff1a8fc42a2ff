package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/astei/anvilmap/anvil"
	"github.com/astei/anvilmap/render"
	fcolor "github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func worldmapCommand() *cli.Command {
	return &cli.Command{
		Name:      "worldmap",
		Usage:     "render a top-down map of a world",
		ArgsUsage: "<world_root> [center-x=0] [center-z=0] [width=256] [height=256] [zoom=1] [info-size=10]",
		Description: "Renders width by height blocks around the center, each block zoom by\n" +
			"zoom pixels large, into worldmap.png. The renderer resolves block\n" +
			"transparency and shades alternating height layers.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "colors",
				Usage: "path to a YAML block color table overriding the built-in one",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "output PNG path",
				Value: "worldmap.png",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "chunk render workers (0 = one per CPU)",
			},
		},
		Action: runWorldmap,
	}
}

func runWorldmap(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("usage: worldmap <world_root> [center-x] [center-z] [width] [height] [zoom] [info-size]", 2)
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
	centerX := arg(1, 0)
	centerZ := arg(2, 0)
	width := arg(3, 256)
	height := arg(4, 256)
	zoom := arg(5, 1)
	infoSize := arg(6, 10)
	if parseErr != nil {
		return parseErr
	}

	colors := render.DefaultColors()
	if path := c.String("colors"); path != "" {
		var err error
		if colors, err = render.LoadColors(path); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	surface := render.NewImageSurface(width, height, zoom)
	opts := render.WorldMapOptions{
		CenterX: centerX,
		CenterZ: centerZ,
		Width:   width,
		Height:  height,
		Zoom:    zoom,
		Workers: c.Int("workers"),
		Logger:  slog.Default(),
	}

	progress := fcolor.New(fcolor.FgGreen)
	lastPercent := -1
	opts.Progress = func(percent int) {
		if percent != lastPercent {
			progress.Fprintf(os.Stderr, "\rRendering: %3d%%", percent)
			lastPercent = percent
		}
	}

	fmt.Fprintf(os.Stderr, "Rendering %dx%d blocks around (%d, %d) of %s\n", width, height, centerX, centerZ, worldRoot)
	if err := render.WorldMap(anvil.NewWorld(worldRoot), colors, opts, surface); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintln(os.Stderr)

	img := surface.Image()
	drawInfo(img, infoSize, color.NRGBA{A: 128}, []string{
		fmt.Sprintf("Center: (%d, %d)", centerX, centerZ),
		fmt.Sprintf("Size: (%d, %d)", width, height),
	})

	out := c.String("out")
	if err := writePNG(out, img); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintf(os.Stderr, "Saved %s\n", out)
	return nil
}
