// Package render turns decoded chunk data into top-down map images.
package render

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ARGB is a packed 0xAARRGGBB color. The zero value is fully transparent
// and doubles as "no color" throughout the renderer.
type ARGB uint32

const opaque ARGB = 0xff000000

func (c ARGB) Alpha() uint8 { return uint8(c >> 24) }
func (c ARGB) Red() uint8   { return uint8(c >> 16) }
func (c ARGB) Green() uint8 { return uint8(c >> 8) }
func (c ARGB) Blue() uint8  { return uint8(c) }

// darknessPercent scales the RGB channels of the darkened color twin used
// for height striping.
const darknessPercent = 95

// 8-bit block id plus 4-bit metadata.
const colorTableSize = 1 << 12

func colorIndex(id, meta uint8) int {
	return int(id) | int(meta&0x0f)<<8
}

// ColorTable maps (block id, metadata) pairs to colors. Unknown pairs fall
// back to metadata 0 and then to transparent. The table is immutable after
// loading and safe to share between workers.
type ColorTable struct {
	colors [colorTableSize]ARGB
	dark   [colorTableSize]ARGB
}

// Set assigns a color and its precomputed darkened twin.
func (t *ColorTable) Set(id, meta uint8, c ARGB) {
	i := colorIndex(id, meta)
	t.colors[i] = c
	t.dark[i] = darken(c)
}

func darken(c ARGB) ARGB {
	if c == 0 {
		return 0
	}
	r := ARGB(c.Red()) * darknessPercent / 100
	g := ARGB(c.Green()) * darknessPercent / 100
	b := ARGB(c.Blue()) * darknessPercent / 100
	return ARGB(c.Alpha())<<24 | r<<16 | g<<8 | b
}

func (t *ColorTable) resolve(id, meta uint8) int {
	i := colorIndex(id, meta)
	if t.colors[i] == 0 {
		i = colorIndex(id, 0)
	}
	return i
}

// Color looks up the color for a block, falling back to metadata 0 when the
// exact pair is unknown. A zero result means no color is known.
func (t *ColorTable) Color(id, meta uint8) ARGB {
	return t.colors[t.resolve(id, meta)]
}

// Darkened is Color with the RGB channels scaled down for height striping;
// alpha is unchanged.
func (t *ColorTable) Darkened(id, meta uint8) ARGB {
	return t.dark[t.resolve(id, meta)]
}

type colorEntry struct {
	ID    uint8  `yaml:"id"`
	Meta  *uint8 `yaml:"meta"`
	Color string `yaml:"color"`
	Alpha *uint8 `yaml:"alpha"`
}

type colorFile struct {
	Blocks []colorEntry `yaml:"blocks"`
}

//go:embed colors.yaml
var defaultColorData []byte

// DefaultColors returns the table built into the binary.
func DefaultColors() *ColorTable {
	table, err := ParseColors(defaultColorData)
	if err != nil {
		panic("render: embedded color table is invalid: " + err.Error())
	}
	return table
}

// LoadColors reads a color table from a YAML file.
func LoadColors(path string) (*ColorTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table, err := ParseColors(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return table, nil
}

// ParseColors builds a table from YAML color entries. Each entry names a
// block id, an optional metadata value (default 0), a 24-bit hex RGB color
// and an optional alpha (default 0xff).
func ParseColors(data []byte) (*ColorTable, error) {
	var file colorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	table := &ColorTable{}
	for _, entry := range file.Blocks {
		rgb, err := strconv.ParseUint(entry.Color, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("block %d: bad color %q", entry.ID, entry.Color)
		}
		if rgb > 0xffffff {
			return nil, fmt.Errorf("block %d: color %q is wider than 24 bits", entry.ID, entry.Color)
		}
		alpha := uint8(0xff)
		if entry.Alpha != nil {
			alpha = *entry.Alpha
		}
		var meta uint8
		if entry.Meta != nil {
			meta = *entry.Meta
		}
		table.Set(entry.ID, meta, ARGB(alpha)<<24|ARGB(rgb))
	}
	return table, nil
}
