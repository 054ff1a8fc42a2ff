package render

import (
	"fmt"
	"path/filepath"

	"github.com/astei/anvilmap/nbt"
)

// mapBaseColors is the fixed map-item palette: 36 base colors, each of
// which fans out into four shades. The first eight predate 1.7; the rest
// were added with the 1.7 palette extension.
var mapBaseColors = [36][3]uint8{
	{0, 0, 0},
	{127, 178, 56},
	{247, 233, 163},
	{167, 167, 167},
	{255, 0, 0},
	{160, 160, 255},
	{167, 167, 167},
	{0, 124, 0},
	{255, 255, 255},
	{164, 168, 184},
	{183, 106, 47},
	{112, 112, 112},
	{64, 64, 255},
	{104, 83, 50},
	{255, 252, 245},
	{216, 127, 51},
	{178, 76, 216},
	{102, 153, 216},
	{229, 229, 51},
	{127, 204, 25},
	{242, 127, 165},
	{76, 76, 76},
	{153, 153, 153},
	{76, 127, 153},
	{127, 63, 178},
	{51, 76, 178},
	{102, 76, 51},
	{102, 127, 51},
	{153, 51, 51},
	{25, 25, 25},
	{250, 238, 77},
	{92, 219, 213},
	{74, 128, 255},
	{0, 217, 58},
	{21, 20, 31},
	{112, 2, 0},
}

// Shade multipliers for the four variants of each base color, applied as
// base*multiplier/255.
var mapShadeMultipliers = [4]uint32{180, 220, 255, 135}

// mapPalette expands the base colors into the 144-entry shaded palette.
// Entries 0..3 (the shades of base color 0) render transparent.
func mapPalette() [144]ARGB {
	var palette [144]ARGB
	for i, base := range mapBaseColors {
		for shade, mult := range mapShadeMultipliers {
			r := ARGB(uint32(base[0]) * mult / 255)
			g := ARGB(uint32(base[1]) * mult / 255)
			b := ARGB(uint32(base[2]) * mult / 255)
			palette[i*4+shade] = opaque | r<<16 | g<<8 | b
		}
	}
	return palette
}

// MapItem is a decoded data/map_<id>.dat document.
type MapItem struct {
	Width     int
	Height    int
	Colors    []byte
	Scale     int64
	Dimension int64
	XCenter   int64
	ZCenter   int64
}

// MapItemPath returns the path of a map item file within a world.
func MapItemPath(worldRoot string, id int) string {
	return filepath.Join(worldRoot, "data", fmt.Sprintf("map_%d.dat", id))
}

// LoadMapItem reads and validates the map item with the given id.
func LoadMapItem(worldRoot string, id int) (*MapItem, error) {
	path := MapItemPath(worldRoot, id)
	root, err := nbt.LoadFile(path)
	if err != nil {
		return nil, err
	}
	data := root.Get("data")
	if data == nil {
		return nil, fmt.Errorf("render: %s has no data compound", path)
	}

	item := &MapItem{
		Width:     int(data.Get("width").AsInt()),
		Height:    int(data.Get("height").AsInt()),
		Colors:    colorBytes(data.Get("colors")),
		Scale:     data.Get("scale").AsInt(),
		Dimension: data.Get("dimension").AsInt(),
		XCenter:   data.Get("xCenter").AsInt(),
		ZCenter:   data.Get("zCenter").AsInt(),
	}
	if item.Width <= 0 || item.Height <= 0 || item.Width*item.Height != len(item.Colors) {
		return nil, fmt.Errorf("render: %s: %dx%d map with %d colors", path, item.Width, item.Height, len(item.Colors))
	}
	return item, nil
}

// colorBytes accepts the colors payload either as a byte array or as a list
// of bytes; older worlds use the latter.
func colorBytes(tag *nbt.Tag) []byte {
	if tag == nil {
		return nil
	}
	if b := tag.Bytes(); b != nil {
		return b
	}
	if tag.Type() != nbt.TypeList || tag.ListType() != nbt.TypeByte {
		return nil
	}
	b := make([]byte, tag.Size())
	for i := range b {
		b[i] = byte(tag.ListItemAsInt(i))
	}
	return b
}

// Render draws the map item onto a fresh surface at the given zoom. Color
// ids below 4, and ids outside the palette, stay transparent.
func (m *MapItem) Render(zoom int) (*ImageSurface, error) {
	if zoom <= 0 {
		return nil, fmt.Errorf("render: invalid zoom %d", zoom)
	}
	palette := mapPalette()
	surface := NewImageSurface(m.Width, m.Height, zoom)
	for z := 0; z < m.Height; z++ {
		for x := 0; x < m.Width; x++ {
			id := m.Colors[x+z*m.Width]
			if id < 4 || int(id) >= len(palette) {
				continue
			}
			surface.PutBlock(x, z, palette[id])
		}
	}
	return surface, nil
}
