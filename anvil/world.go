package anvil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/astei/anvilmap/nbt"
)

// World addresses chunks of an on-disk world by their chunk coordinates.
// Region files are opened per lookup and never cached; the world is treated
// as read-only.
type World struct {
	Root string
}

func NewWorld(root string) *World {
	return &World{Root: root}
}

// RegionPath returns the path of the region file holding the given region
// coordinates.
func (w *World) RegionPath(rx, rz int) string {
	return filepath.Join(w.Root, "region", fmt.Sprintf("r.%d.%d.mca", rx, rz))
}

// LoadChunk reads and decodes the chunk at the given chunk coordinates.
// A missing region file or an empty slot is not an error; both return a nil
// tag. Negative coordinates land in negatively numbered regions.
func (w *World) LoadChunk(cx, cz int) (*nbt.Tag, error) {
	file, err := os.Open(w.RegionPath(cx>>5, cz>>5))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	region, err := NewRegionReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("could not read region %s: %w", file.Name(), err)
	}
	defer region.Close()

	data, err := region.ReadChunk(mod32(cx), mod32(cz))
	if errors.Is(err, ErrNoChunk) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read chunk %d,%d in %s: %w", cx, cz, region.Name, err)
	}

	tag, err := nbt.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("could not deserialize chunk %d,%d in %s: %w", cx, cz, region.Name, err)
	}
	return tag, nil
}

// mod32 maps a chunk coordinate to its 0..31 slot coordinate within the
// region, non-negative even for negative inputs.
func mod32(v int) int {
	return ((v % 32) + 32) % 32
}
