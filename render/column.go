package render

import (
	"github.com/astei/anvilmap/nbt"
)

const (
	sectionsPerChunk = 16
	blocksPerSection = 16 * 16 * 16
	columnsPerChunk  = 16 * 16
)

// resolveColumns computes the top-most visible color of each of the 256
// block columns in a chunk. Sections are scanned from the top (assuming the
// Sections list is sorted by height), blocks within a section likewise;
// semi-transparent blocks composite over whatever lies below them, and
// blocks in even-numbered y layers take the darkened color to show height
// contours. The scan stops as soon as all columns are opaque.
func resolveColumns(level *nbt.Tag, colors *ColorTable) [columnsPerChunk]ARGB {
	var columns [columnsPerChunk]ARGB

	sections := level.Get("Sections")
	if sections == nil {
		return columns
	}

	opaqueFound := 0
	for sectionID := sectionsPerChunk - 1; sectionID >= 0; sectionID-- {
		section := sections.ListItemAsTag(sectionID)
		if section == nil {
			continue
		}
		blocks := section.Get("Blocks")
		if blocks == nil {
			continue
		}
		ids := blocks.Bytes()
		if len(ids) < blocksPerSection {
			continue
		}
		var metas []byte
		if data := section.Get("Data"); data != nil {
			metas = data.Bytes()
		}

		for b := blocksPerSection - 1; b >= 0; b-- {
			column := b % columnsPerChunk
			old := columns[column]
			if old >= opaque {
				continue
			}
			id := ids[b]
			if id == 0 {
				continue
			}
			var meta uint8
			if b/2 < len(metas) {
				meta = metas[b/2] >> (uint(b%2) * 4) & 0x0f
			}

			c := colors.Color(id, meta)
			if c == 0 {
				continue
			}
			if (b/columnsPerChunk)%2 == 0 {
				c = colors.Darkened(id, meta)
			}
			if old != 0 {
				c = compose(c, old)
			}

			if c >= opaque {
				opaqueFound++
			}
			columns[column] = c
			if opaqueFound >= columnsPerChunk {
				return columns
			}
		}
	}
	return columns
}

// compose layers a newly found block color under the partially transparent
// color accumulated above it. Arithmetic is byte-scaled with 32-bit
// intermediates, integer division and a per-channel clamp.
func compose(next, over ARGB) ARGB {
	na := uint32(next.Alpha())
	oa := uint32(over.Alpha())

	out := clampChannel((na*(0xff-oa) + oa*0xff) / 0xff)
	for _, shift := range []uint{16, 8, 0} {
		nc := uint32(next>>shift) & 0xff
		oc := uint32(over>>shift) & 0xff
		out = out<<8 | clampChannel((nc*(0xff-oa)+oc*oa)/0xff)
	}
	return ARGB(out)
}

func clampChannel(v uint32) uint32 {
	if v > 0xff {
		return 0xff
	}
	return v
}
