// Package anvil reads Minecraft region files, the 32×32-chunk sectored
// containers found under <world>/region/. It is strictly read-only.
package anvil

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/astei/anvilmap/nbt"
)

const maxOffsets = 1024
const sectorSize = 4096

var ErrNoChunk = errors.New("anvil: chunk not found")
var ErrInvalidChunkLength = errors.New("anvil: invalid chunk length")
var ErrUnknownCompression = errors.New("anvil: unknown compression scheme")

// CompressionScheme is the 1-byte scheme code in a chunk's frame header.
type CompressionScheme byte

const (
	CompressionGzip CompressionScheme = 1
	CompressionZlib CompressionScheme = 2
)

// RegionReader reads chunks out of a single region file. The reader is not
// safe for concurrent access; usage should be protected by a mutex if
// concurrent access is desired.
type RegionReader struct {
	source    io.ReadSeeker
	locations [maxOffsets]uint32
	Name      string
}

// NewRegionReader creates a RegionReader and reads the location table. The
// ownership of the source is transferred to this reader.
func NewRegionReader(source io.ReadSeeker) (*RegionReader, error) {
	reader := &RegionReader{source: source}
	if file, ok := source.(*os.File); ok {
		reader.Name = file.Name()
	}
	if err := reader.readLocations(); err != nil {
		return nil, fmt.Errorf("reading location table: %w", err)
	}
	return reader, nil
}

// readLocations decodes sector 0: 1024 big-endian entries packing the
// chunk's first sector number in the high 24 bits and its sector count in
// the low 8.
func (region *RegionReader) readLocations() error {
	if _, err := region.source.Seek(0, io.SeekStart); err != nil {
		return err
	}
	table := make([]byte, sectorSize)
	if _, err := io.ReadFull(region.source, table); err != nil {
		return err
	}
	for i := range region.locations {
		region.locations[i] = binary.BigEndian.Uint32(table[i*4:])
	}
	return nil
}

// ChunkExists reports whether the location table has an entry for the chunk
// at the region-local coordinates.
func (region *RegionReader) ChunkExists(x, z int) bool {
	return region.locations[x+z*32] != 0
}

// ReadChunk reads and inflates the chunk at the specified X and Z
// coordinates. Note that these coordinates are relative to the region file
// and are not chunk coordinates. The returned bytes are an uncompressed NBT
// document. ErrNoChunk is returned for empty slots, including slots whose
// frame declares a zero payload length.
func (region *RegionReader) ReadChunk(x, z int) ([]byte, error) {
	sector := region.locations[x+z*32] >> 8
	if sector == 0 {
		return nil, ErrNoChunk
	}

	if _, err := region.source.Seek(int64(sector)*sectorSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to sector %d: %w", sector, err)
	}

	// The chunk frame: a big-endian payload length (which counts the
	// scheme byte) followed by the scheme byte itself.
	var frame [5]byte
	if _, err := io.ReadFull(region.source, frame[:]); err != nil {
		return nil, fmt.Errorf("reading chunk frame: %w", err)
	}
	length := int32(binary.BigEndian.Uint32(frame[:4]))
	if length == 0 {
		return nil, ErrNoChunk
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkLength, length)
	}

	compressed := make([]byte, length-1)
	if _, err := io.ReadFull(region.source, compressed); err != nil {
		return nil, fmt.Errorf("reading chunk payload: %w", err)
	}

	switch scheme := CompressionScheme(frame[4]); scheme {
	case CompressionGzip:
		return nbt.InflateGzip(compressed)
	case CompressionZlib:
		return nbt.InflateZlib(compressed)
	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownCompression, scheme)
	}
}

func (region *RegionReader) Close() error {
	if closer, ok := region.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
