package nbt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// ErrCorruptStream is returned when a compressed stream cannot be inflated.
var ErrCorruptStream = errors.New("nbt: corrupt compressed stream")

const inflateBufferSize = 64 * 1024

var gzipMagic = []byte{0x1f, 0x8b}

// InflateGzip decompresses a gzip stream held fully in memory.
func InflateGzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptStream, err)
	}
	defer zr.Close()
	return inflate(zr)
}

// InflateZlib decompresses a zlib/deflate stream held fully in memory.
func InflateZlib(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptStream, err)
	}
	defer zr.Close()
	return inflate(zr)
}

func inflate(zr io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(inflateBufferSize)
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptStream, err)
	}
	return buf.Bytes(), nil
}

// LoadFile reads an NBT document from disk and decodes it. Files starting
// with the gzip magic are decompressed first; anything else is treated as
// uncompressed NBT.
func LoadFile(path string) (*Tag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, gzipMagic) {
		if data, err = InflateGzip(data); err != nil {
			return nil, fmt.Errorf("inflating %s: %w", path, err)
		}
	}
	return Decode(data)
}
