package anvil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// minimalCompound is the wire form of an empty compound with the given name.
func minimalCompound(name string) []byte {
	b := []byte{0x0a, byte(len(name) >> 8), byte(len(name))}
	b = append(b, name...)
	return append(b, 0x00)
}

func compress(t *testing.T, scheme CompressionScheme, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch scheme {
	case CompressionGzip:
		zw := gzip.NewWriter(&buf)
		zw.Write(data)
		zw.Close()
	case CompressionZlib:
		zw := zlib.NewWriter(&buf)
		zw.Write(data)
		zw.Close()
	default:
		t.Fatalf("bad scheme %d", scheme)
	}
	return buf.Bytes()
}

type testChunk struct {
	slot   int
	scheme byte
	// frame written verbatim; overrides scheme/payload when set
	rawFrame []byte
	payload  []byte
}

// buildRegion lays test chunks out one sector each, starting at sector 2.
func buildRegion(t *testing.T, chunks ...testChunk) []byte {
	t.Helper()
	region := make([]byte, 2*sectorSize+len(chunks)*sectorSize)
	for i, chunk := range chunks {
		sector := 2 + i
		binary.BigEndian.PutUint32(region[chunk.slot*4:], uint32(sector)<<8|1)

		frame := chunk.rawFrame
		if frame == nil {
			frame = make([]byte, 5)
			binary.BigEndian.PutUint32(frame, uint32(len(chunk.payload))+1)
			frame[4] = chunk.scheme
			frame = append(frame, chunk.payload...)
		}
		if len(frame) > sectorSize {
			t.Fatalf("chunk at slot %d spills over one sector", chunk.slot)
		}
		copy(region[sector*sectorSize:], frame)
	}
	return region
}

func TestReadChunkZlib(t *testing.T) {
	t.Parallel()
	doc := minimalCompound("chunk")
	region := buildRegion(t, testChunk{slot: 5, scheme: byte(CompressionZlib), payload: compress(t, CompressionZlib, doc)})

	reader, err := NewRegionReader(bytes.NewReader(region))
	if err != nil {
		t.Fatal(err)
	}

	got, err := reader.ReadChunk(5, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, doc) {
		t.Fatalf("got %x, want %x", got, doc)
	}

	// Every other slot is absent.
	for slot := 0; slot < maxOffsets; slot++ {
		if slot == 5 {
			continue
		}
		if _, err := reader.ReadChunk(slot%32, slot/32); !errors.Is(err, ErrNoChunk) {
			t.Fatalf("slot %d: got %v, want ErrNoChunk", slot, err)
		}
	}
}

func TestReadChunkGzip(t *testing.T) {
	t.Parallel()
	doc := minimalCompound("chunk")
	region := buildRegion(t, testChunk{slot: 0, scheme: byte(CompressionGzip), payload: compress(t, CompressionGzip, doc)})

	reader, err := NewRegionReader(bytes.NewReader(region))
	if err != nil {
		t.Fatal(err)
	}
	got, err := reader.ReadChunk(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, doc) {
		t.Fatalf("got %x", got)
	}
}

func TestReadChunkZeroLengthFrame(t *testing.T) {
	t.Parallel()
	region := buildRegion(t, testChunk{slot: 9, rawFrame: []byte{0, 0, 0, 0, byte(CompressionZlib)}})

	reader, err := NewRegionReader(bytes.NewReader(region))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reader.ReadChunk(9, 0); !errors.Is(err, ErrNoChunk) {
		t.Fatalf("got %v, want ErrNoChunk", err)
	}
}

func TestReadChunkUnknownScheme(t *testing.T) {
	t.Parallel()
	region := buildRegion(t, testChunk{slot: 1, scheme: 3, payload: []byte{0x00}})

	reader, err := NewRegionReader(bytes.NewReader(region))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reader.ReadChunk(1, 0); !errors.Is(err, ErrUnknownCompression) {
		t.Fatalf("got %v, want ErrUnknownCompression", err)
	}
}

func TestReadChunkCorruptStream(t *testing.T) {
	t.Parallel()
	region := buildRegion(t, testChunk{slot: 2, scheme: byte(CompressionZlib), payload: []byte{0xde, 0xad}})

	reader, err := NewRegionReader(bytes.NewReader(region))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reader.ReadChunk(2, 0); err == nil {
		t.Fatal("want error for corrupt payload")
	}
}

func TestChunkExists(t *testing.T) {
	t.Parallel()
	region := buildRegion(t, testChunk{slot: 33, scheme: byte(CompressionZlib), payload: compress(t, CompressionZlib, minimalCompound(""))})

	reader, err := NewRegionReader(bytes.NewReader(region))
	if err != nil {
		t.Fatal(err)
	}
	if !reader.ChunkExists(1, 1) {
		t.Error("slot 33 should exist")
	}
	if reader.ChunkExists(2, 1) {
		t.Error("slot 34 should not exist")
	}
}

func TestTruncatedRegion(t *testing.T) {
	t.Parallel()
	if _, err := NewRegionReader(bytes.NewReader(make([]byte, 100))); err == nil {
		t.Fatal("want error for truncated location table")
	}
}
