package render

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/astei/anvilmap/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Wire-format builders for chunk and map-item fixtures.

func be16(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func named(id byte, name string, payload ...[]byte) []byte {
	b := append([]byte{id}, be16(uint16(len(name)))...)
	b = append(b, name...)
	for _, p := range payload {
		b = append(b, p...)
	}
	return b
}

func compound(name string, children ...[]byte) []byte {
	b := named(10, name)
	for _, c := range children {
		b = append(b, c...)
	}
	return append(b, 0)
}

// compoundPayload is a compound without the id/name header, as list
// elements are stored.
func compoundPayload(children ...[]byte) []byte {
	var b []byte
	for _, c := range children {
		b = append(b, c...)
	}
	return append(b, 0)
}

func listOfCompounds(name string, elems ...[]byte) []byte {
	b := named(9, name, []byte{0x0a}, be32(uint32(len(elems))))
	for _, e := range elems {
		b = append(b, e...)
	}
	return b
}

func sectionPayload(blocks, data []byte) []byte {
	return compoundPayload(
		named(7, "Blocks", be32(uint32(len(blocks))), blocks),
		named(7, "Data", be32(uint32(len(data))), data),
	)
}

// chunkDoc builds a chunk document: a root compound holding a Level
// compound with the given Sections list elements.
func chunkDoc(sections ...[]byte) []byte {
	return compound("",
		compound("Level", listOfCompounds("Sections", sections...)),
	)
}

// levelTag decodes a chunk document and returns its Level compound.
func levelTag(t *testing.T, doc []byte) *nbt.Tag {
	t.Helper()
	root, err := nbt.Decode(doc)
	if err != nil {
		t.Fatal(err)
	}
	level := root.Get("Level")
	if level == nil {
		t.Fatal("fixture has no Level")
	}
	return level
}

// blockIndex maps section-local coordinates to the Blocks array index.
func blockIndex(ix, y, iz int) int {
	return y*256 + iz*16 + ix
}

func zlibCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func gzipCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type regionChunk struct {
	slot    int
	payload []byte // compressed; raw zlib expected by default scheme 2
}

// writeRegion writes a region file with each chunk in its own sector.
func writeRegion(t *testing.T, worldRoot string, rx, rz int, chunks ...regionChunk) {
	t.Helper()
	region := make([]byte, (2+len(chunks))*4096)
	for i, chunk := range chunks {
		sector := 2 + i
		binary.BigEndian.PutUint32(region[chunk.slot*4:], uint32(sector)<<8|1)
		frame := region[sector*4096:]
		binary.BigEndian.PutUint32(frame, uint32(len(chunk.payload))+1)
		frame[4] = 2
		copy(frame[5:], chunk.payload)
	}

	dir := filepath.Join(worldRoot, "region")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(dir, fmt.Sprintf("r.%d.%d.mca", rx, rz))
	if err := os.WriteFile(name, region, 0o644); err != nil {
		t.Fatal(err)
	}
}

// testTable builds a table with a handful of known colors.
func testTable() *ColorTable {
	table := &ColorTable{}
	table.Set(1, 0, 0xff646464)  // opaque gray "stone"
	table.Set(8, 0, 0xb02c41f4)  // translucent "water"
	table.Set(35, 0, 0xffdddddd) // "wool", with one colored variant
	table.Set(35, 14, 0xff963430)
	return table
}
