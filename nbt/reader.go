package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrUnexpectedEOF is returned when a read would run past the end of the
// input slice.
var ErrUnexpectedEOF = errors.New("nbt: unexpected end of input")

// reader is a cursor over an in-memory byte slice. All reads are
// bounds-checked and decode big-endian, as the wire format requires
// regardless of host byte order.
type reader struct {
	data []byte
	off  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d at offset %d", ErrNegativeLength, n, r.off)
	}
	if r.off+n > len(r.data) {
		return nil, fmt.Errorf("%w at offset %d", ErrUnexpectedEOF, r.off)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) readU8() (uint8, error) {
	b, err := r.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readI16() (int16, error) {
	b, err := r.readN(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (r *reader) readI32() (int32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) readI64() (int64, error) {
	b, err := r.readN(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *reader) readF32() (float32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) readF64() (float64, error) {
	b, err := r.readN(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// readString reads a UInt16 length prefix followed by that many bytes. The
// bytes are returned verbatim; names and string payloads are modified UTF-8
// in practice but may contain any byte.
func (r *reader) readString() (string, error) {
	b, err := r.readN(2)
	if err != nil {
		return "", err
	}
	s, err := r.readN(int(binary.BigEndian.Uint16(b)))
	if err != nil {
		return "", err
	}
	return string(s), nil
}
