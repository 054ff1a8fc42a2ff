package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrNegativeLength is returned when a list, array or string declares a
	// negative length.
	ErrNegativeLength = errors.New("nbt: negative length")

	// ErrTooDeep is returned when compounds or lists nest beyond maxDepth.
	// Real-world documents stay far below the bound; hitting it means the
	// input is hostile or corrupt.
	ErrTooDeep = errors.New("nbt: structure nested too deeply")
)

const maxDepth = 512

// Decode parses one named tag from uncompressed bytes and returns it as the
// root of an owned tree. The root is conventionally a Compound. Trailing
// bytes after the root tag are ignored.
func Decode(data []byte) (*Tag, error) {
	r := newReader(data)
	tag, err := decodeNamed(r, 0)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// decodeNamed reads a tag-id, a name (unless the id is End) and the payload.
func decodeNamed(r *reader, depth int) (Tag, error) {
	off := r.off
	id, err := r.readU8()
	if err != nil {
		return Tag{}, err
	}
	typ := Type(id)
	if typ < TypeEnd || typ > TypeIntArray {
		return Tag{}, fmt.Errorf("nbt: invalid tag id at offset %d, byte %#02x", off, id)
	}
	if typ == TypeEnd {
		return Tag{typ: TypeEnd}, nil
	}
	name, err := r.readString()
	if err != nil {
		return Tag{}, err
	}
	tag, err := decodePayload(r, typ, depth)
	if err != nil {
		return Tag{}, err
	}
	tag.name = name
	return tag, nil
}

func decodePayload(r *reader, typ Type, depth int) (Tag, error) {
	if depth > maxDepth {
		return Tag{}, ErrTooDeep
	}
	tag := Tag{typ: typ}
	var err error
	switch typ {
	case TypeByte:
		var v uint8
		v, err = r.readU8()
		tag.num = int64(int8(v))
	case TypeShort:
		var v int16
		v, err = r.readI16()
		tag.num = int64(v)
	case TypeInt:
		var v int32
		v, err = r.readI32()
		tag.num = int64(v)
	case TypeLong:
		tag.num, err = r.readI64()
	case TypeFloat:
		var v float32
		v, err = r.readF32()
		tag.fnum = float64(v)
	case TypeDouble:
		tag.fnum, err = r.readF64()
	case TypeString:
		tag.str, err = r.readString()
	case TypeByteArray:
		return decodeByteArray(r, tag)
	case TypeIntArray:
		return decodeIntArray(r, tag)
	case TypeList:
		return decodeList(r, tag, depth)
	case TypeCompound:
		return decodeCompound(r, tag, depth)
	}
	return tag, err
}

func decodeByteArray(r *reader, tag Tag) (Tag, error) {
	n, err := r.readI32()
	if err != nil {
		return Tag{}, err
	}
	if n < 0 {
		return Tag{}, fmt.Errorf("%w: byte array of %d at offset %d", ErrNegativeLength, n, r.off)
	}
	raw, err := r.readN(int(n))
	if err != nil {
		return Tag{}, err
	}
	tag.bytes = append([]byte(nil), raw...)
	return tag, nil
}

func decodeIntArray(r *reader, tag Tag) (Tag, error) {
	n, err := r.readI32()
	if err != nil {
		return Tag{}, err
	}
	if n < 0 {
		return Tag{}, fmt.Errorf("%w: int array of %d at offset %d", ErrNegativeLength, n, r.off)
	}
	raw, err := r.readN(int(n) * 4)
	if err != nil {
		return Tag{}, err
	}
	tag.ints = make([]int32, n)
	for i := range tag.ints {
		tag.ints[i] = int32(binary.BigEndian.Uint32(raw[i*4:]))
	}
	return tag, nil
}

func decodeList(r *reader, tag Tag, depth int) (Tag, error) {
	off := r.off
	id, err := r.readU8()
	if err != nil {
		return Tag{}, err
	}
	elem := Type(id)
	if elem < TypeEnd || elem > TypeIntArray {
		return Tag{}, fmt.Errorf("nbt: invalid list element id at offset %d, byte %#02x", off, id)
	}
	n, err := r.readI32()
	if err != nil {
		return Tag{}, err
	}
	if n < 0 {
		return Tag{}, fmt.Errorf("%w: list of %d at offset %d", ErrNegativeLength, n, r.off)
	}
	if elem == TypeEnd && n > 0 {
		return Tag{}, fmt.Errorf("nbt: non-empty list of TAG_End at offset %d", off)
	}
	tag.elem = elem
	if n > 0 {
		tag.list = make([]Tag, 0, n)
	}
	for i := int32(0); i < n; i++ {
		item, err := decodePayload(r, elem, depth+1)
		if err != nil {
			return Tag{}, err
		}
		tag.list = append(tag.list, item)
	}
	return tag, nil
}

func decodeCompound(r *reader, tag Tag, depth int) (Tag, error) {
	for {
		child, err := decodeNamed(r, depth+1)
		if err != nil {
			return Tag{}, err
		}
		if child.typ == TypeEnd {
			return tag, nil
		}
		tag.list = append(tag.list, child)
	}
}
