// Package nbt reads Named Binary Tag documents, the big-endian tagged-tree
// serialization the Notchian client and server use for world, chunk and
// player data.
//
// Decode produces an immutable tag tree; Tag's accessors never mutate it and
// never transfer ownership, so callers can chain path lookups without
// worrying about who frees what.
package nbt

import (
	"strconv"
	"strings"
)

// Type identifies the kind of a tag as it appears on the wire.
type Type int8

const (
	TypeEnd Type = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeString
	TypeList
	TypeCompound
	TypeIntArray
)

var typeNames = [...]string{
	"TAG_End",
	"TAG_Byte",
	"TAG_Short",
	"TAG_Int",
	"TAG_Long",
	"TAG_Float",
	"TAG_Double",
	"TAG_ByteArray",
	"TAG_String",
	"TAG_List",
	"TAG_Compound",
	"TAG_IntArray",
}

func (t Type) String() string {
	if t < TypeEnd || t > TypeIntArray {
		return "TAG_Invalid"
	}
	return typeNames[t]
}

func (t Type) isInt() bool {
	return t == TypeByte || t == TypeShort || t == TypeInt || t == TypeLong
}

func (t Type) isFloat() bool {
	return t == TypeFloat || t == TypeDouble
}

// isList reports whether the payload is a homogeneous sequence: a List or
// one of the two specialized arrays.
func (t Type) isList() bool {
	return t == TypeByteArray || t == TypeIntArray || t == TypeList
}

// Tag is one node of a decoded NBT tree. A tag owns its payload; a compound
// owns its children; destroying the root (letting it go out of scope)
// releases the whole subtree.
type Tag struct {
	typ  Type
	name string

	num   int64   // Byte, Short, Int, Long
	fnum  float64 // Float, Double
	str   string  // String
	bytes []byte  // ByteArray
	ints  []int32 // IntArray
	elem  Type    // List element kind
	list  []Tag   // List payloads (nameless) and Compound children (named)
}

// Type returns the kind of the tag. A nil tag reports TypeEnd.
func (t *Tag) Type() Type {
	if t == nil {
		return TypeEnd
	}
	return t.typ
}

// Name returns the tag's name. List elements are nameless. A nil tag
// returns "".
func (t *Tag) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Size returns the child count of a List, array or Compound, and 0 for
// every other kind, including a nil tag.
func (t *Tag) Size() int {
	if t == nil {
		return 0
	}
	switch t.typ {
	case TypeByteArray:
		return len(t.bytes)
	case TypeIntArray:
		return len(t.ints)
	case TypeList, TypeCompound:
		return len(t.list)
	}
	return 0
}

// ListType returns the element kind of a List, TypeByte for a ByteArray and
// TypeInt for an IntArray. For any other kind it returns TypeEnd.
func (t *Tag) ListType() Type {
	if t == nil {
		return TypeEnd
	}
	switch t.typ {
	case TypeByteArray:
		return TypeByte
	case TypeIntArray:
		return TypeInt
	case TypeList:
		return t.elem
	}
	return TypeEnd
}

// AsInt returns the numeric value of an integer or float tag, rounding
// toward zero for floats. Non-numeric kinds return 0.
func (t *Tag) AsInt() int64 {
	if t == nil {
		return 0
	}
	if t.typ.isInt() {
		return t.num
	}
	if t.typ.isFloat() {
		return int64(t.fnum)
	}
	return 0
}

// AsFloat returns the numeric value of an integer or float tag. Non-numeric
// kinds return 0.
func (t *Tag) AsFloat() float64 {
	if t == nil {
		return 0
	}
	if t.typ.isInt() {
		return float64(t.num)
	}
	if t.typ.isFloat() {
		return t.fnum
	}
	return 0
}

// Bytes returns the raw payload of a ByteArray as a borrowed slice. Callers
// must not modify it. Any other kind returns nil.
func (t *Tag) Bytes() []byte {
	if t == nil {
		return nil
	}
	if t.typ == TypeByteArray {
		return t.bytes
	}
	return nil
}

// Ints returns the payload of an IntArray as a borrowed slice. Callers must
// not modify it. Any other kind returns nil.
func (t *Tag) Ints() []int32 {
	if t == nil {
		return nil
	}
	if t.typ == TypeIntArray {
		return t.ints
	}
	return nil
}

// AsString renders the tag's value. Numbers format in decimal, strings
// return their payload verbatim, and containers produce a multi-line
// json-style tree. List-kind payloads longer than 15 entries are truncated
// with an "... and K more" line.
func (t *Tag) AsString() string {
	if t == nil {
		return ""
	}
	switch {
	case t.typ.isInt():
		return strconv.FormatInt(t.num, 10)
	case t.typ.isFloat():
		return strconv.FormatFloat(t.fnum, 'f', 6, 64)
	case t.typ == TypeString:
		return t.str
	case t.typ.isList() || t.typ == TypeCompound:
		size := t.Size()
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(size))
		sb.WriteString(" entries\n{\n")
		for i := 0; i < size; i++ {
			if t.typ.isList() && i >= 10 && size > 15 {
				sb.WriteString("  ... and ")
				sb.WriteString(strconv.Itoa(size - 10))
				sb.WriteString(" more\n")
				break
			}
			item := t.ListItemAsTag(i)
			if item == nil {
				sb.WriteString("  ERROR\n")
				continue
			}
			sb.WriteString("  ")
			sb.WriteString(strings.ReplaceAll(item.String(), "\n", "\n  "))
			sb.WriteString("\n")
		}
		sb.WriteString("}")
		return sb.String()
	}
	return ""
}

// String renders the tag's kind, name and value, e.g.
// "TAG_Byte('x'): 42".
func (t *Tag) String() string {
	if t == nil {
		return "TAG_End(nil)"
	}
	return t.typ.String() + "('" + t.name + "'): " + t.AsString()
}

// ListItemAsInt returns the i-th element of a numeric sequence as an
// integer, or 0 when out of bounds or non-numeric. ByteArray elements are
// sign-extended.
func (t *Tag) ListItemAsInt(i int) int64 {
	if t == nil || i < 0 || i >= t.Size() {
		return 0
	}
	switch t.typ {
	case TypeByteArray:
		return int64(int8(t.bytes[i]))
	case TypeIntArray:
		return int64(t.ints[i])
	case TypeList:
		if t.elem.isInt() {
			return t.list[i].num
		}
		if t.elem.isFloat() {
			return int64(t.list[i].fnum)
		}
	}
	return 0
}

// ListItemAsFloat returns the i-th element of a numeric sequence as a
// float, or 0 when out of bounds or non-numeric.
func (t *Tag) ListItemAsFloat(i int) float64 {
	if t == nil || i < 0 || i >= t.Size() {
		return 0
	}
	switch t.typ {
	case TypeByteArray:
		return float64(int8(t.bytes[i]))
	case TypeIntArray:
		return float64(t.ints[i])
	case TypeList:
		if t.elem.isInt() {
			return float64(t.list[i].num)
		}
		if t.elem.isFloat() {
			return t.list[i].fnum
		}
	}
	return 0
}

// ListItemAsString returns the i-th element of a sequence rendered as a
// string, or "" when out of bounds.
func (t *Tag) ListItemAsString(i int) string {
	item := t.ListItemAsTag(i)
	if item == nil {
		return ""
	}
	return item.AsString()
}

// ListItemAsTag returns a borrowed view of the i-th child of a List, array
// or Compound, or nil when out of bounds. Array elements are materialized as
// value tags named after their index; callers never free the result either
// way.
func (t *Tag) ListItemAsTag(i int) *Tag {
	if t == nil || i < 0 || i >= t.Size() {
		return nil
	}
	switch t.typ {
	case TypeList, TypeCompound:
		return &t.list[i]
	case TypeByteArray:
		return &Tag{typ: TypeByte, name: strconv.Itoa(i), num: int64(int8(t.bytes[i]))}
	case TypeIntArray:
		return &Tag{typ: TypeInt, name: strconv.Itoa(i), num: int64(t.ints[i])}
	}
	return nil
}

// Get navigates to a descendant by a dot-separated path and returns a
// borrowed view of it, or nil when the path does not resolve. Empty
// segments are skipped, so "a..b." is the same path as "a.b". Each segment
// matches a compound child by name first; failing that it is read as a
// decimal index into the current container; failing that it may name the
// current tag itself, which lets paths spell out the root tag's name.
func (t *Tag) Get(path string) *Tag {
	if t == nil {
		return nil
	}
	cur := t
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			continue
		}
		var next *Tag
		if cur.typ == TypeCompound {
			for i := range cur.list {
				if cur.list[i].name == seg {
					next = &cur.list[i]
					break
				}
			}
		}
		if next == nil {
			if i, err := strconv.Atoi(seg); err == nil {
				next = cur.ListItemAsTag(i)
			}
		}
		if next == nil && seg == cur.name {
			next = cur
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}
