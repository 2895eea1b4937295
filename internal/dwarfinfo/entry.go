package dwarfinfo

import (
	"debug/dwarf"
	"fmt"
)

// ID is the stable identity of an entry within its container. For
// binary-backed containers it is the entry's offset in .debug_info.
type ID uint64

// NoID marks the absence of a reference.
const NoID = ^ID(0)

func (id ID) String() string {
	if id == NoID {
		return "none"
	}
	return fmt.Sprintf("%#x", uint64(id))
}

// Entry is one debug-info entry.
type Entry interface {
	// ID returns the entry's identity. Implementations return NoID from a
	// nil receiver.
	ID() ID
	// Tag returns the entry's category code.
	Tag() dwarf.Tag
	// Val returns the value of attr or nil if the entry does not carry it.
	Val(attr dwarf.Attr) any
	// Ref follows a reference-class attribute to the entry it names. It
	// returns nil when the attribute is absent or its target is unknown.
	Ref(attr dwarf.Attr) Entry
}

// Container owns a set of entries.
type Container interface {
	// Entry returns the entry with the given identity, or nil.
	Entry(id ID) Entry
	// LookupType returns the type entries named name, in container order.
	LookupType(name string) []Entry
}

// Encoding is a DW_ATE_* base type encoding code. debug/dwarf does not export
// these constants.
type Encoding uint8

const (
	EncNone           Encoding = 0x00
	EncAddress        Encoding = 0x01
	EncBoolean        Encoding = 0x02
	EncComplexFloat   Encoding = 0x03
	EncFloat          Encoding = 0x04
	EncSigned         Encoding = 0x05
	EncSignedChar     Encoding = 0x06
	EncUnsigned       Encoding = 0x07
	EncUnsignedChar   Encoding = 0x08
	EncImaginaryFloat Encoding = 0x09
	EncPackedDecimal  Encoding = 0x0a
	EncNumericString  Encoding = 0x0b
	EncEdited         Encoding = 0x0c
	EncSignedFixed    Encoding = 0x0d
	EncUnsignedFixed  Encoding = 0x0e
	EncDecimalFloat   Encoding = 0x0f
	EncUTF            Encoding = 0x10
	EncUCS            Encoding = 0x11
	EncASCII          Encoding = 0x12
)

var encodingNames = map[Encoding]string{
	EncNone:           "none",
	EncAddress:        "address",
	EncBoolean:        "boolean",
	EncComplexFloat:   "complex_float",
	EncFloat:          "float",
	EncSigned:         "signed",
	EncSignedChar:     "signed_char",
	EncUnsigned:       "unsigned",
	EncUnsignedChar:   "unsigned_char",
	EncImaginaryFloat: "imaginary_float",
	EncPackedDecimal:  "packed_decimal",
	EncNumericString:  "numeric_string",
	EncEdited:         "edited",
	EncSignedFixed:    "signed_fixed",
	EncUnsignedFixed:  "unsigned_fixed",
	EncDecimalFloat:   "decimal_float",
	EncUTF:            "UTF",
	EncUCS:            "UCS",
	EncASCII:          "ASCII",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return "DW_ATE_" + name
	}
	return fmt.Sprintf("DW_ATE_%#x", uint8(e))
}

// IsTypeTag reports whether tag names a type entry that LookupType indexes.
func IsTypeTag(tag dwarf.Tag) bool {
	switch tag {
	case dwarf.TagBaseType, dwarf.TagTypedef, dwarf.TagStructType, dwarf.TagClassType,
		dwarf.TagUnionType, dwarf.TagEnumerationType, dwarf.TagUnspecifiedType:
		return true
	}
	return false
}
