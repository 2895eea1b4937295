package dwarfinfo

import "debug/dwarf"

// Declaration is the source location an entry was declared at.
type Declaration struct {
	File   string
	Line   int64
	Column int64
}

// IsZero reports whether no location information was recorded.
func (d Declaration) IsZero() bool {
	return d.File == "" && d.Line == 0 && d.Column == 0
}

// Attributes are the values the resolver reads from an entry.
type Attributes struct {
	Name          string
	ByteSize      uint64
	HasByteSize   bool
	Encoding      Encoding
	IsDeclaration bool
	Decl          Declaration

	// Type is the DW_AT_type referent, if any.
	Type Entry
	// Signature is the DW_AT_signature referent, if any. It points from a
	// skeleton entry to the full definition in a type unit.
	Signature Entry
}

// ParseAttributes reads the resolution attributes of e. A nil entry yields
// the zero Attributes.
func ParseAttributes(e Entry) Attributes {
	var a Attributes
	if e == nil {
		return a
	}

	a.Name, _ = e.Val(dwarf.AttrName).(string)
	if size, ok := asUint(e.Val(dwarf.AttrByteSize)); ok {
		a.ByteSize, a.HasByteSize = size, true
	}
	if enc, ok := asUint(e.Val(dwarf.AttrEncoding)); ok {
		a.Encoding = Encoding(enc)
	}
	a.IsDeclaration = IsDeclaration(e)

	switch file := e.Val(dwarf.AttrDeclFile).(type) {
	case string:
		a.Decl.File = file
	case *dwarf.LineFile:
		if file != nil {
			a.Decl.File = file.Name
		}
	}
	if line, ok := asUint(e.Val(dwarf.AttrDeclLine)); ok {
		a.Decl.Line = int64(line)
	}
	if col, ok := asUint(e.Val(dwarf.AttrDeclColumn)); ok {
		a.Decl.Column = int64(col)
	}

	a.Type = e.Ref(dwarf.AttrType)
	a.Signature = e.Ref(dwarf.AttrSignature)
	return a
}

// IsDeclaration reports whether e carries DW_AT_declaration, marking it as a
// forward declaration without a definition.
func IsDeclaration(e Entry) bool {
	if e == nil {
		return false
	}
	switch v := e.Val(dwarf.AttrDeclaration).(type) {
	case bool:
		return v
	case int64:
		return v == 1
	case uint64:
		return v == 1
	}
	return false
}

func asUint(v any) (uint64, bool) {
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint64:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	}
	return 0, false
}
