package typesystem

import (
	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/typekind"
)

// CompilerType is an opaque handle to a type owned by a TypeSystem. The zero
// value is invalid.
type CompilerType struct {
	ts *TypeSystem
	b  *builtin
}

// IsValid reports whether the handle refers to a type.
func (c CompilerType) IsValid() bool { return c.ts != nil && c.b != nil }

// TypeSystem returns the owner of the handle.
func (c CompilerType) TypeSystem() *TypeSystem { return c.ts }

// Name returns the declared name.
func (c CompilerType) Name() string {
	if !c.IsValid() {
		return ""
	}
	return c.b.name
}

// Kind returns the catalog kind, or typekind.Invalid.
func (c CompilerType) Kind() typekind.Kind {
	if !c.IsValid() {
		return typekind.Invalid
	}
	return c.b.kind
}

// DWARFEncoding returns the DW_ATE code the type was built from.
func (c CompilerType) DWARFEncoding() dwarfinfo.Encoding {
	if !c.IsValid() {
		return dwarfinfo.EncNone
	}
	return c.b.encoding
}

// Format returns the display format.
func (c CompilerType) Format() typekind.Format { return c.Kind().Format() }

// Encoding returns the scalar encoding class and element count.
func (c CompilerType) Encoding() (typekind.Encoding, uint64) { return c.Kind().Encoding() }

// BasicType returns the language-neutral basic type.
func (c CompilerType) BasicType() typekind.BasicType { return c.Kind().BasicType() }

// BitSize returns the width of the type. The declared width wins for
// fixed-width and unknown kinds; real, ireal, creal and pointer-sized kinds
// take their width from the owning type system's target.
func (c CompilerType) BitSize() (uint64, bool) {
	if !c.IsValid() {
		return 0, false
	}
	if _, fixed := c.b.kind.FixedBitSize(); (fixed || c.b.kind == typekind.Invalid) && c.b.bits > 0 {
		return c.b.bits, true
	}
	if bits, ok := c.b.kind.BitSize(c.ts.target); ok {
		return bits, true
	}
	if c.b.bits > 0 {
		return c.b.bits, true
	}
	return 0, false
}

// DisplayName returns the canonical D name of the kind, falling back to the
// declared name for kinds outside the catalog.
func (c CompilerType) DisplayName() string {
	if !c.IsValid() {
		return ""
	}
	if c.b.kind != typekind.Invalid {
		return c.b.kind.CanonicalName()
	}
	return c.b.name
}
