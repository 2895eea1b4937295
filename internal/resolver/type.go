package resolver

import (
	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/typesystem"
)

// State is how far a Type has been resolved.
type State int

const (
	// StateUnresolved types carry a name and a reference; size and format
	// come from the referenced type.
	StateUnresolved State = iota
	// StateFull types are complete.
	StateFull
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateFull:
		return "full"
	}
	return "unknown"
}

// EncodingKind says how Type.EncodingID relates to the type.
type EncodingKind int

const (
	EncodingIsUID EncodingKind = iota
	EncodingIsTypedefUID
	EncodingIsPointerUID
	EncodingIsLValueReferenceUID
	EncodingIsRValueReferenceUID
	EncodingIsConstUID
	EncodingIsRestrictUID
	EncodingIsVolatileUID
	EncodingIsAtomicUID
)

var encodingKindNames = [...]string{
	EncodingIsUID:                "uid",
	EncodingIsTypedefUID:         "typedef",
	EncodingIsPointerUID:         "pointer",
	EncodingIsLValueReferenceUID: "lvalue-reference",
	EncodingIsRValueReferenceUID: "rvalue-reference",
	EncodingIsConstUID:           "const",
	EncodingIsRestrictUID:        "restrict",
	EncodingIsVolatileUID:        "volatile",
	EncodingIsAtomicUID:          "atomic",
}

func (k EncodingKind) String() string {
	if k >= 0 && int(k) < len(encodingKindNames) {
		return encodingKindNames[k]
	}
	return "uid"
}

// Type is a resolved debug-info type.
type Type struct {
	// ID mirrors the identity of the entry the type was built from.
	ID   dwarfinfo.ID
	Name string

	ByteSize    uint64
	HasByteSize bool

	// EncodingID references the entry this type is encoded as (the
	// underlying type of a typedef, the DW_AT_type of a base type), or
	// dwarfinfo.NoID.
	EncodingID   dwarfinfo.ID
	EncodingKind EncodingKind
	// Encoding is the DW_ATE code of a base type.
	Encoding dwarfinfo.Encoding

	Decl         dwarfinfo.Declaration
	CompilerType typesystem.CompilerType
	State        State

	// owner is the resolver that built the type. EncodingID is only
	// meaningful in the owner's container, which differs from the caller's
	// when the type was substituted from another module.
	owner *Resolver
}

// HasEncodingID reports whether the type references another entry.
func (t *Type) HasEncodingID() bool { return t != nil && t.EncodingID != dwarfinfo.NoID }
