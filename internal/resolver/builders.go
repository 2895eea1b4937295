package resolver

import (
	"debug/dwarf"

	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
)

// buildPrimitive builds a fully resolved type for a DW_TAG_base_type entry.
// Unknown encodings still produce a type; the compiler type then displays as
// raw bytes.
func (r *Resolver) buildPrimitive(e dwarfinfo.Entry, attrs dwarfinfo.Attributes) *Type {
	ct := r.types.BuiltinForEncodingAndBitSize(attrs.Name, attrs.Encoding, attrs.ByteSize*8)

	r.logger.Debug().
		Stringer("id", e.ID()).
		Str("name", attrs.Name).
		Stringer("encoding", attrs.Encoding).
		Uint64("byte_size", attrs.ByteSize).
		Stringer("kind", ct.Kind()).
		Msg("Built base type")

	return &Type{
		ID:           e.ID(),
		Name:         attrs.Name,
		ByteSize:     attrs.ByteSize,
		HasByteSize:  attrs.HasByteSize,
		EncodingID:   refID(attrs.Type),
		EncodingKind: EncodingIsUID,
		Encoding:     attrs.Encoding,
		Decl:         attrs.Decl,
		CompilerType: ct,
		State:        StateFull,
		owner:        r,
	}
}

// buildDerived builds the type for a typedef. A typedef of a forward
// declaration is first looked up by name in the definition index; when that
// succeeds the definition is returned and built is false. Otherwise the typedef
// is returned unresolved, referencing its underlying entry.
func (r *Resolver) buildDerived(e dwarfinfo.Entry, attrs dwarfinfo.Attributes) (t *Type, built bool) {
	tag := e.Tag()

	if tag == dwarf.TagTypedef && attrs.Type != nil && dwarfinfo.IsDeclaration(attrs.Type) {
		if def := r.lookupDefinition(attrs.Name); def != nil {
			r.logger.Debug().
				Stringer("id", e.ID()).
				Str("name", attrs.Name).
				Stringer("definition", def.ID).
				Msg("Substituted definition for typedef of forward declaration")
			return def, false
		}
		r.logger.Debug().
			Stringer("id", e.ID()).
			Str("name", attrs.Name).
			Msg("No definition found for forward declaration, keeping typedef")
	}

	return &Type{
		ID:           e.ID(),
		Name:         attrs.Name,
		ByteSize:     attrs.ByteSize,
		HasByteSize:  attrs.HasByteSize,
		EncodingID:   refID(attrs.Type),
		EncodingKind: EncodingKindForTag(tag),
		Decl:         attrs.Decl,
		State:        StateUnresolved,
		owner:        r,
	}, true
}

func (r *Resolver) lookupDefinition(name string) *Type {
	if r.index == nil || name == "" {
		return nil
	}
	return r.index.LookupDefinition(name)
}

// EncodingKindForTag returns how a derived entry with the given tag relates
// to the entry it references.
func EncodingKindForTag(tag dwarf.Tag) EncodingKind {
	switch tag {
	case dwarf.TagTypedef:
		return EncodingIsTypedefUID
	case dwarf.TagPointerType:
		return EncodingIsPointerUID
	case dwarf.TagReferenceType:
		return EncodingIsLValueReferenceUID
	case dwarf.TagRvalueReferenceType:
		return EncodingIsRValueReferenceUID
	case dwarf.TagConstType:
		return EncodingIsConstUID
	case dwarf.TagRestrictType:
		return EncodingIsRestrictUID
	case dwarf.TagVolatileType:
		return EncodingIsVolatileUID
	case dwarf.TagAtomicType:
		return EncodingIsAtomicUID
	}
	return EncodingIsUID
}

func refID(e dwarfinfo.Entry) dwarfinfo.ID {
	if e == nil {
		return dwarfinfo.NoID
	}
	return e.ID()
}
