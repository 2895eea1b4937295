package catalog

import (
	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/resolver"
	"github.com/coral-mesh/dtypes/internal/safe"
)

// NewRecord flattens a resolved type into a catalog row. Typedef sizes and
// formats are taken from the underlying type. Absent values are stored as -1
// (sizes, offsets) or "" (names).
func NewRecord(r *resolver.Resolver, t *resolver.Type) Record {
	id, _ := safe.Uint64ToInt64(uint64(t.ID))
	rec := Record{
		ID:           id,
		Name:         t.Name,
		ByteSize:     -1,
		BitSize:      -1,
		State:        t.State.String(),
		EncodingID:   -1,
		EncodingKind: t.EncodingKind.String(),
		DeclFile:     t.Decl.File,
		DeclLine:     t.Decl.Line,
	}
	if t.EncodingID != dwarfinfo.NoID {
		rec.EncodingID, _ = safe.Uint64ToInt64(uint64(t.EncodingID))
	}
	if size, ok := r.ByteSize(t); ok {
		rec.ByteSize, _ = safe.Uint64ToInt64(size)
	}

	ct := r.CompilerType(t)
	if ct.IsValid() {
		if bits, ok := ct.BitSize(); ok {
			rec.BitSize, _ = safe.Uint64ToInt64(bits)
		}
		enc, _ := ct.Encoding()
		rec.Kind = ct.Kind().String()
		rec.Format = ct.Format().String()
		rec.Encoding = enc.String()
		rec.BasicType = ct.BasicType().String()
	}
	return rec
}
