package resolver

import "github.com/coral-mesh/dtypes/internal/typesystem"

// Encoded resolves the entry t is encoded as, through the cache of the
// resolver that built t. Types without an owner resolve through r.
func (r *Resolver) Encoded(t *Type) *Type {
	if !t.HasEncodingID() {
		return nil
	}
	if t.owner != nil && t.owner != r {
		return t.owner.ResolveID(t.EncodingID)
	}
	return r.ResolveID(t.EncodingID)
}

// Underlying follows t's typedef chain to the first fully resolved type. It
// returns t itself when t is already full, and nil when the chain is broken,
// cyclic or longer than the resolver's depth bound.
func (r *Resolver) Underlying(t *Type) *Type {
	for i := 0; t != nil && i < r.maxDepth; i++ {
		if t.State == StateFull {
			return t
		}
		if t.EncodingKind != EncodingIsTypedefUID {
			return nil
		}
		t = r.Encoded(t)
	}
	return nil
}

// ByteSize returns t's own byte size, or that of its underlying type.
func (r *Resolver) ByteSize(t *Type) (uint64, bool) {
	if t == nil {
		return 0, false
	}
	if t.HasByteSize {
		return t.ByteSize, true
	}
	if u := r.Underlying(t); u != nil && u.HasByteSize {
		return u.ByteSize, true
	}
	return 0, false
}

// CompilerType returns the compiler type of t's underlying type.
func (r *Resolver) CompilerType(t *Type) typesystem.CompilerType {
	if u := r.Underlying(t); u != nil {
		return u.CompilerType
	}
	return typesystem.CompilerType{}
}

// Chain returns the names along t's typedef chain, starting with t.
func (r *Resolver) Chain(t *Type) []string {
	var names []string
	seen := make(map[*Type]bool)
	for t != nil && !seen[t] && len(names) < r.maxDepth {
		seen[t] = true
		names = append(names, t.Name)
		if t.State == StateFull || t.EncodingKind != EncodingIsTypedefUID {
			break
		}
		t = r.Encoded(t)
	}
	return names
}
