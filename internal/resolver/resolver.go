package resolver

import (
	"debug/dwarf"

	"github.com/rs/zerolog"

	"github.com/coral-mesh/dtypes/internal/constants"
	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/typesystem"
)

// DefinitionIndex finds full definitions of types by name, typically in
// other modules of the debugged program.
type DefinitionIndex interface {
	// LookupDefinition returns the definition of the named type, or nil.
	LookupDefinition(name string) *Type
}

// Config tunes a Resolver.
type Config struct {
	// MaxDepth bounds the nesting of resolution calls. Zero or negative
	// selects constants.DefaultMaxDepth.
	MaxDepth int
	// Index is consulted for typedefs of forward declarations. May be nil.
	Index DefinitionIndex
}

type slotState uint8

const (
	slotInProgress slotState = iota + 1
	slotResolved
)

// slot is one cache cell. A missing map key is the absent state; a resolved
// slot may hold a nil type, meaning the entry resolves to no type.
type slot struct {
	state slotState
	typ   *Type
}

// Resolver resolves entries of one container.
type Resolver struct {
	container dwarfinfo.Container
	types     *typesystem.TypeSystem
	index     DefinitionIndex
	maxDepth  int
	logger    zerolog.Logger

	slots map[dwarfinfo.ID]slot
	built []*Type
	depth int
}

// New creates a resolver for container c whose base types are built in ts.
func New(c dwarfinfo.Container, ts *typesystem.TypeSystem, cfg Config, logger zerolog.Logger) *Resolver {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = constants.DefaultMaxDepth
	}
	return &Resolver{
		container: c,
		types:     ts,
		index:     cfg.Index,
		maxDepth:  maxDepth,
		logger:    logger.With().Str("component", "resolver").Logger(),
		slots:     make(map[dwarfinfo.ID]slot),
	}
}

// Container returns the container the resolver is bound to.
func (r *Resolver) Container() dwarfinfo.Container { return r.container }

// TypeSystem returns the type system base types are built in.
func (r *Resolver) TypeSystem() *typesystem.TypeSystem { return r.types }

// Resolve returns the type for e, or nil when e is nil, unsupported, part of
// a reference cycle or could not be resolved. It never fails otherwise.
func (r *Resolver) Resolve(e dwarfinfo.Entry) *Type {
	t, _ := r.ResolveNew(e)
	return t
}

// ResolveNew is Resolve that also reports whether this call built the type.
// Cache hits, cycles and absent entries report false.
func (r *Resolver) ResolveNew(e dwarfinfo.Entry) (*Type, bool) {
	t, isNew, _ := r.resolve(e)
	return t, isNew
}

// ResolveID resolves the entry with the given identity.
func (r *Resolver) ResolveID(id dwarfinfo.ID) *Type {
	return r.Resolve(r.container.Entry(id))
}

// Types returns every type this resolver built, in creation order. Aliased
// signature slots and types substituted from the definition index are not
// repeated.
func (r *Resolver) Types() []*Type {
	out := make([]*Type, len(r.built))
	copy(out, r.built)
	return out
}

// Cached reports the cache state of id: whether a slot exists and, if so,
// the type it holds. In-progress slots are never visible between calls.
func (r *Resolver) Cached(id dwarfinfo.ID) (*Type, bool) {
	s, ok := r.slots[id]
	if !ok || s.state != slotResolved {
		return nil, false
	}
	return s.typ, true
}

// resolve returns the type for e, whether it was built by this call, and
// whether the depth bound cut the resolution short. Truncated results are
// not cached so a later request starting closer to the entry can succeed.
func (r *Resolver) resolve(e dwarfinfo.Entry) (*Type, bool, bool) {
	if e == nil {
		return nil, false, false
	}

	// A nil pointer wrapped in the interface reports NoID.
	id := e.ID()
	if id == dwarfinfo.NoID {
		return nil, false, false
	}
	if s, ok := r.slots[id]; ok {
		switch s.state {
		case slotInProgress:
			r.logger.Trace().Stringer("id", id).Msg("Entry re-entered while resolving, breaking cycle")
			return nil, false, false
		case slotResolved:
			return s.typ, false, false
		}
	}

	if r.depth >= r.maxDepth {
		r.logger.Warn().
			Stringer("id", id).
			Int("max_depth", r.maxDepth).
			Msg("Type reference chain exceeds maximum depth")
		return nil, false, true
	}

	r.depth++
	defer func() { r.depth-- }()

	r.slots[id] = slot{state: slotInProgress}

	attrs := dwarfinfo.ParseAttributes(e)

	if attrs.Signature != nil {
		t, isNew, truncated := r.resolve(attrs.Signature)
		if truncated {
			delete(r.slots, id)
			return nil, false, true
		}
		r.slots[id] = slot{state: slotResolved, typ: t}
		return t, isNew, false
	}

	var (
		t     *Type
		built bool
	)
	switch tag := e.Tag(); tag {
	case dwarf.TagBaseType:
		t, built = r.buildPrimitive(e, attrs), true
	case dwarf.TagTypedef:
		t, built = r.buildDerived(e, attrs)
	case dwarf.TagPointerType, dwarf.TagReferenceType, dwarf.TagRvalueReferenceType,
		dwarf.TagConstType, dwarf.TagRestrictType, dwarf.TagVolatileType,
		dwarf.TagAtomicType, dwarf.TagUnspecifiedType:
		r.logger.Debug().Stringer("id", id).Stringer("tag", tag).Msg("Qualified types are not resolved")
	default:
		r.logger.Debug().Stringer("id", id).Stringer("tag", tag).Msg("Unsupported tag")
	}

	r.slots[id] = slot{state: slotResolved, typ: t}
	if t != nil && built {
		r.built = append(r.built, t)
	}
	return t, t != nil, false
}
