// Package resolver turns debug-info entries into resolved D types.
//
// A Resolver is bound to one container and owns that container's type cache:
// each entry identity is resolved at most once and every later request for it
// returns the same *Type. Resolution follows DW_AT_signature indirections
// recursively; an entry that is reached again while it is still being resolved
// yields no type for the re-entrant request instead of recursing forever, and
// the total recursion depth is bounded by Config.MaxDepth.
//
// Base types are built into fully resolved types carrying a compiler type from
// the typesystem package. Typedefs are built as unresolved types that only
// reference their underlying entry; Underlying and ByteSize chase that
// reference lazily. Pointer and qualifier tags resolve to no type.
//
// A Resolver is not safe for concurrent use. Callers serialize access the way
// they serialize access to the container.
package resolver
