// Package dwarfinfo adapts debug-information containers to the small surface
// the type resolver needs: entry identity, tag, attribute values and one-hop
// references between entries.
//
// Two containers are provided. Data wraps a *dwarf.Data read from an ELF,
// Mach-O or PE binary. Memory is an in-memory graph used for synthetic inputs
// and tests; it counts attribute reads so callers can observe how often an
// entry was inspected.
package dwarfinfo
