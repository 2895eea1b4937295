package testutil

import (
	"debug/dwarf"

	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
)

// TypedefChain adds n typedefs t1 -> t2 -> ... -> tn -> base to m and
// returns them head first.
func TypedefChain(m *dwarfinfo.Memory, n int, base *dwarfinfo.MemEntry) []*dwarfinfo.MemEntry {
	chain := make([]*dwarfinfo.MemEntry, n)
	next := base
	for i := n - 1; i >= 0; i-- {
		chain[i] = m.Typedef(typedefName(i), next)
		next = chain[i]
	}
	return chain
}

// SignatureCycle adds n entries whose DW_AT_signature references form a
// single cycle e0 -> e1 -> ... -> e(n-1) -> e0, and returns them.
func SignatureCycle(m *dwarfinfo.Memory, n int) []*dwarfinfo.MemEntry {
	entries := make([]*dwarfinfo.MemEntry, n)
	for i := range entries {
		entries[i] = m.Add(dwarf.TagStructType)
	}
	for i, e := range entries {
		e.SetRef(dwarf.AttrSignature, entries[(i+1)%n])
	}
	return entries
}

// ForwardDeclaration adds a struct declaration (DW_AT_declaration) named name.
func ForwardDeclaration(m *dwarfinfo.Memory, name string) *dwarfinfo.MemEntry {
	return m.Add(dwarf.TagStructType).
		Set(dwarf.AttrName, name).
		Set(dwarf.AttrDeclaration, true)
}

func typedefName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	name := []byte{'t'}
	for {
		name = append(name, letters[i%len(letters)])
		i /= len(letters)
		if i == 0 {
			return string(name)
		}
	}
}

// SignatureChain adds n entries where each DW_AT_signature references the
// next and the last references end. It returns them head first.
func SignatureChain(m *dwarfinfo.Memory, n int, end *dwarfinfo.MemEntry) []*dwarfinfo.MemEntry {
	chain := make([]*dwarfinfo.MemEntry, n)
	next := end
	for i := n - 1; i >= 0; i-- {
		chain[i] = m.Add(dwarf.TagStructType).SetRef(dwarf.AttrSignature, next)
		next = chain[i]
	}
	return chain
}
