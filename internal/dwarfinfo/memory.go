package dwarfinfo

import (
	"debug/dwarf"
	"sync/atomic"
)

// Memory is an in-memory Container. Entries are added with Add and wired
// together with SetRef; identities are assigned sequentially from 1.
type Memory struct {
	entries []*MemEntry
	byName  map[string][]*MemEntry
}

// NewMemory returns an empty container.
func NewMemory() *Memory {
	return &Memory{byName: make(map[string][]*MemEntry)}
}

// Add creates an entry with the given tag.
func (m *Memory) Add(tag dwarf.Tag) *MemEntry {
	e := &MemEntry{
		mem:   m,
		id:    ID(len(m.entries) + 1),
		tag:   tag,
		attrs: make(map[dwarf.Attr]any),
		refs:  make(map[dwarf.Attr]ID),
	}
	m.entries = append(m.entries, e)
	return e
}

// Base adds a DW_TAG_base_type entry.
func (m *Memory) Base(name string, enc Encoding, byteSize int64) *MemEntry {
	return m.Add(dwarf.TagBaseType).
		Set(dwarf.AttrName, name).
		Set(dwarf.AttrEncoding, int64(enc)).
		Set(dwarf.AttrByteSize, byteSize)
}

// Typedef adds a DW_TAG_typedef entry naming underlying. underlying may be nil.
func (m *Memory) Typedef(name string, underlying *MemEntry) *MemEntry {
	e := m.Add(dwarf.TagTypedef).Set(dwarf.AttrName, name)
	if underlying != nil {
		e.SetRef(dwarf.AttrType, underlying)
	}
	return e
}

// Entry implements Container.
func (m *Memory) Entry(id ID) Entry {
	if id == NoID || id == 0 || int(id) > len(m.entries) {
		return nil
	}
	return m.entries[id-1]
}

// LookupType implements Container.
func (m *Memory) LookupType(name string) []Entry {
	var out []Entry
	for _, e := range m.byName[name] {
		if IsTypeTag(e.tag) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries.
func (m *Memory) Len() int { return len(m.entries) }

// MemEntry is an entry of a Memory container.
type MemEntry struct {
	mem   *Memory
	id    ID
	tag   dwarf.Tag
	attrs map[dwarf.Attr]any
	refs  map[dwarf.Attr]ID
	reads atomic.Int64
}

// Set stores an attribute value. Integer attributes should be int64, flags bool.
func (e *MemEntry) Set(attr dwarf.Attr, val any) *MemEntry {
	e.attrs[attr] = val
	if attr == dwarf.AttrName {
		if name, ok := val.(string); ok {
			e.mem.byName[name] = append(e.mem.byName[name], e)
		}
	}
	return e
}

// SetRef points a reference attribute at target.
func (e *MemEntry) SetRef(attr dwarf.Attr, target *MemEntry) *MemEntry {
	e.refs[attr] = target.id
	return e
}

// Reads returns how many attribute reads the entry has served.
func (e *MemEntry) Reads() int64 { return e.reads.Load() }

// ID returns NoID for a nil entry.
func (e *MemEntry) ID() ID {
	if e == nil {
		return NoID
	}
	return e.id
}

func (e *MemEntry) Tag() dwarf.Tag { return e.tag }

func (e *MemEntry) Val(attr dwarf.Attr) any {
	e.reads.Add(1)
	if id, ok := e.refs[attr]; ok {
		return dwarf.Offset(id)
	}
	return e.attrs[attr]
}

func (e *MemEntry) Ref(attr dwarf.Attr) Entry {
	e.reads.Add(1)
	id, ok := e.refs[attr]
	if !ok {
		return nil
	}
	return e.mem.Entry(id)
}
