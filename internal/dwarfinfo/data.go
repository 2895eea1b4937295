package dwarfinfo

import (
	"debug/dwarf"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Data is a Container backed by parsed DWARF sections.
type Data struct {
	dwarf  *dwarf.Data
	logger zerolog.Logger

	mu         sync.Mutex
	entries    map[dwarf.Offset]*dataEntry
	units      []unitFiles // sorted by offset, built on first decl_file lookup
	names      map[string][]dwarf.Offset
	signatures map[uint64]dwarf.Offset
}

type unitFiles struct {
	offset dwarf.Offset
	files  []*dwarf.LineFile
}

// NewData wraps d.
func NewData(d *dwarf.Data, logger zerolog.Logger) *Data {
	return &Data{
		dwarf:      d,
		logger:     logger.With().Str("component", "dwarf-container").Logger(),
		entries:    make(map[dwarf.Offset]*dataEntry),
		signatures: make(map[uint64]dwarf.Offset),
	}
}

// DWARF returns the wrapped section data.
func (d *Data) DWARF() *dwarf.Data { return d.dwarf }

// RegisterSignature maps a type-unit signature to the offset of the entry
// defining it. debug/dwarf does not expose type units, so DW_FORM_ref_sig8
// references only resolve for signatures registered here.
func (d *Data) RegisterSignature(sig uint64, off dwarf.Offset) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.signatures[sig] = off
}

// Entry implements Container.
func (d *Data) Entry(id ID) Entry {
	if id == NoID {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.load(dwarf.Offset(id))
	if e == nil {
		// Returning a typed nil pointer would make the interface non-nil.
		return nil
	}
	return e
}

// load must be called with d.mu held.
func (d *Data) load(off dwarf.Offset) *dataEntry {
	if e, ok := d.entries[off]; ok {
		return e
	}

	r := d.dwarf.Reader()
	r.Seek(off)
	raw, err := r.Next()
	if err != nil || raw == nil || raw.Offset != off {
		d.logger.Debug().Err(err).Uint64("offset", uint64(off)).Msg("No entry at offset")
		return nil
	}

	e := &dataEntry{data: d, raw: raw}
	d.entries[off] = e
	return e
}

// LookupType implements Container. The name index is built on first use by
// scanning every unit once.
func (d *Data) LookupType(name string) []Entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.names == nil {
		d.buildNameIndex()
	}

	offsets := d.names[name]
	out := make([]Entry, 0, len(offsets))
	for _, off := range offsets {
		if e := d.load(off); e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (d *Data) buildNameIndex() {
	d.names = make(map[string][]dwarf.Offset)
	r := d.dwarf.Reader()
	count := 0
	for {
		e, err := r.Next()
		if err != nil {
			d.logger.Warn().Err(err).Msg("Stopped indexing type names on malformed entry")
			break
		}
		if e == nil {
			break
		}
		if !IsTypeTag(e.Tag) {
			continue
		}
		if name, ok := e.Val(dwarf.AttrName).(string); ok && name != "" {
			d.names[name] = append(d.names[name], e.Offset)
			count++
		}
	}
	d.logger.Debug().Int("types", count).Int("names", len(d.names)).Msg("Indexed type names")
}

// Walk calls fn for every entry in .debug_info order until fn returns false.
func (d *Data) Walk(fn func(Entry) bool) error {
	r := d.dwarf.Reader()
	for {
		raw, err := r.Next()
		if err != nil {
			return err
		}
		if raw == nil {
			return nil
		}
		if raw.Tag == 0 {
			continue
		}

		d.mu.Lock()
		e, ok := d.entries[raw.Offset]
		if !ok {
			e = &dataEntry{data: d, raw: raw}
			d.entries[raw.Offset] = e
		}
		d.mu.Unlock()

		if !fn(e) {
			return nil
		}
	}
}

// fileName resolves a DW_AT_decl_file index using the line table of the unit
// containing off.
func (d *Data) fileName(off dwarf.Offset, index int64) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.units == nil {
		d.buildUnits()
	}
	i := sort.Search(len(d.units), func(i int) bool { return d.units[i].offset > off }) - 1
	if i < 0 {
		return ""
	}
	files := d.units[i].files
	if index < 0 || int(index) >= len(files) || files[index] == nil {
		return ""
	}
	return files[index].Name
}

func (d *Data) buildUnits() {
	d.units = []unitFiles{}
	r := d.dwarf.Reader()
	for {
		cu, err := r.Next()
		if err != nil || cu == nil {
			break
		}
		u := unitFiles{offset: cu.Offset}
		if lr, err := d.dwarf.LineReader(cu); err == nil && lr != nil {
			u.files = lr.Files()
		}
		d.units = append(d.units, u)
		r.SkipChildren()
	}
}

type dataEntry struct {
	data *Data
	raw  *dwarf.Entry
}

func (e *dataEntry) ID() ID {
	if e == nil || e.raw == nil {
		return NoID
	}
	return ID(e.raw.Offset)
}

func (e *dataEntry) Tag() dwarf.Tag { return e.raw.Tag }

func (e *dataEntry) Val(attr dwarf.Attr) any {
	v := e.raw.Val(attr)
	if attr == dwarf.AttrDeclFile {
		if idx, ok := v.(int64); ok {
			if name := e.data.fileName(e.raw.Offset, idx); name != "" {
				return name
			}
		}
	}
	return v
}

func (e *dataEntry) Ref(attr dwarf.Attr) Entry {
	field := e.raw.AttrField(attr)
	if field == nil {
		return nil
	}

	var target *dataEntry
	switch field.Class {
	case dwarf.ClassReference:
		off, ok := field.Val.(dwarf.Offset)
		if !ok {
			return nil
		}
		e.data.mu.Lock()
		target = e.data.load(off)
		e.data.mu.Unlock()
	case dwarf.ClassReferenceSig:
		sig, ok := field.Val.(uint64)
		if !ok {
			return nil
		}
		e.data.mu.Lock()
		if off, found := e.data.signatures[sig]; found {
			target = e.data.load(off)
		}
		e.data.mu.Unlock()
	}

	if target == nil {
		return nil
	}
	return target
}
