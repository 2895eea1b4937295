// Package typesystem is the host-side representation of D types. The resolver
// hands it a declared name, a DWARF encoding and a bit width and receives an
// opaque CompilerType; formatters and expression evaluators query that handle
// for format, encoding and size through the typekind catalog.
package typesystem

import (
	"encoding/binary"
	"sync"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/target"
	"github.com/coral-mesh/dtypes/internal/typekind"
)

// TypeSystem interns builtin compiler types for one target.
type TypeSystem struct {
	target target.Target
	logger zerolog.Logger

	mu       sync.Mutex
	interned map[uint64][]*builtin
}

type builtin struct {
	name     string
	kind     typekind.Kind
	encoding dwarfinfo.Encoding
	bits     uint64
}

// New creates a type system for target t.
func New(t target.Target, logger zerolog.Logger) *TypeSystem {
	return &TypeSystem{
		target:   t,
		logger:   logger.With().Str("component", "typesystem").Str("target", t.String()).Logger(),
		interned: make(map[uint64][]*builtin),
	}
}

// Target returns the target the type system answers size queries for.
func (ts *TypeSystem) Target() target.Target { return ts.target }

// BuiltinForEncodingAndBitSize returns the compiler type for a base type
// entry. Encodings that match no catalog kind still yield a valid handle that
// keeps the declared name and width and displays as raw bytes.
func (ts *TypeSystem) BuiltinForEncodingAndBitSize(name string, enc dwarfinfo.Encoding, bits uint64) CompilerType {
	key := internKey(name, enc, bits)

	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, b := range ts.interned[key] {
		if b.name == name && b.encoding == enc && b.bits == bits {
			return CompilerType{ts: ts, b: b}
		}
	}

	b := &builtin{
		name:     name,
		kind:     KindForEncoding(name, enc, bits),
		encoding: enc,
		bits:     bits,
	}
	ts.interned[key] = append(ts.interned[key], b)

	if b.kind == typekind.Invalid {
		ts.logger.Debug().
			Str("name", name).
			Stringer("encoding", enc).
			Uint64("bits", bits).
			Msg("No builtin kind for base type, using raw bytes")
	}
	return CompilerType{ts: ts, b: b}
}

// Len returns the number of interned builtin types.
func (ts *TypeSystem) Len() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	n := 0
	for _, bucket := range ts.interned {
		n += len(bucket)
	}
	return n
}

func internKey(name string, enc dwarfinfo.Encoding, bits uint64) uint64 {
	buf := make([]byte, 0, len(name)+1+binary.MaxVarintLen64)
	buf = append(buf, name...)
	buf = append(buf, byte(enc))
	buf = binary.AppendUvarint(buf, bits)
	return xxh3.Hash(buf)
}
