package typekind

import "fmt"

// Kind identifies a primitive D type. Builtin scalar kinds carry the Builtin
// bit; compound kinds (pointer, slice) and void do not.
type Kind uint8

const (
	Invalid Kind = iota
	Void
	Pointer
	Slice
)

// Builtin is the tag bit shared by every builtin scalar kind.
const Builtin Kind = 1 << 7

const (
	Bool Kind = Builtin + iota
	Byte
	UByte
	Short
	UShort
	Int
	UInt
	Long
	ULong
	Cent
	UCent
	Char
	WChar
	DChar
	Float
	Double
	Real // width depends on the target, see RealBitSize
	Real64
	Real80
	Real128
	IFloat
	IDouble
	IReal
	CFloat
	CDouble
	CReal // width is twice RealBitSize
	CReal64
	CReal80
	CReal128

	kindMax
)

// IsBuiltin reports whether k carries the builtin tag bit.
func (k Kind) IsBuiltin() bool { return k&Builtin != 0 }

// IsValid reports whether k is one of the catalog's kinds.
func (k Kind) IsValid() bool {
	_, ok := descriptors[k]
	return ok && k != Invalid
}

// String returns the kind's internal name. Width variants keep their suffix
// (real80, creal128); use CanonicalName for the display name.
func (k Kind) String() string {
	if d, ok := descriptors[k]; ok {
		return d.name
	}
	return fmt.Sprintf("kind(%#x)", uint8(k))
}

// Kinds returns every kind in the catalog except Invalid, in tag order.
func Kinds() []Kind {
	kinds := []Kind{Void, Pointer, Slice}
	return append(kinds, BuiltinKinds()...)
}

// BuiltinKinds returns the builtin scalar kinds in tag order.
func BuiltinKinds() []Kind {
	kinds := make([]Kind, 0, int(kindMax-Builtin))
	for k := Bool; k < kindMax; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Lookup finds the kind with the given internal or canonical name. For names
// shared by several width variants (real, creal) the target-dependent variant
// is returned.
func Lookup(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(descriptors))
	for k, d := range descriptors {
		if k == Invalid {
			continue
		}
		m[d.name] = k
	}
	return m
}()
