package typekind

import "github.com/coral-mesh/dtypes/internal/target"

// Format is how a debugger displays values of a kind.
type Format int

const (
	FormatBytes Format = iota
	FormatBoolean
	FormatDecimal
	FormatUnsigned
	FormatFloat
	FormatUnicode8
	FormatUnicode16
	FormatUnicode32
	FormatVoid
)

var formatNames = [...]string{
	FormatBytes:     "bytes",
	FormatBoolean:   "boolean",
	FormatDecimal:   "decimal",
	FormatUnsigned:  "unsigned",
	FormatFloat:     "float",
	FormatUnicode8:  "unicode8",
	FormatUnicode16: "unicode16",
	FormatUnicode32: "unicode32",
	FormatVoid:      "void",
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "bytes"
}

// Encoding is the scalar encoding class of a kind.
type Encoding int

const (
	EncodingInvalid Encoding = iota
	EncodingUint
	EncodingSint
	EncodingIEEE754
)

var encodingNames = [...]string{
	EncodingInvalid: "invalid",
	EncodingUint:    "uint",
	EncodingSint:    "sint",
	EncodingIEEE754: "ieee754",
}

func (e Encoding) String() string {
	if e >= 0 && int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return "invalid"
}

// BasicType is the language-neutral basic type a builtin kind corresponds to.
type BasicType int

const (
	BasicOther BasicType = iota
	BasicBool
	BasicSignedChar
	BasicUnsignedChar
	BasicShort
	BasicUnsignedShort
	BasicInt
	BasicUnsignedInt
	BasicLong
	BasicUnsignedLong
	BasicInt128
	BasicUnsignedInt128
	BasicChar8
	BasicChar16
	BasicChar32
	BasicFloat
	BasicDouble
	BasicLongDouble
	BasicFloatComplex
	BasicDoubleComplex
	BasicLongDoubleComplex
)

var basicNames = [...]string{
	BasicOther:             "other",
	BasicBool:              "bool",
	BasicSignedChar:        "signed char",
	BasicUnsignedChar:      "unsigned char",
	BasicShort:             "short",
	BasicUnsignedShort:     "unsigned short",
	BasicInt:               "int",
	BasicUnsignedInt:       "unsigned int",
	BasicLong:              "long",
	BasicUnsignedLong:      "unsigned long",
	BasicInt128:            "__int128",
	BasicUnsignedInt128:    "unsigned __int128",
	BasicChar8:             "char8_t",
	BasicChar16:            "char16_t",
	BasicChar32:            "char32_t",
	BasicFloat:             "float",
	BasicDouble:            "double",
	BasicLongDouble:        "long double",
	BasicFloatComplex:      "float _Complex",
	BasicDoubleComplex:     "double _Complex",
	BasicLongDoubleComplex: "long double _Complex",
}

func (b BasicType) String() string {
	if b >= 0 && int(b) < len(basicNames) {
		return basicNames[b]
	}
	return "other"
}

type family int

const (
	famNone family = iota
	famBool
	famSigned
	famUnsigned
	famChar
	famFloat
	famImaginary
	famComplex
)

// descriptor is one row of the kind catalog. bits == 0 means the width is
// not fixed (target dependent or absent).
type descriptor struct {
	name      string
	canonical string
	family    family
	format    Format
	basic     BasicType
	bits      uint64
}

var descriptors = map[Kind]descriptor{
	Invalid: {name: "invalid", canonical: "invalid", format: FormatBytes},
	Void:    {name: "void", canonical: "void", format: FormatVoid},
	Pointer: {name: "pointer", canonical: "pointer", format: FormatBytes},
	Slice:   {name: "slice", canonical: "slice", format: FormatBytes},

	Bool:   {"bool", "bool", famBool, FormatBoolean, BasicBool, 8},
	Byte:   {"byte", "byte", famSigned, FormatDecimal, BasicSignedChar, 8},
	UByte:  {"ubyte", "ubyte", famUnsigned, FormatUnsigned, BasicUnsignedChar, 8},
	Short:  {"short", "short", famSigned, FormatDecimal, BasicShort, 16},
	UShort: {"ushort", "ushort", famUnsigned, FormatUnsigned, BasicUnsignedShort, 16},
	Int:    {"int", "int", famSigned, FormatDecimal, BasicInt, 32},
	UInt:   {"uint", "uint", famUnsigned, FormatUnsigned, BasicUnsignedInt, 32},
	Long:   {"long", "long", famSigned, FormatDecimal, BasicLong, 64},
	ULong:  {"ulong", "ulong", famUnsigned, FormatUnsigned, BasicUnsignedLong, 64},
	Cent:   {"cent", "cent", famSigned, FormatDecimal, BasicInt128, 128},
	UCent:  {"ucent", "ucent", famUnsigned, FormatUnsigned, BasicUnsignedInt128, 128},

	Char:  {"char", "char", famChar, FormatUnicode8, BasicChar8, 8},
	WChar: {"wchar", "wchar", famChar, FormatUnicode16, BasicChar16, 16},
	DChar: {"dchar", "dchar", famChar, FormatUnicode32, BasicChar32, 32},

	Float:   {"float", "float", famFloat, FormatFloat, BasicFloat, 32},
	Double:  {"double", "double", famFloat, FormatFloat, BasicDouble, 64},
	Real:    {"real", "real", famFloat, FormatFloat, BasicLongDouble, 0},
	Real64:  {"real64", "real", famFloat, FormatFloat, BasicLongDouble, 64},
	Real80:  {"real80", "real", famFloat, FormatFloat, BasicLongDouble, 80},
	Real128: {"real128", "real", famFloat, FormatFloat, BasicLongDouble, 128},

	IFloat:  {"ifloat", "ifloat", famImaginary, FormatBytes, BasicFloat, 32},
	IDouble: {"idouble", "idouble", famImaginary, FormatBytes, BasicDouble, 64},
	IReal:   {"ireal", "ireal", famImaginary, FormatBytes, BasicLongDouble, 0},

	CFloat:   {"cfloat", "cfloat", famComplex, FormatBytes, BasicFloatComplex, 64},
	CDouble:  {"cdouble", "cdouble", famComplex, FormatBytes, BasicDoubleComplex, 128},
	CReal:    {"creal", "creal", famComplex, FormatBytes, BasicLongDoubleComplex, 0},
	CReal64:  {"creal64", "creal", famComplex, FormatBytes, BasicLongDoubleComplex, 128},
	CReal80:  {"creal80", "creal", famComplex, FormatBytes, BasicLongDoubleComplex, 160},
	CReal128: {"creal128", "creal", famComplex, FormatBytes, BasicLongDoubleComplex, 256},
}

func describe(k Kind) descriptor {
	if d, ok := descriptors[k]; ok {
		return d
	}
	return descriptors[Invalid]
}

// Format returns the display format for values of kind k. Kinds without a
// natural scalar format (pointer, slice, imaginary and complex kinds, unknown
// tags) display as raw bytes.
func (k Kind) Format() Format { return describe(k).format }

// Encoding returns the scalar encoding class of k and its element count.
// Scalar kinds report a count of 1; kinds without a scalar encoding report
// EncodingInvalid and 0.
func (k Kind) Encoding() (Encoding, uint64) {
	switch describe(k).family {
	case famSigned:
		return EncodingSint, 1
	case famUnsigned, famChar, famBool:
		return EncodingUint, 1
	case famFloat:
		return EncodingIEEE754, 1
	}
	return EncodingInvalid, 0
}

// BasicType maps a builtin kind to its language-neutral basic type.
// Non-builtin kinds map to BasicOther.
func (k Kind) BasicType() BasicType {
	if !k.IsBuiltin() {
		return BasicOther
	}
	return describe(k).basic
}

// CanonicalName returns the user-facing name of k. Width variants of the
// same D type share a name: real64, real80 and real128 are all "real".
func (k Kind) CanonicalName() string { return describe(k).canonical }

// BitSize returns the width of k in bits on target t. The result is absent
// for void, unknown kinds and pointer-sized kinds on a target whose address
// width class is not known.
func (k Kind) BitSize(t target.Target) (uint64, bool) {
	switch k {
	case Pointer:
		return pointerBitSize(t)
	case Slice:
		// length + pointer
		if bits, ok := pointerBitSize(t); ok {
			return 2 * bits, true
		}
		return 0, false
	case Real, IReal:
		return RealBitSize(t), true
	case CReal:
		return 2 * RealBitSize(t), true
	}

	d, ok := descriptors[k]
	if !ok || d.bits == 0 {
		return 0, false
	}
	return d.bits, true
}

// FixedBitSize returns the width of k when it is the same on every target.
// Pointer-sized kinds, real, ireal and creal report false.
func (k Kind) FixedBitSize() (uint64, bool) {
	d, ok := descriptors[k]
	if !ok || d.bits == 0 {
		return 0, false
	}
	return d.bits, true
}

func pointerBitSize(t target.Target) (uint64, bool) {
	switch t.BitWidth() {
	case 64:
		return 64, true
	case 32:
		return 32, true
	case 16:
		return 16, true
	}
	return 0, false
}

// RealBitSize returns the width of D's real on target t:
//   - 80 on x86 unless the ABI is Windows MSVC or Android (x87 extended precision)
//   - 128 on 64-bit ARM outside Darwin, and on Android x86_64 (IEEE quadruple)
//   - 64 everywhere else (real is double)
func RealBitSize(t target.Target) uint64 {
	if t.IsX86() && !t.IsWindowsMSVC() && !t.IsAndroid() {
		return 80
	}
	if (t.Arch == target.ArchAArch64 && !t.IsDarwinFamily()) ||
		(t.IsAndroid() && t.Arch == target.ArchX86_64) {
		return 128
	}
	return 64
}
