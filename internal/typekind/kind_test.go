package typekind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-mesh/dtypes/internal/target"
)

var (
	linux64   = target.MustParseTriple("x86_64-unknown-linux-gnu")
	linux32   = target.MustParseTriple("i686-unknown-linux-gnu")
	msvc64    = target.MustParseTriple("x86_64-pc-windows-msvc")
	mingw64   = target.MustParseTriple("x86_64-w64-windows-gnu")
	android64 = target.MustParseTriple("x86_64-linux-android")
	androidX  = target.MustParseTriple("i686-linux-android")
	arm64     = target.MustParseTriple("aarch64-unknown-linux-gnu")
	darwinArm = target.MustParseTriple("aarch64-apple-darwin")
	armv7     = target.MustParseTriple("armv7-unknown-linux-gnueabihf")
	avr       = target.MustParseTriple("avr")
)

func TestKinds_Catalog(t *testing.T) {
	kinds := Kinds()
	assert.Equal(t, []Kind{Void, Pointer, Slice}, kinds[:3])
	assert.Len(t, BuiltinKinds(), 29)
	assert.Len(t, kinds, 32)

	seen := make(map[Kind]bool)
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate %s", k)
		seen[k] = true
		assert.True(t, k.IsValid(), k.String())
	}
	assert.False(t, Invalid.IsValid())
	assert.False(t, Kind(0x7f).IsValid())
}

func TestKind_IsBuiltin(t *testing.T) {
	for _, k := range BuiltinKinds() {
		assert.True(t, k.IsBuiltin(), k.String())
		assert.NotEqual(t, Kind(0), k&Builtin)
	}
	for _, k := range []Kind{Invalid, Void, Pointer, Slice} {
		assert.False(t, k.IsBuiltin(), k.String())
	}
	assert.Equal(t, Kind(1<<7), Bool)
}

func TestKind_CanonicalName(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Real, "real"},
		{Real64, "real"},
		{Real80, "real"},
		{Real128, "real"},
		{CReal, "creal"},
		{CReal64, "creal"},
		{CReal80, "creal"},
		{CReal128, "creal"},
		{IReal, "ireal"},
		{DChar, "dchar"},
		{UCent, "ucent"},
		{Void, "void"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.CanonicalName())
		})
	}
	assert.Equal(t, "real80", Real80.String())
	assert.Equal(t, "kind(0x7f)", Kind(0x7f).String())
}

func TestLookup(t *testing.T) {
	k, ok := Lookup("wchar")
	require.True(t, ok)
	assert.Equal(t, WChar, k)

	k, ok = Lookup("real128")
	require.True(t, ok)
	assert.Equal(t, Real128, k)

	_, ok = Lookup("invalid")
	assert.False(t, ok)
	_, ok = Lookup("size_t")
	assert.False(t, ok)
}

func TestKind_FormatAndEncoding(t *testing.T) {
	tests := []struct {
		kind   Kind
		format Format
		enc    Encoding
		count  uint64
		basic  BasicType
	}{
		{Bool, FormatBoolean, EncodingUint, 1, BasicBool},
		{Byte, FormatDecimal, EncodingSint, 1, BasicSignedChar},
		{UByte, FormatUnsigned, EncodingUint, 1, BasicUnsignedChar},
		{Cent, FormatDecimal, EncodingSint, 1, BasicInt128},
		{Char, FormatUnicode8, EncodingUint, 1, BasicChar8},
		{WChar, FormatUnicode16, EncodingUint, 1, BasicChar16},
		{DChar, FormatUnicode32, EncodingUint, 1, BasicChar32},
		{Double, FormatFloat, EncodingIEEE754, 1, BasicDouble},
		{Real, FormatFloat, EncodingIEEE754, 1, BasicLongDouble},
		{IFloat, FormatBytes, EncodingInvalid, 0, BasicFloat},
		{CDouble, FormatBytes, EncodingInvalid, 0, BasicDoubleComplex},
		{CReal80, FormatBytes, EncodingInvalid, 0, BasicLongDoubleComplex},
		{Void, FormatVoid, EncodingInvalid, 0, BasicOther},
		{Pointer, FormatBytes, EncodingInvalid, 0, BasicOther},
		{Slice, FormatBytes, EncodingInvalid, 0, BasicOther},
		{Kind(0xff), FormatBytes, EncodingInvalid, 0, BasicOther},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.format, tt.kind.Format())
			enc, count := tt.kind.Encoding()
			assert.Equal(t, tt.enc, enc)
			assert.Equal(t, tt.count, count)
			assert.Equal(t, tt.basic, tt.kind.BasicType())
		})
	}
}

func TestBuiltinKinds_MetadataDomains(t *testing.T) {
	for _, k := range BuiltinKinds() {
		t.Run(k.String(), func(t *testing.T) {
			assert.True(t, k.IsBuiltin())

			f := k.Format()
			assert.True(t, f >= FormatBytes && f < FormatVoid, "format %s", f)

			enc, count := k.Encoding()
			assert.True(t, enc >= EncodingInvalid && enc <= EncodingIEEE754, "encoding %s", enc)
			if enc == EncodingInvalid {
				assert.Equal(t, uint64(0), count)
			} else {
				assert.Equal(t, uint64(1), count)
			}

			assert.NotEqual(t, BasicOther, k.BasicType())
			assert.NotEmpty(t, k.CanonicalName())
		})
	}
}

func TestKind_FixedBitSize(t *testing.T) {
	tests := []struct {
		kind Kind
		want uint64
		ok   bool
	}{
		{Long, 64, true},
		{Real80, 80, true},
		{CFloat, 64, true},
		{Real, 0, false},
		{IReal, 0, false},
		{CReal, 0, false},
		{Pointer, 0, false},
		{Void, 0, false},
		{Kind(0xfe), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			bits, ok := tt.kind.FixedBitSize()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, bits)
		})
	}
}

func TestRealBitSize(t *testing.T) {
	tests := []struct {
		name   string
		target target.Target
		want   uint64
	}{
		{"x86_64 linux", linux64, 80},
		{"i686 linux", linux32, 80},
		{"x86_64 mingw", mingw64, 80},
		{"x86_64 msvc", msvc64, 64},
		{"x86_64 android", android64, 128},
		{"i686 android", androidX, 64},
		{"aarch64 linux", arm64, 128},
		{"aarch64 darwin", darwinArm, 64},
		{"armv7", armv7, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RealBitSize(tt.target))

			bits, ok := Real.BitSize(tt.target)
			require.True(t, ok)
			assert.Equal(t, tt.want, bits)

			bits, ok = CReal.BitSize(tt.target)
			require.True(t, ok)
			assert.Equal(t, 2*tt.want, bits)
		})
	}
}

func TestKind_BitSize(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		target target.Target
		want   uint64
		ok     bool
	}{
		{"int is fixed", Int, armv7, 32, true},
		{"cent", Cent, linux64, 128, true},
		{"real80 ignores target", Real80, msvc64, 80, true},
		{"creal64", CReal64, linux64, 128, true},
		{"creal128", CReal128, linux64, 256, true},
		{"pointer 64", Pointer, linux64, 64, true},
		{"pointer 32", Pointer, linux32, 32, true},
		{"pointer 16", Pointer, avr, 16, true},
		{"pointer unknown width", Pointer, target.Target{}, 0, false},
		{"slice 64", Slice, linux64, 128, true},
		{"slice 32", Slice, armv7, 64, true},
		{"slice unknown width", Slice, target.Target{}, 0, false},
		{"void", Void, linux64, 0, false},
		{"invalid", Invalid, linux64, 0, false},
		{"unknown tag", Kind(0xfe), linux64, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits, ok := tt.kind.BitSize(tt.target)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, bits)
		})
	}
}

func TestBuiltinKinds_HaveWidth(t *testing.T) {
	for _, tgt := range []target.Target{linux64, msvc64, arm64, avr} {
		for _, k := range BuiltinKinds() {
			_, ok := k.BitSize(tgt)
			assert.True(t, ok, "%s on %s", k, tgt)
		}
	}
}
