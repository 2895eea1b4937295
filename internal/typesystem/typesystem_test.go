package typesystem

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/target"
	"github.com/coral-mesh/dtypes/internal/typekind"
)

func TestKindForEncoding(t *testing.T) {
	tests := []struct {
		name string
		enc  dwarfinfo.Encoding
		bits uint64
		want typekind.Kind
	}{
		{"int", dwarfinfo.EncSigned, 32, typekind.Int},
		{"long int", dwarfinfo.EncSigned, 64, typekind.Long},
		{"long", dwarfinfo.EncSigned, 32, typekind.Int},
		{"ulong", dwarfinfo.EncUnsigned, 32, typekind.UInt},
		{"double", dwarfinfo.EncFloat, 32, typekind.Float},
		{"real", dwarfinfo.EncFloat, 96, typekind.Real},
		{"", dwarfinfo.EncSigned, 128, typekind.Cent},
		{"ubyte", dwarfinfo.EncUnsignedChar, 8, typekind.UByte},
		{"unsigned short", dwarfinfo.EncUnsigned, 16, typekind.UShort},
		{"char", dwarfinfo.EncUnsignedChar, 8, typekind.Char},
		{"char", dwarfinfo.EncSigned, 8, typekind.Byte},
		{"wchar", dwarfinfo.EncUTF, 16, typekind.WChar},
		{"", dwarfinfo.EncUTF, 32, typekind.DChar},
		{"", dwarfinfo.EncUTF, 64, typekind.Invalid},
		{"bool", dwarfinfo.EncBoolean, 8, typekind.Bool},
		{"bool", dwarfinfo.EncSigned, 8, typekind.Byte},
		{"float", dwarfinfo.EncFloat, 32, typekind.Float},
		{"double", dwarfinfo.EncFloat, 64, typekind.Double},
		{"real", dwarfinfo.EncFloat, 80, typekind.Real},
		{"long double", dwarfinfo.EncFloat, 128, typekind.Real128},
		{"long double", dwarfinfo.EncFloat, 96, typekind.Real80},
		{"ifloat", dwarfinfo.EncFloat, 32, typekind.IFloat},
		{"", dwarfinfo.EncImaginaryFloat, 64, typekind.IDouble},
		{"cfloat", dwarfinfo.EncComplexFloat, 64, typekind.CFloat},
		{"complex long double", dwarfinfo.EncComplexFloat, 160, typekind.CReal80},
		{"", dwarfinfo.EncComplexFloat, 256, typekind.CReal128},
		{"", dwarfinfo.EncAddress, 64, typekind.Pointer},
		{"", dwarfinfo.EncUnsigned, 24, typekind.Invalid},
		{"_Decimal64", dwarfinfo.EncDecimalFloat, 64, typekind.Invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.enc.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, KindForEncoding(tt.name, tt.enc, tt.bits))
		})
	}
}

func TestTypeSystem_Interning(t *testing.T) {
	ts := New(target.MustParseTriple("x86_64-unknown-linux-gnu"), zerolog.Nop())

	a := ts.BuiltinForEncodingAndBitSize("int", dwarfinfo.EncSigned, 32)
	b := ts.BuiltinForEncodingAndBitSize("int", dwarfinfo.EncSigned, 32)
	c := ts.BuiltinForEncodingAndBitSize("int", dwarfinfo.EncSigned, 64)
	d := ts.BuiltinForEncodingAndBitSize("myint", dwarfinfo.EncSigned, 32)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Equal(t, 3, ts.Len())
	assert.Same(t, ts, a.TypeSystem())
}

func TestCompilerType_Accessors(t *testing.T) {
	linux := New(target.MustParseTriple("x86_64-unknown-linux-gnu"), zerolog.Nop())
	msvc := New(target.MustParseTriple("x86_64-pc-windows-msvc"), zerolog.Nop())

	ct := linux.BuiltinForEncodingAndBitSize("int", dwarfinfo.EncSigned, 32)
	require.True(t, ct.IsValid())
	assert.Equal(t, "int", ct.Name())
	assert.Equal(t, typekind.Int, ct.Kind())
	assert.Equal(t, dwarfinfo.EncSigned, ct.DWARFEncoding())
	assert.Equal(t, typekind.FormatDecimal, ct.Format())
	enc, count := ct.Encoding()
	assert.Equal(t, typekind.EncodingSint, enc)
	assert.Equal(t, uint64(1), count)
	assert.Equal(t, typekind.BasicInt, ct.BasicType())
	assert.Equal(t, "int", ct.DisplayName())

	real80 := linux.BuiltinForEncodingAndBitSize("real", dwarfinfo.EncFloat, 80)
	bits, ok := real80.BitSize()
	require.True(t, ok)
	assert.Equal(t, uint64(80), bits)

	realMSVC := msvc.BuiltinForEncodingAndBitSize("real", dwarfinfo.EncFloat, 64)
	bits, ok = realMSVC.BitSize()
	require.True(t, ok)
	assert.Equal(t, uint64(64), bits)

	wide := linux.BuiltinForEncodingAndBitSize("long double", dwarfinfo.EncFloat, 128)
	assert.Equal(t, "real", wide.DisplayName())
	assert.Equal(t, "long double", wide.Name())
}

func TestCompilerType_BitSizeFollowsDeclaredWidth(t *testing.T) {
	i686 := New(target.MustParseTriple("i686-unknown-linux-gnu"), zerolog.Nop())

	tests := []struct {
		name     string
		enc      dwarfinfo.Encoding
		bits     uint64
		wantKind typekind.Kind
		wantBits uint64
	}{
		{"long", dwarfinfo.EncSigned, 32, typekind.Int, 32},
		{"double", dwarfinfo.EncFloat, 32, typekind.Float, 32},
		{"long", dwarfinfo.EncSigned, 64, typekind.Long, 64},
		{"real", dwarfinfo.EncFloat, 96, typekind.Real, 80},
		{"", dwarfinfo.EncAddress, 32, typekind.Pointer, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.enc.String(), func(t *testing.T) {
			ct := i686.BuiltinForEncodingAndBitSize(tt.name, tt.enc, tt.bits)
			assert.Equal(t, tt.wantKind, ct.Kind())
			bits, ok := ct.BitSize()
			require.True(t, ok)
			assert.Equal(t, tt.wantBits, bits)
		})
	}
}

func TestCompilerType_UnknownEncoding(t *testing.T) {
	ts := New(target.MustParseTriple("aarch64-unknown-linux-gnu"), zerolog.Nop())

	ct := ts.BuiltinForEncodingAndBitSize("_Decimal64", dwarfinfo.EncDecimalFloat, 64)
	require.True(t, ct.IsValid())
	assert.Equal(t, typekind.Invalid, ct.Kind())
	assert.Equal(t, typekind.FormatBytes, ct.Format())
	assert.Equal(t, "_Decimal64", ct.DisplayName())

	bits, ok := ct.BitSize()
	require.True(t, ok)
	assert.Equal(t, uint64(64), bits)
}

func TestCompilerType_Zero(t *testing.T) {
	var ct CompilerType
	assert.False(t, ct.IsValid())
	assert.Equal(t, "", ct.Name())
	assert.Equal(t, typekind.Invalid, ct.Kind())
	assert.Equal(t, dwarfinfo.EncNone, ct.DWARFEncoding())
	assert.Equal(t, "", ct.DisplayName())
	_, ok := ct.BitSize()
	assert.False(t, ok)
}
