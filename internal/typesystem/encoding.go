package typesystem

import (
	"github.com/coral-mesh/dtypes/internal/dwarfinfo"
	"github.com/coral-mesh/dtypes/internal/typekind"
)

// KindForEncoding maps a base type's DWARF encoding and bit width to a
// catalog kind. A declared name that is itself a D type name wins when its
// encoding class and width agree, which keeps char apart from ubyte and real
// apart from double on targets where they share a width. A C long of 32 bits
// is an int, not a D long.
func KindForEncoding(name string, enc dwarfinfo.Encoding, bits uint64) typekind.Kind {
	if k, ok := typekind.Lookup(name); ok && encodingAccepts(enc, k) && widthAccepts(bits, k) {
		return k
	}

	switch enc {
	case dwarfinfo.EncAddress:
		return typekind.Pointer
	case dwarfinfo.EncBoolean:
		return typekind.Bool
	case dwarfinfo.EncSigned, dwarfinfo.EncSignedChar:
		return bySize(bits, typekind.Byte, typekind.Short, typekind.Int, typekind.Long, typekind.Cent)
	case dwarfinfo.EncUnsigned, dwarfinfo.EncUnsignedChar:
		return bySize(bits, typekind.UByte, typekind.UShort, typekind.UInt, typekind.ULong, typekind.UCent)
	case dwarfinfo.EncUTF, dwarfinfo.EncUCS, dwarfinfo.EncASCII:
		return bySize(bits, typekind.Char, typekind.WChar, typekind.DChar, typekind.Invalid, typekind.Invalid)
	case dwarfinfo.EncFloat:
		switch bits {
		case 32:
			return typekind.Float
		case 64:
			return typekind.Double
		case 80, 96:
			return typekind.Real80
		case 128:
			return typekind.Real128
		}
	case dwarfinfo.EncImaginaryFloat:
		switch bits {
		case 32:
			return typekind.IFloat
		case 64:
			return typekind.IDouble
		case 80, 96, 128:
			return typekind.IReal
		}
	case dwarfinfo.EncComplexFloat:
		switch bits {
		case 64:
			return typekind.CFloat
		case 128:
			return typekind.CDouble
		case 160, 192:
			return typekind.CReal80
		case 256:
			return typekind.CReal128
		}
	}
	return typekind.Invalid
}

func bySize(bits uint64, k8, k16, k32, k64, k128 typekind.Kind) typekind.Kind {
	switch bits {
	case 8:
		return k8
	case 16:
		return k16
	case 32:
		return k32
	case 64:
		return k64
	case 128:
		return k128
	}
	return typekind.Invalid
}

// widthAccepts reports whether a base type of the given width may be the
// catalog kind k. Kinds whose width depends on the target accept any width.
func widthAccepts(bits uint64, k typekind.Kind) bool {
	if fixed, ok := k.FixedBitSize(); ok {
		return fixed == bits
	}
	return true
}

// encodingAccepts reports whether a base type with encoding enc may be the
// catalog kind k.
func encodingAccepts(enc dwarfinfo.Encoding, k typekind.Kind) bool {
	switch k {
	case typekind.Bool:
		return enc == dwarfinfo.EncBoolean
	case typekind.Byte, typekind.Short, typekind.Int, typekind.Long, typekind.Cent:
		return enc == dwarfinfo.EncSigned || enc == dwarfinfo.EncSignedChar
	case typekind.UByte, typekind.UShort, typekind.UInt, typekind.ULong, typekind.UCent:
		return enc == dwarfinfo.EncUnsigned || enc == dwarfinfo.EncUnsignedChar
	case typekind.Char, typekind.WChar, typekind.DChar:
		return enc == dwarfinfo.EncUTF || enc == dwarfinfo.EncUnsigned ||
			enc == dwarfinfo.EncUnsignedChar || enc == dwarfinfo.EncSignedChar
	case typekind.Float, typekind.Double, typekind.Real, typekind.Real64, typekind.Real80, typekind.Real128:
		return enc == dwarfinfo.EncFloat
	case typekind.IFloat, typekind.IDouble, typekind.IReal:
		return enc == dwarfinfo.EncImaginaryFloat || enc == dwarfinfo.EncFloat
	case typekind.CFloat, typekind.CDouble, typekind.CReal, typekind.CReal64, typekind.CReal80, typekind.CReal128:
		return enc == dwarfinfo.EncComplexFloat
	}
	return false
}
