package mewa

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Symbols pack up to ten identifier characters into a uint64, six bits per
// character starting from the least significant bits. Code 0 never encodes
// a character, so decoding stops at the first empty group. Characters past
// the tenth are partially or entirely shifted out, so long identifiers that
// share a ten-character prefix alias each other.
const symbolBits = 6

// encodeSymbolByte returns the 6-bit code for an identifier byte, or 0 if c
// cannot appear in identifiers.
func encodeSymbolByte(c byte) uint64 {
	switch {
	case 'a' <= c && c <= 'z':
		return uint64(c-'a') + 1
	case 'A' <= c && c <= 'Z':
		return uint64(c-'A') + 27
	case '0' <= c && c <= '9':
		return uint64(c-'0') + 53
	case c == '_':
		return 63
	default:
		return 0
	}
}

func decodeSymbolByte(x uint64) byte {
	switch {
	case 1 <= x && x <= 26:
		return byte(x-1) + 'a'
	case 27 <= x && x <= 52:
		return byte(x-27) + 'A'
	case 53 <= x && x <= 62:
		return byte(x-53) + '0'
	case x == 63:
		return '_'
	default:
		return '?'
	}
}

// EncodeSymbol packs an identifier the way the lexer does. It returns 0 if
// name contains a byte that cannot appear in identifiers.
func EncodeSymbol(name string) uint64 {
	var r uint64
	var off uint
	for i := 0; i < len(name); i++ {
		c := encodeSymbolByte(name[i])
		if c == 0 {
			return 0
		}
		r |= c << off
		off += symbolBits
	}
	return r
}

// DecodeSymbol unpacks a symbol into the identifier it was encoded from, up
// to the characters that fit.
func DecodeSymbol(x uint64) string {
	var b strings.Builder
	for ; x != 0; x >>= symbolBits {
		b.WriteByte(decodeSymbolByte(x & (1<<symbolBits - 1)))
	}
	return b.String()
}

// String formats v for display. Floats use fixed notation with six decimal
// places. Complex numbers print only their nonzero parts, as "re imi", "re",
// "imi", or "0".
func (v Value) String() string {
	return v.format(formatInt, formatFloat)
}

// FormatGrouped is like v.String, but it separates thousands with commas.
func FormatGrouped(v Value) string {
	return v.format(humanize.Comma, humanize.Commaf)
}

func formatInt(x int64) string {
	return strconv.FormatInt(x, 10)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func (v Value) format(fi func(int64) string, ff func(float64) string) string {
	switch v.typ {
	case TypeSymbol:
		return DecodeSymbol(v.s)
	case TypeInt:
		return fi(v.i)
	case TypeFloat:
		return ff(v.f)
	case TypeComplex:
		re, im := real(v.c), imag(v.c)
		switch {
		case re != 0 && im != 0:
			return ff(re) + " " + ff(im) + "i"
		case re != 0:
			return ff(re)
		case im != 0:
			return ff(im) + "i"
		default:
			return "0"
		}
	case TypeBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return "<invalid value>"
	}
}
