// Package bitstream provides a growable, bit-addressable buffer and the
// sequential BitWriter and BitReader cursors over it. Fields of 1 to 128 bits
// are packed regardless of byte alignment, following the MSB pattern, where
// most-significant bits are written/read first.
//
// Writing the fields 0b1100 (4 bits), 0b111 (3 bits), 0b101 (3 bits) and
// 0b010101 (6 bits) produces the bytes 0xCF 0x55:
//
//	HEXA    C    F     5    5
//	BINARY  1100 1111  0101 0101
//	        aaaa bbbc  ccdd dddd
package bitstream

import (
	"lukechampine.com/uint128"
)

// MaxWidth is the widest field, in bits, a single get/push can carry.
const MaxWidth = 128

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// Uint8 returns 1 for One and 0 for Zero.
func (b Bit) Uint8() uint8 {
	if b {
		return 1
	}
	return 0
}

func (b Bit) String() string {
	if b {
		return "1"
	}
	return "0"
}

// Uint128 is the accumulator type of all multi-bit operations.
type Uint128 = uint128.Uint128

// From64 returns v as a Uint128.
func From64(v uint64) Uint128 {
	return uint128.From64(v)
}

func validWidth(width uint) bool {
	return width > 0 && width <= MaxWidth
}

// NumBytes returns the number of bytes needed to hold numBits.
func NumBytes(numBits uint64) uint64 {
	size := numBits / 8
	if numBits%8 != 0 {
		size++
	}
	return size
}
