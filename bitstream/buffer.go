package bitstream

import (
	"slices"
	"strings"

	"lukechampine.com/uint128"
)

// bitMask[i] selects the i-th bit of a byte, counting from the MS bit.
var bitMask = [8]byte{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01}

// BitBuffer is a growable sequence of bits backed by a byte slice.
// Bit 0 is the MS bit of the first byte. The storage never holds a byte
// beyond the one containing the last bit.
//
// The zero value is an empty buffer ready to use. A BitBuffer must not be
// mutated concurrently; use Clone to hand a snapshot to another goroutine.
type BitBuffer struct {
	count uint64
	data  []byte
}

// NewBuffer returns a new empty BitBuffer.
func NewBuffer() *BitBuffer {
	return new(BitBuffer)
}

// NewBufferFrom returns a BitBuffer holding count bits stored in data.
// The buffer takes ownership of data, which must be exactly ceil(count/8)
// bytes long. Bits of the last byte past count are cleared.
func NewBufferFrom(count uint64, data []byte) (*BitBuffer, error) {
	if uint64(len(data)) != NumBytes(count) {
		return nil, &lengthMismatchError{count: count, length: len(data)}
	}
	if r := count % 8; r != 0 {
		data[len(data)-1] &= byte(0xFF) << (8 - r)
	}
	return &BitBuffer{count: count, data: data}, nil
}

// Flush empties the buffer, keeping the allocated storage for reuse.
func (b *BitBuffer) Flush() {
	b.count = 0
	b.data = b.data[:0]
}

// Count returns the number of bits in the buffer.
func (b *BitBuffer) Count() uint64 {
	return b.count
}

// Bytes returns the backing storage. The last byte may be partially used;
// its unused LS bits are zero. The slice aliases the buffer and is only
// valid until the next mutation.
func (b *BitBuffer) Bytes() []byte {
	return b.data
}

// Clone returns an independent copy of the buffer.
func (b *BitBuffer) Clone() *BitBuffer {
	return &BitBuffer{count: b.count, data: slices.Clone(b.data)}
}

// GetBit returns the bit at index.
func (b *BitBuffer) GetBit(index uint64) (Bit, error) {
	if index >= b.count {
		return Zero, &OutOfRangeError{Index: index, Width: 1, Count: b.count}
	}
	return b.data[index/8]&bitMask[index%8] != 0, nil
}

// GetBits returns width bits starting at index as the low bits of the result,
// the first bit read being the most significant one.
func (b *BitBuffer) GetBits(index uint64, width uint) (Uint128, error) {
	if !validWidth(width) {
		return uint128.Zero, invalidWidth(width, MaxWidth)
	}
	if index > b.count || uint64(width) > b.count-index {
		return uint128.Zero, &OutOfRangeError{Index: index, Width: width, Count: b.count}
	}

	byteIdx := index / 8
	offset := uint(index % 8)
	remaining := width
	var val Uint128

	// Unaligned prefix: the rest of the first byte, or fewer bits if the
	// field ends inside it.
	if offset != 0 {
		n := min(8-offset, remaining)
		shift := 8 - offset - n
		mask := (byte(1)<<n - 1) << shift
		val = uint128.From64(uint64((b.data[byteIdx] & mask) >> shift))
		remaining -= n
		byteIdx++
	}

	for ; remaining >= 8; remaining -= 8 {
		val = val.Lsh(8).Or64(uint64(b.data[byteIdx]))
		byteIdx++
	}

	// Suffix: the MS bits of the last byte.
	if remaining > 0 {
		val = val.Lsh(remaining).Or64(uint64(b.data[byteIdx] >> (8 - remaining)))
	}

	return val, nil
}

// PushBit appends a single bit.
func (b *BitBuffer) PushBit(bit Bit) {
	offset := b.count % 8
	if offset == 0 {
		b.data = append(b.data, 0)
	}
	if bit {
		b.data[len(b.data)-1] |= bitMask[offset]
	}
	b.count++
}

// PushBits appends the width LS bits of bits, most significant first.
// On error the buffer is left untouched.
func (b *BitBuffer) PushBits(bits Uint128, width uint) error {
	if !validWidth(width) {
		return invalidWidth(width, MaxWidth)
	}
	if width == 1 {
		b.PushBit(bits.Lo&1 == 1)
		return nil
	}

	offset := uint(b.count % 8)
	byteIdx := len(b.data)
	b.grow(NumBytes(b.count+uint64(width)) - uint64(len(b.data)))
	remaining := width

	// Fill the free LS bits of the current last byte.
	if offset != 0 {
		n := min(8-offset, remaining)
		chunk := byte(bits.Rsh(remaining-n).Lo) & (byte(1)<<n - 1)
		b.data[byteIdx-1] |= chunk << (8 - offset - n)
		remaining -= n
	}

	for ; remaining >= 8; remaining -= 8 {
		b.data[byteIdx] = byte(bits.Rsh(remaining - 8).Lo)
		byteIdx++
	}

	if remaining > 0 {
		b.data[byteIdx] = byte(bits.Lo) << (8 - remaining)
	}

	b.count += uint64(width)
	return nil
}

// grow extends the storage by n zeroed bytes. Capacity grows geometrically,
// so bytes left behind by Flush are reused and must be cleared.
func (b *BitBuffer) grow(n uint64) {
	if n == 0 {
		return
	}
	l := len(b.data)
	b.data = slices.Grow(b.data, int(n))[:l+int(n)]
	clear(b.data[l:])
}

// String returns the bits as a string of '0' and '1'.
func (b *BitBuffer) String() string {
	var sb strings.Builder
	sb.Grow(int(b.count))
	for i := uint64(0); i < b.count; i++ {
		if b.data[i/8]&bitMask[i%8] != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
