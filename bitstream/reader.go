package bitstream

import (
	"io"

	"lukechampine.com/uint128"
)

// BitReader reads bits sequentially from a BitBuffer.
type BitReader struct {
	buffer   *BitBuffer
	position uint64
}

// NewReader returns a new instance of BitReader positioned at the first bit of buf.
// The reader does not copy buf; pass a snapshot (BitWriter.Buffer or
// BitBuffer.Clone) to read a point-in-time view of a buffer still being written.
func NewReader(buf *BitBuffer) *BitReader {
	return &BitReader{buffer: buf}
}

// Reset rewinds the reader to the first bit of buf.
func (br *BitReader) Reset(buf *BitBuffer) {
	br.buffer = buf
	br.position = 0
}

// Position returns the index of the next bit to be read.
func (br *BitReader) Position() uint64 {
	return br.position
}

// Remaining returns the number of unread bits. It is 0 once the position is
// at or past the end, which happens when the buffer shrinks under the reader.
func (br *BitReader) Remaining() uint64 {
	if br.position >= br.buffer.Count() {
		return 0
	}
	return br.buffer.Count() - br.position
}

// ReadBit reads the next single bit. It returns io.EOF once all bits were read.
func (br *BitReader) ReadBit() (Bit, error) {
	if br.position >= br.buffer.Count() {
		return Zero, io.EOF
	}

	bit, err := br.buffer.GetBit(br.position)
	if err != nil {
		return Zero, err
	}
	br.position++

	return bit, nil
}

// ReadBits reads the next width bits, MS bit first. The position only moves
// when the read succeeds.
func (br *BitReader) ReadBits(width uint) (Uint128, error) {
	val, err := br.buffer.GetBits(br.position, width)
	if err != nil {
		return uint128.Zero, err
	}
	br.position += uint64(width)

	return val, nil
}

// ReadUint64 reads the next numBits (at most 64) as a uint64.
func (br *BitReader) ReadUint64(numBits uint) (uint64, error) {
	if numBits == 0 || numBits > 64 {
		return 0, invalidWidth(numBits, 64)
	}

	val, err := br.ReadBits(numBits)
	if err != nil {
		return 0, err
	}

	return val.Lo, nil
}
