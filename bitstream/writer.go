package bitstream

// BitWriter appends bits to a BitBuffer it owns.
type BitWriter struct {
	buffer   BitBuffer
	position uint64
}

// NewWriter returns a new instance of BitWriter with an empty buffer.
func NewWriter() *BitWriter {
	return new(BitWriter)
}

// Position returns the number of bits written so far.
func (bw *BitWriter) Position() uint64 {
	return bw.position
}

// WriteBit writes a single bit.
func (bw *BitWriter) WriteBit(bit Bit) {
	bw.buffer.PushBit(bit)
	bw.position++
}

// WriteBits writes the width LS bits of bits, most significant first.
func (bw *BitWriter) WriteBits(bits Uint128, width uint) error {
	if err := bw.buffer.PushBits(bits, width); err != nil {
		return err
	}
	bw.position += uint64(width)

	return nil
}

// WriteUint64 writes the numBits (at most 64) LS bits of val.
func (bw *BitWriter) WriteUint64(val uint64, numBits uint) error {
	if numBits == 0 || numBits > 64 {
		return invalidWidth(numBits, 64)
	}

	return bw.WriteBits(From64(val), numBits)
}

// Align fills the pending partial byte with pad bits, so the next write starts
// on a byte boundary. It returns the number of bits written.
func (bw *BitWriter) Align(pad Bit) uint {
	var n uint
	for bw.position%8 != 0 {
		bw.WriteBit(pad)
		n++
	}

	return n
}

// Buffer returns a snapshot of the bits written so far. Later writes do not
// affect the returned buffer.
func (bw *BitWriter) Buffer() *BitBuffer {
	return bw.buffer.Clone()
}

// Reset discards all written bits.
func (bw *BitWriter) Reset() {
	bw.buffer.Flush()
	bw.position = 0
}
