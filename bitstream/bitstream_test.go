package bitstream_test

import (
	"io"
	"math/bits"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/bitbuffer/bitstream"
)

const (
	Zero = bitstream.Zero
	One  = bitstream.One
)

var (
	NewWriter = bitstream.NewWriter
	NewReader = bitstream.NewReader
	From64    = bitstream.From64
)

func numBits(v uint64) uint {
	return uint(bits.Len64(v))
}

func TestUint64(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	from := uint64(1)
	to := uint64(1 << 12)

	// Write.
	for i := from; i < to; i++ {
		req.NoError(w.WriteUint64(i, numBits(i)))
		req.NoError(w.WriteUint64(i, 64))
	}

	// Read.
	r := NewReader(w.Buffer())
	for i := from; i < to; i++ {
		num, err := r.ReadUint64(numBits(i))
		req.NoError(err)
		req.Equal(i, num)
		num, err = r.ReadUint64(64)
		req.NoError(err)
		req.Equal(i, num)
	}
	req.Zero(r.Remaining())
}

func TestUint64_Mixed(t *testing.T) {
	req := require.New(t)

	from := uint64(1)
	to := uint64(1 << 12)

	for i := from; i < to; i++ {
		w := NewWriter()

		// Write 3 arbitrary bits.
		w.WriteBit(One)
		w.WriteBit(Zero)
		w.WriteBit(One)

		// Write i.
		n := numBits(i)
		req.NoError(w.WriteUint64(i, n))

		// Write the 3 LS bits of 0xFF.
		req.NoError(w.WriteUint64(0xFF, 3))

		// Write i again.
		req.NoError(w.WriteUint64(i, n))

		// Write 3 arbitrary bits.
		w.WriteBit(One)
		w.WriteBit(Zero)
		w.WriteBit(One)

		// Read.
		r := NewReader(w.Buffer())

		bit, err := r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)
		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(Zero, bit)
		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)

		num, err := r.ReadUint64(n)
		req.NoError(err)
		req.Equal(i, num)

		num, err = r.ReadUint64(3)
		req.NoError(err)
		req.Equal(uint64(0x07), num)

		num, err = r.ReadUint64(n)
		req.NoError(err)
		req.Equal(i, num)

		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)
		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(Zero, bit)
		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)

		_, err = r.ReadBit()
		req.Equal(io.EOF, err)
	}
}

func TestSingleBits(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	for _, c := range "101001011" {
		w.WriteBit(c == '1')
	}

	r := NewReader(w.Buffer())
	var sb strings.Builder
	for {
		bit, err := r.ReadBit()
		if err == io.EOF {
			break
		}
		req.NoError(err)
		sb.WriteString(bit.String())
	}

	req.Equal("101001011", sb.String())
}

func TestBoundarySplit(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	req.NoError(w.WriteUint64(0b0101, 4))
	req.NoError(w.WriteUint64(0b11001100110011, 14))

	r := NewReader(w.Buffer())
	num, err := r.ReadUint64(4)
	req.NoError(err)
	req.Equal(uint64(0b0101), num)
	num, err = r.ReadUint64(14)
	req.NoError(err)
	req.Equal(uint64(0b11001100110011), num)
}

func TestMidByteSplit(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	req.NoError(w.WriteUint64(0b010100111000011111, 18))

	r := NewReader(w.Buffer())
	num, err := r.ReadUint64(10)
	req.NoError(err)
	req.Equal(uint64(0b0101001110), num)
	num, err = r.ReadUint64(4)
	req.NoError(err)
	req.Equal(uint64(0b0001), num)
	num, err = r.ReadUint64(4)
	req.NoError(err)
	req.Equal(uint64(0b1111), num)
}

func TestEOF_0(t *testing.T) {
	req := require.New(t)

	_, err := NewReader(bitstream.NewBuffer()).ReadBit()
	req.Equal(io.EOF, err)

	_, err = NewReader(bitstream.NewBuffer()).ReadBits(1)
	req.ErrorIs(err, bitstream.ErrOutOfRange)
}

func TestEOF_1(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	req.NoError(w.WriteUint64(0b110, 3))
	r := NewReader(w.Buffer())

	_, err := r.ReadBits(2)
	req.NoError(err)
	req.Equal(uint64(2), r.Position())

	// The final valid bit is returned once.
	bit, err := r.ReadBit()
	req.NoError(err)
	req.Equal(Zero, bit)

	_, err = r.ReadBit()
	req.Equal(io.EOF, err)
	req.Equal(uint64(3), r.Position())
}

func TestEOF_2(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	req.NoError(w.WriteUint64(0xABCD, 16))
	r := NewReader(w.Buffer())

	_, err := r.ReadBits(5)
	req.NoError(err)

	// More bits than remain: no bits are consumed.
	_, err = r.ReadBits(12)
	req.ErrorIs(err, bitstream.ErrOutOfRange)
	req.Equal(uint64(5), r.Position())
	req.Equal(uint64(11), r.Remaining())

	num, err := r.ReadUint64(11)
	req.NoError(err)
	req.Equal(uint64(0xABCD&0x7FF), num)
}

func TestReadInvalidWidth(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	req.NoError(w.WriteBits(bitstream.Uint128{Lo: 1, Hi: 1}, 128))
	r := NewReader(w.Buffer())

	_, err := r.ReadBits(0)
	req.ErrorIs(err, bitstream.ErrInvalidWidth)
	_, err = r.ReadBits(129)
	req.ErrorIs(err, bitstream.ErrInvalidWidth)
	_, err = r.ReadUint64(65)
	req.ErrorIs(err, bitstream.ErrInvalidWidth)
	req.Zero(r.Position())
}

func TestUint64InvalidWidth(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	for _, width := range []uint{0, 65} {
		err := w.WriteUint64(1, width)
		req.ErrorIs(err, bitstream.ErrInvalidWidth)
		req.ErrorContains(err, "expected: 1..64")
	}
	req.Zero(w.Position())

	req.NoError(w.WriteUint64(0xFF, 8))
	r := NewReader(w.Buffer())
	for _, width := range []uint{0, 65} {
		_, err := r.ReadUint64(width)
		req.ErrorIs(err, bitstream.ErrInvalidWidth)
		req.ErrorContains(err, "expected: 1..64")
	}
	req.Zero(r.Position())
}

func TestWriterPosition(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	widths := []uint{1, 7, 3, 64, 128, 9, 1, 2}
	var total uint64
	for _, width := range widths {
		req.NoError(w.WriteBits(From64(0x5A5A), width))
		total += uint64(width)
		req.Equal(total, w.Position())
		req.Equal(w.Position(), w.Buffer().Count())
	}

	req.ErrorIs(w.WriteBits(From64(1), 0), bitstream.ErrInvalidWidth)
	req.ErrorIs(w.WriteBits(From64(1), 129), bitstream.ErrInvalidWidth)
	req.ErrorIs(w.WriteUint64(1, 65), bitstream.ErrInvalidWidth)
	req.Equal(total, w.Position())
	req.Equal(w.Position(), w.Buffer().Count())

	w.Reset()
	req.Zero(w.Position())
	req.Zero(w.Buffer().Count())
}

func TestAlign(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	for i := 0; i < 4; i++ {
		w.WriteBit(One)
	}

	req.Equal(uint(4), w.Align(One))
	req.Equal(uint(0), w.Align(One))
	req.NoError(w.WriteUint64(0xAA, 8))

	data := w.Buffer().Bytes()
	req.Len(data, 2)
	req.Equal(byte(0xFF), data[0])
	req.Equal(byte(0xAA), data[1])
}

func TestSnapshotIndependence(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	req.NoError(w.WriteUint64(0b101, 3))
	snapshot := w.Buffer()
	before := snapshot.String()

	// Further writes land in the byte the snapshot also holds.
	req.NoError(w.WriteUint64(0b11111, 5))
	req.NoError(w.WriteUint64(0xFFFF, 16))

	req.Equal(uint64(3), snapshot.Count())
	req.Equal(before, snapshot.String())
	req.Equal([]byte{0xA0}, snapshot.Bytes())

	r := NewReader(snapshot)
	num, err := r.ReadUint64(3)
	req.NoError(err)
	req.Equal(uint64(0b101), num)
	_, err = r.ReadBit()
	req.Equal(io.EOF, err)
}

func TestHeader(t *testing.T) {
	req := require.New(t)

	// IPv4 + UDP header fields.
	widths := []uint{4, 4, 8, 16, 16, 3, 13, 8, 8, 16, 32, 32, 16, 16, 16, 16}
	values := []uint64{
		4, 5, 0, 28, 0x1c46, 0b010, 0, 64, 17, 0xb1e6,
		0xc0a80001, 0xc0a800c7, 0x1f90, 0x0035, 8, 0,
	}

	w := NewWriter()
	for i, width := range widths {
		req.NoError(w.WriteUint64(values[i], width))
	}
	req.Equal(uint64(28*8), w.Position())

	r := NewReader(w.Buffer())
	for i, width := range widths {
		num, err := r.ReadUint64(width)
		req.NoError(err)
		req.Equal(values[i], num, "field %d", i)
	}
	req.Zero(r.Remaining())
}

func TestReaderReset(t *testing.T) {
	req := require.New(t)

	w := NewWriter()
	req.NoError(w.WriteUint64(0xF0, 8))
	r := NewReader(w.Buffer())
	_, err := r.ReadBits(8)
	req.NoError(err)

	req.NoError(w.WriteUint64(0x3, 2))
	r.Reset(w.Buffer())
	req.Zero(r.Position())
	num, err := r.ReadUint64(10)
	req.NoError(err)
	req.Equal(uint64(0xF0<<2|0x3), num)
}

func TestReaderRemaining_Shrunk(t *testing.T) {
	req := require.New(t)

	buf := bitstream.NewBuffer()
	req.NoError(buf.PushBits(From64(0xABCD), 16))
	r := NewReader(buf)
	_, err := r.ReadBits(12)
	req.NoError(err)
	req.Equal(uint64(4), r.Remaining())

	buf.Flush()
	req.Zero(r.Remaining())
	_, err = r.ReadBit()
	req.ErrorIs(err, io.EOF)
}
