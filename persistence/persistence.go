// Package persistence stores bit buffers outside of memory.
//
// An encoded buffer is a 16-byte unsigned bit count, in the host's native
// byte order, immediately followed by the ceil(count/8) bytes holding the
// bits. Decoders ignore any bytes past the required payload.
package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"lukechampine.com/uint128"

	"github.com/spacemeshos/bitbuffer/bitstream"
)

// CountSize is the size in bytes of the encoded bit count.
const CountSize = 16

var (
	ErrTruncated     = errors.New("truncated bit buffer encoding")
	ErrCountOverflow = errors.New("bit count exceeds the supported max")
)

var littleEndianHost = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// EncodedLen returns the number of bytes Encode writes for buf.
func EncodedLen(buf *bitstream.BitBuffer) uint64 {
	return CountSize + uint64(len(buf.Bytes()))
}

// Encode writes buf to w.
func Encode(w io.Writer, buf *bitstream.BitBuffer) error {
	var header [CountSize]byte
	putCount(header[:], buf.Count())

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write bit count: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write bits: %w", err)
	}

	return nil
}

// Decode reads a buffer written by Encode. All of r is consumed.
func Decode(r io.Reader) (*bitstream.BitBuffer, error) {
	var header [CountSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: missing bit count", ErrTruncated)
		}
		return nil, fmt.Errorf("failed to read bit count: %w", err)
	}

	count := parseCount(header[:])
	if count.Hi != 0 {
		return nil, fmt.Errorf("%w; expected: <= %d, given: %v", ErrCountOverflow, uint64(math.MaxUint64), count)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read bits: %w", err)
	}

	size := bitstream.NumBytes(count.Lo)
	if uint64(len(data)) < size {
		return nil, fmt.Errorf("%w: expected: %d bytes for %d bits, given: %d",
			ErrTruncated, size, count.Lo, len(data))
	}

	return bitstream.NewBufferFrom(count.Lo, data[:size:size])
}

func putCount(b []byte, count uint64) {
	if littleEndianHost {
		uint128.From64(count).PutBytes(b)
	} else {
		uint128.From64(count).PutBytesBE(b)
	}
}

func parseCount(b []byte) uint128.Uint128 {
	if littleEndianHost {
		return uint128.FromBytes(b)
	}
	return uint128.FromBytesBE(b)
}
