package persistence

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spacemeshos/sha256-simd"
)

// Info describes an encoded buffer file.
type Info struct {
	Filename string
	// Number of bits stored.
	Count uint64
	// Number of bytes holding the bits.
	PayloadSize uint64
	FileSize    uint64
	// SHA-256 of the whole file.
	Digest [32]byte
}

// TrailingBytes returns the number of bytes past the payload, ignored by decoders.
func (i *Info) TrailingBytes() uint64 {
	return i.FileSize - CountSize - i.PayloadSize
}

// Stat decodes filename and describes its content.
func Stat(filename string) (*Info, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file failure: %w", err)
	}

	buf, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", filename, err)
	}

	return &Info{
		Filename:    filename,
		Count:       buf.Count(),
		PayloadSize: uint64(len(buf.Bytes())),
		FileSize:    uint64(len(data)),
		Digest:      sha256.Sum256(data),
	}, nil
}
