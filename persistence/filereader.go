package persistence

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/spacemeshos/bitbuffer/bitstream"
)

// LoadFile decodes the buffer stored in filename.
func LoadFile(filename string, opts ...OptionFunc) (*bitstream.BitBuffer, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for bit buffer reader: %w", err)
	}
	defer file.Close()

	buf, err := Decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", filename, err)
	}

	o.logger.Debug("bit buffer loaded",
		zap.String("file", filename),
		zap.Uint64("bits", buf.Count()),
	)
	return buf, nil
}

// LoadReader returns a reader positioned at the first bit stored in filename.
func LoadReader(filename string, opts ...OptionFunc) (*bitstream.BitReader, error) {
	buf, err := LoadFile(filename, opts...)
	if err != nil {
		return nil, err
	}
	return bitstream.NewReader(buf), nil
}
