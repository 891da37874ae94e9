package persistence

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/bytefmt"
	"github.com/natefinch/atomic"
	"github.com/ricochet2200/go-disk-usage/du"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitbuffer/bitstream"
)

const (
	OwnerReadWrite     = os.FileMode(0o600)
	OwnerReadWriteExec = os.FileMode(0o700)
)

// InsufficientSpaceError is returned when the target volume cannot hold the
// encoded buffer.
type InsufficientSpaceError struct {
	Dir       string
	Required  uint64
	Available uint64
}

func (err *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("not enough disk space in %v; required: %v, available: %v",
		err.Dir, bytefmt.ByteSize(err.Required), bytefmt.ByteSize(err.Available))
}

// AvailableSpace returns the free space, in bytes, of the volume holding path.
func AvailableSpace(path string) uint64 {
	usage := du.NewDiskUsage(path)
	return usage.Available()
}

// SaveFile encodes buf into filename. The file is replaced atomically: it
// either holds the complete new encoding or is left as it was.
func SaveFile(filename string, buf *bitstream.BitBuffer, opts ...OptionFunc) error {
	o, err := applyOptions(opts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, OwnerReadWriteExec); err != nil {
		return fmt.Errorf("dir creation failure: %w", err)
	}

	size := EncodedLen(buf)
	if o.spaceCheck {
		if available := AvailableSpace(dir); size > available {
			return &InsufficientSpaceError{Dir: dir, Required: size, Available: available}
		}
	}

	var w bytes.Buffer
	w.Grow(int(size))
	if err := Encode(&w, buf); err != nil {
		return fmt.Errorf("serialization failure: %w", err)
	}

	if err := atomic.WriteFile(filename, &w); err != nil {
		return fmt.Errorf("write to disk failure: %w", err)
	}

	o.logger.Debug("bit buffer saved",
		zap.String("file", filename),
		zap.Uint64("bits", buf.Count()),
		zap.String("size", bytefmt.ByteSize(size)),
	)
	return nil
}
