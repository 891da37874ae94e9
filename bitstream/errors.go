package bitstream

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange     = errors.New("bit range out of bounds")
	ErrInvalidWidth   = errors.New("invalid field width")
	ErrLengthMismatch = errors.New("bit count and storage length mismatch")
)

// OutOfRangeError reports a read of Width bits at Index from a buffer holding
// only Count bits.
type OutOfRangeError struct {
	Index uint64
	Width uint
	Count uint64
}

func (err *OutOfRangeError) Error() string {
	return fmt.Sprintf("%v: index: %d, width: %d, count: %d", ErrOutOfRange, err.Index, err.Width, err.Count)
}

func (err *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

func invalidWidth(width, limit uint) error {
	return fmt.Errorf("%w; expected: 1..%d, given: %d", ErrInvalidWidth, limit, width)
}

type lengthMismatchError struct {
	count  uint64
	length int
}

func (err *lengthMismatchError) Error() string {
	return fmt.Sprintf("%v; expected: %d bytes for %d bits, given: %d",
		ErrLengthMismatch, NumBytes(err.count), err.count, err.length)
}

func (err *lengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}
