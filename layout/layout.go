// Package layout describes records made of named, fixed-width fields and
// packs them into bit buffers in field order.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spacemeshos/bitbuffer/bitstream"
)

var (
	ErrValueCount    = errors.New("number of values does not match the number of fields")
	ErrInvalidLayout = errors.New("invalid layout")
)

// Field is a named group of bits within a record.
type Field struct {
	Name  string `yaml:"name"`
	Width uint   `yaml:"width"`
}

// Layout is an ordered list of fields.
type Layout struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// ValueOverflowError is returned when a value needs more bits than its field holds.
type ValueOverflowError struct {
	Field Field
	Value bitstream.Uint128
}

func (err *ValueOverflowError) Error() string {
	return fmt.Sprintf("value %v of field `%v` does not fit in %d bits", err.Value, err.Field.Name, err.Field.Width)
}

func (l *Layout) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidLayout)
	}
	if len(l.Fields) == 0 {
		return fmt.Errorf("%w `%v`: no fields", ErrInvalidLayout, l.Name)
	}

	names := make(map[string]struct{}, len(l.Fields))
	for i, f := range l.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w `%v`: field %d has no name", ErrInvalidLayout, l.Name, i)
		}
		if _, ok := names[f.Name]; ok {
			return fmt.Errorf("%w `%v`: duplicate field `%v`", ErrInvalidLayout, l.Name, f.Name)
		}
		names[f.Name] = struct{}{}

		if f.Width == 0 || f.Width > bitstream.MaxWidth {
			return fmt.Errorf("%w `%v`: field `%v`: %w; expected: 1..%d, given: %d",
				ErrInvalidLayout, l.Name, f.Name, bitstream.ErrInvalidWidth, bitstream.MaxWidth, f.Width)
		}
	}

	return nil
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	return &Layout{Name: l.Name, Fields: slices.Clone(l.Fields)}
}

// Width returns the total number of bits of a record.
func (l *Layout) Width() uint64 {
	var total uint64
	for _, f := range l.Fields {
		total += uint64(f.Width)
	}
	return total
}

// Encode writes one record. The layout and all values are checked before the
// first bit is written, so a failed Encode leaves w unchanged.
func (l *Layout) Encode(w *bitstream.BitWriter, values []bitstream.Uint128) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if len(values) != len(l.Fields) {
		return fmt.Errorf("%w; expected: %d, given: %d", ErrValueCount, len(l.Fields), len(values))
	}
	for i, f := range l.Fields {
		if uint(values[i].Len()) > f.Width {
			return &ValueOverflowError{Field: f, Value: values[i]}
		}
	}

	for i, f := range l.Fields {
		if err := w.WriteBits(values[i], f.Width); err != nil {
			return fmt.Errorf("field `%v`: %w", f.Name, err)
		}
	}

	return nil
}

// Decode reads one record.
func (l *Layout) Decode(r *bitstream.BitReader) ([]bitstream.Uint128, error) {
	values := make([]bitstream.Uint128, len(l.Fields))
	for i, f := range l.Fields {
		val, err := r.ReadBits(f.Width)
		if err != nil {
			return nil, fmt.Errorf("field `%v`: %w", f.Name, err)
		}
		values[i] = val
	}

	return values, nil
}
