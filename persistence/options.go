package persistence

import (
	"errors"

	"go.uber.org/zap"
)

type option struct {
	logger *zap.Logger
	// Whether to verify the free space of the target volume before writing.
	spaceCheck bool
}

func defaultOptions() *option {
	return &option{
		logger:     zap.NewNop(),
		spaceCheck: true,
	}
}

type OptionFunc func(*option) error

// WithLogger sets the logger used to report file operations.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` is required")
		}
		o.logger = logger
		return nil
	}
}

// WithoutSpaceCheck disables the free disk space check done before writing.
func WithoutSpaceCheck() OptionFunc {
	return func(o *option) error {
		o.spaceCheck = false
		return nil
	}
}

func applyOptions(opts []OptionFunc) (*option, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}
