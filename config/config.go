package config

import (
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/bitbuffer/layout"
)

const (
	DefaultDataDirName    = "data"
	DefaultConfigFileName = "config.toml"
	DefaultLayout         = "ipv4-udp"
	DefaultLogLevel       = "info"

	// FileExt is appended to the record name when saving encoded buffers.
	FileExt = ".bits"
)

var (
	DefaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), "bitbuffer")
	DefaultDataDir    = filepath.Join(DefaultHomeDir, DefaultDataDirName)
	DefaultConfigFile = filepath.Join(DefaultHomeDir, DefaultConfigFileName)
)

type Config struct {
	DataDir  string `mapstructure:"datadir"`
	LogLevel string `mapstructure:"log-level"`

	// Layout names a built-in layout. It is ignored when LayoutFile is set.
	Layout     string `mapstructure:"layout"`
	LayoutFile string `mapstructure:"layout-file"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
		Layout:   DefaultLayout,
	}
}

func (cfg *Config) Validate() error {
	if cfg.DataDir == "" {
		return fmt.Errorf("invalid `DataDir`; expected: a directory path, given: %q", cfg.DataDir)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid `LogLevel`; expected: debug, info, warn, error, dpanic, panic or fatal, given: %q", cfg.LogLevel)
	}

	if cfg.LayoutFile == "" {
		if _, ok := layout.Builtin(cfg.Layout); !ok {
			return fmt.Errorf("invalid `Layout`; expected: one of %v, given: %q", builtinNames(), cfg.Layout)
		}
	}

	return nil
}

// Level returns the parsed log level.
func (cfg *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// ResolveLayout returns the layout file when one is configured, otherwise the
// named built-in layout.
func (cfg *Config) ResolveLayout() (*layout.Layout, error) {
	if cfg.LayoutFile != "" {
		return layout.LoadFile(smutil.GetCanonicalPath(cfg.LayoutFile))
	}

	l, ok := layout.Builtin(cfg.Layout)
	if !ok {
		return nil, fmt.Errorf("unknown layout %q", cfg.Layout)
	}
	return l, nil
}

// RecordPath returns the path a record with the given name is saved to.
func (cfg *Config) RecordPath(name string) string {
	return filepath.Join(cfg.DataDir, name+FileExt)
}

func builtinNames() []string {
	all := layout.Builtins()
	names := make([]string, 0, len(all))
	for _, l := range all {
		names = append(names, l.Name)
	}
	return names
}
