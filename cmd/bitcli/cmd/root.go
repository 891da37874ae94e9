package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/bitbuffer/config"
)

var (
	// Version is the version of the binary.
	Version string

	// Commit is the commit hash of the binary.
	Commit string

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bitcli",
	Short: "Pack fixed-width fields into bit buffers",
	Long: `bitcli encodes records of fixed-width fields into MSB-first bit buffers,
saves them to the data directory and decodes them back.
Field widths come from a built-in layout or a YAML layout file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = newLogger(cfg.Level())
		if err != nil {
			return fmt.Errorf("failed to initialize zap logger: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	setFlags(rootCmd.PersistentFlags())
}

func setFlags(flags *pflag.FlagSet) {
	def := config.DefaultConfig()

	flags.String("config", config.DefaultConfigFile, "Path to configuration file")
	flags.String("datadir", def.DataDir, "Directory encoded records are saved to")
	flags.String("log-level", def.LogLevel, "log level (debug, info, warn, error, dpanic, panic, fatal)")
	flags.String("layout", def.Layout, "Name of the built-in layout to use")
	flags.String("layout-file", def.LayoutFile, "Path to a YAML layout file; overrides --layout")
}

// loadConfig reads the config file and applies flags on top of it. Flags set
// on the command line win over the file, which wins over the defaults.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	vip := viper.New()
	if err := vip.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	fileLocation, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	vip.SetConfigFile(smutil.GetCanonicalPath(fileLocation))
	if err := vip.ReadInConfig(); err != nil {
		// A missing default config file is not an error.
		if flags.Changed("config") || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	c := config.DefaultConfig()
	if err := vip.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c.DataDir = smutil.GetCanonicalPath(c.DataDir)

	return c, nil
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapCfg.Build()
}
