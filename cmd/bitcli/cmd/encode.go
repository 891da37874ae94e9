package cmd

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"lukechampine.com/uint128"

	"github.com/spacemeshos/bitbuffer/bitstream"
	"github.com/spacemeshos/bitbuffer/persistence"
)

// encodeCmd represents the encode command.
var encodeCmd = &cobra.Command{
	Use:   "encode NAME VALUE...",
	Short: "Encode one record and save it to the data directory",
	Long: `Encode writes one value per layout field, in field order, and saves the
resulting buffer to DATADIR/NAME.bits.
Values are unsigned integers in decimal or with a 0x, 0b or 0o prefix.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := cfg.ResolveLayout()
		if err != nil {
			return err
		}

		values := make([]bitstream.Uint128, 0, len(args)-1)
		for _, arg := range args[1:] {
			v, err := parseValue(arg)
			if err != nil {
				return err
			}
			values = append(values, v)
		}

		w := bitstream.NewWriter()
		if err := l.Encode(w, values); err != nil {
			return fmt.Errorf("layout `%v`: %w", l.Name, err)
		}

		filename := cfg.RecordPath(args[0])
		if err := persistence.SaveFile(filename, w.Buffer(), persistence.WithLogger(logger)); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%v: %d bits\n", filename, w.Position())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

// parseValue parses an unsigned integer of at most 128 bits. The base is
// taken from the prefix as in Go literals.
func parseValue(s string) (bitstream.Uint128, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return uint128.Zero, fmt.Errorf("invalid value %q", s)
	}
	if v.Sign() < 0 {
		return uint128.Zero, fmt.Errorf("invalid value %q; expected: unsigned", s)
	}
	if v.BitLen() > bitstream.MaxWidth {
		return uint128.Zero, fmt.Errorf("invalid value %q; expected: at most %d bits, given: %d", s, bitstream.MaxWidth, v.BitLen())
	}

	return uint128.FromBig(v), nil
}
