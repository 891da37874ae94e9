package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitbuffer/persistence"
)

// decodeCmd represents the decode command.
var decodeCmd = &cobra.Command{
	Use:   "decode FILE",
	Short: "Decode one record from a saved buffer",
	Long: `Decode loads a saved buffer, reads one record with the selected layout
and prints each field with its width and value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := cfg.ResolveLayout()
		if err != nil {
			return err
		}

		r, err := persistence.LoadReader(args[0], persistence.WithLogger(logger))
		if err != nil {
			return err
		}
		values, err := l.Decode(r)
		if err != nil {
			return fmt.Errorf("layout `%v`: %w", l.Name, err)
		}

		data := make([][]string, 0, len(values))
		for i, f := range l.Fields {
			data = append(data, []string{
				f.Name,
				strconv.FormatUint(uint64(f.Width), 10),
				values[i].String(),
				"0x" + values[i].Big().Text(16),
			})
		}

		out := cmd.OutOrStdout()
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"field", "width", "value", "hex"})
		table.SetBorder(true)
		table.AppendBulk(data)
		table.Render()

		if n := r.Remaining(); n > 0 {
			fmt.Fprintf(out, "%d trailing bits not decoded\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
