package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitbuffer/layout"
)

// layoutsCmd represents the layouts command.
var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List the available layouts",
	Long: `Lists the built-in layouts and, if one is configured, the layout file,
with their number of fields and total width in bits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := layout.Builtins()
		if cfg.LayoutFile != "" {
			l, err := cfg.ResolveLayout()
			if err != nil {
				return err
			}
			all = append(all, l)
		}

		data := make([][]string, 0, len(all))
		for _, l := range all {
			data = append(data, []string{
				l.Name,
				strconv.Itoa(len(l.Fields)),
				strconv.FormatUint(l.Width(), 10),
			})
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"layout", "fields", "bits"})
		table.SetBorder(true)
		table.AppendBulk(data)
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}
