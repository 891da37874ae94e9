package cmd

import (
	"context"
	"encoding/hex"
	"runtime"
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/bitbuffer/persistence"
)

// inspectCmd represents the inspect command.
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Print size and digest of saved buffers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := statFiles(cmd.Context(), args)
		if err != nil {
			return err
		}

		data := make([][]string, 0, len(infos))
		for _, info := range infos {
			data = append(data, []string{
				info.Filename,
				strconv.FormatUint(info.Count, 10),
				bytefmt.ByteSize(info.FileSize),
				strconv.FormatUint(info.TrailingBytes(), 10),
				hex.EncodeToString(info.Digest[:]),
			})
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"file", "bits", "size", "trailing", "sha256"})
		table.SetBorder(true)
		table.AppendBulk(data)
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// statFiles stats all files concurrently. Results keep the order of filenames.
func statFiles(ctx context.Context, filenames []string) ([]*persistence.Info, error) {
	infos := make([]*persistence.Info, len(filenames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			info, err := persistence.Stat(filename)
			if err != nil {
				return err
			}
			infos[i] = info
			logger.Debug("inspected file", zap.String("file", info.Filename), zap.Uint64("bits", info.Count))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return infos, nil
}
