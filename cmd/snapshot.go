package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/source"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot [path]",
	Short: "Save the card collection to a JSON or YAML file",
	Long: `Snapshot reads the card collection once and writes it to path. The file
format follows the extension: .json, or .yaml and .yml.

A snapshot can be used offline with --snapshot or by setting snapshot_path
in the config file.

Examples:
  grimoire snapshot ./cards.json
  grimoire snapshot --source api ~/cards.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		src, _, err := openSource(cmd)
		if err != nil {
			return err
		}

		res := source.Fetch(context.Background(), src)
		if res.Err != nil {
			logger.Error("Request Failed", zap.Error(res.Err))
			return res.Err
		}

		if err := source.Write(path, res.Cards); err != nil {
			return fmt.Errorf("error writing snapshot: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d cards from %s to %s\n", len(res.Cards), src.Name(), path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(snapshotCmd)
	addSourceFlags(snapshotCmd)
}
