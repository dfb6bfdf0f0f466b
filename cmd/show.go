package cmd

import (
	"context"
	"errors"
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/config"
	"github.com/arcanaland/grimoire/internal/present"
	"github.com/arcanaland/grimoire/internal/source"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display information about a specific card with ANSI art",
	Long: `Show displays detailed information about a card next to ANSI terminal art
rendered from the card image. Cards without an image get a card back.

With the api source the card is read from the single card endpoint next to
the configured api_url. With a snapshot source it is looked up by id in the
snapshot. Use --snapshot to read a snapshot file instead.

Examples:
  grimoire show 5f8287b1-5bb6-5f4c-ad17-316a40d5bb0c
  grimoire show --snapshot ./cards.yaml goblin-scout`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID := args[0]

		src, cfg, err := openSource(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		c, err := source.Find(ctx, src, cardID)
		if err != nil {
			if !errors.Is(err, source.ErrCardNotFound) {
				logger.Error("Request Failed", zap.Error(err))
			}
			return err
		}

		noArt, _ := cmd.Flags().GetBool("no-art")
		out := cmd.OutOrStdout()
		if noArt {
			fmt.Fprint(out, present.Card(c))
			return nil
		}

		artist := present.NewArtist(cfg.ArtWidth, cfg.ArtHeight, config.GetCacheDir(), logger)
		art, _ := artist.Render(ctx, c)

		info := present.Lines(c)
		info = append(info, "", colorize.CyanString("Source: ")+colorize.HiWhiteString("%s", src.Name()))

		fmt.Fprintln(out)
		fmt.Fprint(out, present.SideBySide(art, info, present.TerminalWidth()))
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("no-art", false, "Print the card details without ANSI art")
	addSourceFlags(showCmd)
}

