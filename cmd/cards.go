package cmd

import (
	"context"
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/catalog"
	"github.com/arcanaland/grimoire/internal/present"
	"github.com/arcanaland/grimoire/internal/session"
	"github.com/arcanaland/grimoire/internal/source"
)

// cardsCmd represents the cards command
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List cards matching a search, types, colors and sort order",
	Long: `Cards loads the card collection once, applies the given criteria and
prints the matching cards.

The search matches card names and rules text, ignoring case. Type and color
filters keep cards having at least one of the selected values; cards without
type or color data are dropped as soon as such a filter is set.

Examples:
  grimoire cards --search goblin
  grimoire cards -t Creature -t Instant --sort asc
  grimoire cards -c Blue --snapshot ./cards.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, cfg, err := openSource(cmd)
		if err != nil {
			return err
		}

		crit := catalog.Criteria{}
		crit.Search, _ = cmd.Flags().GetString("search")
		crit.Types, _ = cmd.Flags().GetStringArray("type")
		crit.Colors, _ = cmd.Flags().GetStringArray("color")

		sortFlag := cfg.DefaultSort
		if cmd.Flags().Changed("sort") {
			sortFlag, _ = cmd.Flags().GetString("sort")
		}
		crit.Sort, err = catalog.ParseSortOrder(sortFlag)
		if err != nil {
			return err
		}

		sess := &session.Session{}
		if err := sess.Restore(session.NewStore()); err != nil {
			logger.Warn("Could not restore session", zap.Error(err))
		}

		res := source.Fetch(context.Background(), src)
		if res.Err != nil {
			logger.Error("Request Failed", zap.Error(res.Err))
			return res.Err
		}
		sess.Cards = res.Cards
		logger.Debug("Loaded cards", zap.String("source", src.Name()), zap.Int("count", len(res.Cards)))

		cat := catalog.New(sess.Cards)
		cat.Apply(crit)

		out := cmd.OutOrStdout()
		if sess.Name != "" {
			fmt.Fprintf(out, "Hello, %s\n\n", sess.Name)
		}

		short, _ := cmd.Flags().GetBool("short")
		for _, c := range cat.Display() {
			if short {
				fmt.Fprintln(out, present.Summary(c))
				continue
			}
			fmt.Fprintln(out, present.Card(c))
		}

		fmt.Fprintf(out, "Cards found: %s\n", colorize.HiWhiteString("%d", cat.Len()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cardsCmd)

	cardsCmd.Flags().StringP("search", "s", "", "Only show cards whose name or text contains this term")
	cardsCmd.Flags().StringArrayP("type", "t", nil, "Only show cards of this type (repeatable)")
	cardsCmd.Flags().StringArrayP("color", "c", nil, "Only show cards of this color (repeatable)")
	cardsCmd.Flags().String("sort", "", "Sort cards alphabetically: asc or desc")
	cardsCmd.Flags().Bool("short", false, "Print one line per card")
	addSourceFlags(cardsCmd)
}
