package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/grimoire/internal/catalog"
	"github.com/arcanaland/grimoire/internal/session"
	"github.com/arcanaland/grimoire/internal/source"
	"github.com/arcanaland/grimoire/internal/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive card browser",
	Long: `Browse opens the interactive card browser. The home view asks for your
name; submitting it opens the cards view where you can search, filter by
type and color and sort the collection.

With --watch and a snapshot source the cards view reloads whenever the
snapshot file changes.

Examples:
  grimoire browse
  grimoire browse --route /cards-page
  grimoire browse --snapshot ./cards.json --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, cfg, err := openSource(cmd)
		if err != nil {
			return err
		}

		sortOrder, err := catalog.ParseSortOrder(cfg.DefaultSort)
		if err != nil {
			return err
		}

		store := session.NewStore()
		sess := &session.Session{}
		if err := sess.Restore(store); err != nil {
			logger.Warn("Could not restore session", zap.Error(err))
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var changes <-chan struct{}
		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			snap, ok := src.(*source.Snapshot)
			if !ok || snap.Path() == "" {
				return fmt.Errorf("--watch needs a snapshot file, set one with --snapshot")
			}
			changes, err = source.Watch(ctx, snap.Path(), logger)
			if err != nil {
				return fmt.Errorf("error watching snapshot: %w", err)
			}
		}

		route, _ := cmd.Flags().GetString("route")
		if route == "" && sess.Name != "" {
			route = tui.RouteCards
		}

		m := tui.NewModel(tui.Options{
			Session: sess,
			Store:   store,
			Source:  src,
			Logger:  logger,
			Sort:    sortOrder,
			Changes: changes,
			Route:   route,
		})

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running browser: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)

	browseCmd.Flags().Bool("watch", false, "Reload the cards when the snapshot file changes")
	browseCmd.Flags().String("route", "", "First view to open, for example / or /cards-page")
	addSourceFlags(browseCmd)
}
