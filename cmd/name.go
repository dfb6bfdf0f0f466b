package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/grimoire/internal/session"
)

// nameCmd represents the name command
var nameCmd = &cobra.Command{
	Use:   "name [display_name]",
	Short: "Show or set your display name",
	Long: `Name prints the display name used to greet you in the card browser.
With an argument it validates the name and stores it for later sessions.

A name must start with an uppercase letter and be at least 3 characters long.

Examples:
  grimoire name
  grimoire name Jace`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := session.NewStore()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			name, ok, err := store.LoadName()
			if err != nil {
				return fmt.Errorf("error reading state: %w", err)
			}
			if !ok {
				fmt.Fprintln(out, "No name set. Run 'grimoire name <display_name>' to set one.")
				return nil
			}
			fmt.Fprintln(out, name)
			return nil
		}

		name := args[0]
		if err := session.ValidateName(name); err != nil {
			return err
		}
		if err := store.SaveName(name); err != nil {
			return fmt.Errorf("error saving name: %w", err)
		}
		logger.Debug("Saved display name")
		fmt.Fprintf(out, "Hello, %s\n", name)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(nameCmd)
}
