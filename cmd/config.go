package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/arcanaland/grimoire/internal/catalog"
	"github.com/arcanaland/grimoire/internal/config"
	"github.com/arcanaland/grimoire/internal/source"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the grimoire configuration",
	Long:  `Commands for creating and changing the grimoire config file.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		configPath := config.GetConfigFilePath()

		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintln(out, "Config file already exists at:", configPath)
			return nil
		}

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		if err := os.MkdirAll(config.GetCacheDir(), 0755); err != nil {
			return fmt.Errorf("error creating cache directory: %w", err)
		}

		fmt.Fprintln(out, "Config file initialized at:", configPath)
		fmt.Fprintln(out, "Card art cache at:", config.GetCacheDir())
		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", config.GetConfigFilePath())
		return toml.NewEncoder(out).Encode(cfg)
	},
}

// configSetSourceCmd represents the config set-source command
var configSetSourceCmd = &cobra.Command{
	Use:   "set-source [api|snapshot] [path]",
	Short: "Set the default card source",
	Long: `Set-source selects where cards are loaded from by default. A snapshot
source takes an optional path; without one the bundled snapshot is used.

Examples:
  grimoire config set-source api
  grimoire config set-source snapshot ./cards.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		cfg.Source = args[0]
		cfg.SnapshotPath = ""
		if len(args) == 2 {
			if cfg.Source != config.SourceSnapshot {
				return fmt.Errorf("a path can only be given for the %s source", config.SourceSnapshot)
			}
			// Make sure the snapshot can be read before saving it as default
			if _, err := source.NewSnapshot(args[1], logger).Load(context.Background()); err != nil {
				return fmt.Errorf("not a valid snapshot: %w", err)
			}
			cfg.SnapshotPath = args[1]
		}

		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default source set to: %s\n", cfg.Source)
		return nil
	},
}

// configSetSortCmd represents the config set-sort command
var configSetSortCmd = &cobra.Command{
	Use:   "set-sort [asc|desc|none]",
	Short: "Set the sort order the card views start with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := catalog.ParseSortOrder(args[0])
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		switch order {
		case catalog.SortAscending:
			cfg.DefaultSort = "asc"
		case catalog.SortDescending:
			cfg.DefaultSort = "desc"
		default:
			cfg.DefaultSort = ""
		}

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default sort set to: %s\n", order)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetSourceCmd)
	configCmd.AddCommand(configSetSortCmd)
}
