package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/grimoire/internal/config"
	"github.com/arcanaland/grimoire/internal/source"
)

// addSourceFlags registers the flags that pick where cards come from
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "Card source: api or snapshot (default from config)")
	cmd.Flags().String("snapshot", "", "Read cards from this JSON or YAML snapshot (implies --source snapshot)")
}

// loadConfig loads the config file and applies the source flags of cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("source"); f != nil && f.Changed {
		cfg.Source = f.Value.String()
	}
	if f := cmd.Flags().Lookup("snapshot"); f != nil && f.Changed {
		cfg.Source = config.SourceSnapshot
		cfg.SnapshotPath = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSource returns the card source selected by config and flags
func openSource(cmd *cobra.Command) (source.Source, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	src, err := source.New(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening card source: %w", err)
	}
	return src, cfg, nil
}
