package main

import (
	"context"
	"fmt"

	"github.com/chunkinator/astroneer/adapters/memory"
	"github.com/chunkinator/astroneer/bootstrap"
	"github.com/chunkinator/astroneer/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var hydrateCmd = &cobra.Command{
	Use:   "hydrate",
	Short: "Load the CSV dataset without serving it",
	Long: `Run the startup hydration against an empty in-memory catalog and print
what would be loaded. Useful for checking data files before a deploy.

Examples:
  astroneer hydrate
  astroneer hydrate --strict
  ASTRO_HYDRATION_DIR=./testdata astroneer hydrate`,
	RunE: runHydrate,
}

var hydrateStrict bool

func init() {
	rootCmd.AddCommand(hydrateCmd)

	hydrateCmd.Flags().BoolVar(&hydrateStrict, "strict", false, "fail on duplicate names")
}

func runHydrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if hydrateStrict {
		cfg.Hydration.Strict = true
	}

	ctx := context.Background()
	src, err := bootstrap.NewSeedSource(ctx, cfg.Hydration)
	if err != nil {
		return err
	}

	logger := bootstrap.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if !cfg.Debug {
		logger = zerolog.Nop()
	}

	store := memory.NewCatalogStore()
	fmt.Printf("Hydrating from %s...\n\n", src.Describe())

	stats, err := bootstrap.NewLoader(cfg.Hydration, src, store, logger, nil).Load(ctx)
	if err != nil {
		fmt.Printf("  %s Hydration\n", crossMark)
		return err
	}

	fmt.Printf("  %s Modules:    %d\n", checkMark, stats.Modules)
	fmt.Printf("  %s Resources:  %d\n", checkMark, stats.Resources)
	if stats.Duplicates > 0 {
		fmt.Printf("  %s Duplicates: %d (skipped)\n", crossMark, stats.Duplicates)
	}
	if stats.Skipped > 0 {
		fmt.Printf("  %s Malformed rows: %d (skipped)\n", crossMark, stats.Skipped)
	}
	if stats.Missing > 0 {
		fmt.Printf("  %s Missing files: %d\n", crossMark, stats.Missing)
	}
	return nil
}
