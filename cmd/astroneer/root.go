package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "astroneer",
	Short: "REST API for Astroneer modules and resources",
	Long: `Astroneer serves the game's crafting data over HTTP.

Modules, resources and planets are kept in memory and hydrated from
CSV files at startup.

Quick start:
  astroneer serve              # Hydrate from ./data and listen on :5000
  astroneer hydrate            # Dry-run the CSV load and print counts
  astroneer validate           # Validate configuration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set through the environment so config reloads keep it.
		if debug {
			return os.Setenv("ASTRO_DEBUG", "true")
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "astroneer.yaml", "config file path (YAML or .toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging and detailed error bodies")
}
