package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chunkinator/astroneer/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration before deployment",
	Long: `Validate the Astroneer configuration file.

Checks:
  - YAML or TOML syntax is valid
  - Field values are in range
  - Hydration files exist (file source only)

Examples:
  astroneer validate
  astroneer validate --config /etc/astroneer/astroneer.yaml`,
	RunE: runValidate,
}

var validateCheckFiles bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateCheckFiles, "check-files", true, "check that hydration CSV files exist")
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Printf("Validating %s...\n\n", cfgFile)

	// Check file exists
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Printf("  %s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}
	fmt.Printf("  %s Config file exists\n", checkMark)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Printf("  %s Config valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Printf("  %s Config valid\n", checkMark)

	// Show config summary
	fmt.Printf("  %s Listen: %s%s\n", checkMark, cfg.Server.Addr(), cfg.Server.BasePath)
	fmt.Printf("  %s Logging: %s (%s)\n", checkMark, cfg.Logging.Level, cfg.Logging.Format)

	if !cfg.Hydration.IsEnabled() {
		fmt.Printf("  %s Hydration: disabled\n", checkMark)
	} else if cfg.IsHydrationFromS3() {
		fmt.Printf("  %s Hydration: s3://%s/%s\n", checkMark, cfg.Hydration.S3.Bucket, cfg.Hydration.S3.Prefix)
	} else {
		fmt.Printf("  %s Hydration: %s (%d module files)\n", checkMark, cfg.Hydration.Dir, len(cfg.Hydration.Modules))
		if validateCheckFiles {
			checkHydrationFiles(cfg.Hydration)
		}
	}

	fmt.Println()
	fmt.Println("Configuration is valid.")
	return nil
}

func checkHydrationFiles(h config.HydrationConfig) {
	files := []string{h.ResourcesFile}
	for _, m := range h.Modules {
		files = append(files, m.File)
	}

	for _, f := range files {
		path := f
		if !filepath.IsAbs(path) {
			path = filepath.Join(h.Dir, f)
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("  %s %s\n", crossMark, path)
			fmt.Printf("      Error: %v\n", err)
			continue
		}
		fmt.Printf("  %s %s\n", checkMark, path)
	}
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
