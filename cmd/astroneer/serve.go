package main

import (
	"github.com/chunkinator/astroneer/bootstrap"
	"github.com/spf13/cobra"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Hydrate the catalog and start the HTTP server",
	Long: `Start the Astroneer API server.

The server will:
  - Load configuration from astroneer.yaml (or --config), falling back to defaults
  - Hydrate modules and resources from the configured CSV files or S3 bucket
  - Serve the catalog under the base path (default /astro/v1)

Environment variables:
  ASTRO_SERVER_PORT         - Server port (default: 5000)
  ASTRO_BASE_PATH           - API base path (default: /astro/v1)
  ASTRO_HYDRATION_DIR       - Directory holding the CSV files (default: data)
  ASTRO_HYDRATION_SOURCE    - file or s3
  ASTRO_LOG_LEVEL           - Log level: debug, info, warn, error
  ASTRO_DEBUG               - Debug mode

Examples:
  astroneer serve
  astroneer serve --config /etc/astroneer/astroneer.toml
  astroneer serve --debug --hot-reload=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := bootstrap.New(bootstrap.Options{
		ConfigPath: cfgFile,
		HotReload:  hotReload,
		Version:    version,
	})
	if err != nil {
		return err
	}

	// Run (blocks until shutdown)
	return app.Run()
}
