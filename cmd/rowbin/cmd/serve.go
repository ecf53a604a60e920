package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/api"
	"github.com/ssorent/rowbin/pkg/archive"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the rowbin REST API server. Protected routes require the
configured API key in the X-API-Key header; /metrics is left open for
Prometheus scraping.

Examples:
  rowbin serve
  rowbin serve --port 9090 --api-key mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadToolConfig(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if cmd.Flags().Changed("archive-dir") {
			cfg.ArchiveDir, _ = cmd.Flags().GetString("archive-dir")
		}

		if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
			return fmt.Errorf("no API key configured: run 'rowbin init' or pass --api-key")
		}

		store, err := archive.Open(cfg.ArchiveDir)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer store.Close()

		return api.StartServer(store, api.ServerConfig{
			Port:       cfg.Port,
			Bind:       cfg.Bind,
			APIKey:     cfg.Security.APIKey,
			ArchiveDir: cfg.ArchiveDir,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key for authentication")
	serveCmd.Flags().String("archive-dir", "", "Archive directory")
}
