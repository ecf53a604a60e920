package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize rowbin configuration",
	Long: `Initialize the rowbin configuration file with a generated API key.

This command will:
- Create the config directory
- Write a config file with secure permissions
- Generate a random API key for the REST API

Examples:
  rowbin init
  rowbin init --archive-dir /var/lib/rowbin/archive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		archiveDir, _ := cmd.Flags().GetString("archive-dir")
		force, _ := cmd.Flags().GetBool("force")

		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(path) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", path)
			return nil
		}

		cfg, err := config.BootstrapConfig(path, archiveDir)
		if err != nil {
			return err
		}

		cmd.Printf("Wrote config to %s\n", path)
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		cmd.Printf("Archive directory: %s\n", cfg.ArchiveDir)
		cmd.Printf("\nStart the server with:\n")
		cmd.Printf("  rowbin serve --config %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("archive-dir", "", "Archive directory to record in the config")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config")
}
