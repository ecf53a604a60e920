package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/archive"
)

// archiveCmd groups the archive subcommands
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the local envelope archive",
	Long: `Manage the local envelope archive. Envelopes are stored in a pebble
database and addressed by ksuid.

Examples:
  rowbin archive store -i rows.rbe
  rowbin archive fetch <id> -o rows.rbe
  rowbin archive ls
  rowbin archive rm <id>`,
}

// openArchive opens the archive named by --archive-dir, falling back to the
// configured directory.
func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	dir, _ := cmd.Flags().GetString("archive-dir")
	if dir == "" {
		cfg, err := loadToolConfig(cmd)
		if err != nil {
			return nil, err
		}
		dir = cfg.ArchiveDir
	}
	return archive.Open(dir)
}

var archiveStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Store an envelope in the archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath, _ := cmd.Flags().GetString("in")

		data, err := readInput(inPath)
		if err != nil {
			return err
		}

		s, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.Create(data)
		if err != nil {
			return err
		}

		cmd.Printf("%s\n", id)
		return nil
	},
}

var archiveFetchCmd = &cobra.Command{
	Use:   "fetch <id>",
	Short: "Fetch an archived envelope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		id, err := archive.ParseID(args[0])
		if err != nil {
			return err
		}

		s, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		data, err := s.Read(id)
		if err != nil {
			return err
		}

		return writeOutput(outPath, data)
	},
}

var archiveRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an archived envelope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := archive.ParseID(args[0])
		if err != nil {
			return err
		}

		s, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		return s.Delete(id)
	},
}

var archiveLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List archived envelopes",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.List()
		if err != nil {
			return err
		}

		for _, e := range entries {
			cmd.Printf("%s\t%s\t%d -> %d bytes\n", e.ID, e.Algorithm, e.OriginalSize, e.PayloadSize)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.PersistentFlags().String("archive-dir", "", "Archive directory (default from config)")

	archiveCmd.AddCommand(archiveStoreCmd)
	archiveStoreCmd.Flags().StringP("in", "i", "", "Input envelope file (default stdin)")

	archiveCmd.AddCommand(archiveFetchCmd)
	archiveFetchCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")

	archiveCmd.AddCommand(archiveRmCmd)
	archiveCmd.AddCommand(archiveLsCmd)
}
