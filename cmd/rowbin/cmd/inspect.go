package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/envelope"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show an envelope's header without unwrapping it",
	Long: `Show the header claims of a compression envelope without
decompressing or verifying the payload.

Example:
  rowbin inspect -i rows.rbe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath, _ := cmd.Flags().GetString("in")

		data, err := readInput(inPath)
		if err != nil {
			return err
		}

		info, err := envelope.Inspect(data)
		if err != nil {
			return err
		}

		cmd.Printf("version:       %d\n", info.Version)
		cmd.Printf("algorithm:     %s\n", info.Algorithm)
		cmd.Printf("original size: %d bytes\n", info.OriginalSize)
		cmd.Printf("payload size:  %d bytes\n", info.PayloadSize)
		cmd.Printf("envelope size: %d bytes\n", info.EnvelopeSize)
		cmd.Printf("crc32:         %08x\n", info.CRC32)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("in", "i", "", "Input envelope file (default stdin)")
}
