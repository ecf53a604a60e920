package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/envelope"
)

// unwrapCmd represents the unwrap command
var unwrapCmd = &cobra.Command{
	Use:   "unwrap",
	Short: "Unwrap a compression envelope",
	Long: `Unwrap a compression envelope, restoring the original payload.
The payload size and checksum recorded in the header are verified;
corrupted envelopes are rejected.

Example:
  rowbin unwrap -i rows.rbe -o rows.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath, _ := cmd.Flags().GetString("in")
		outPath, _ := cmd.Flags().GetString("out")

		data, err := readInput(inPath)
		if err != nil {
			return err
		}

		payload, md, err := envelope.Unwrap(data)
		if err != nil {
			return err
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cmd.PrintErrf("algorithm: %s\n", md.Algorithm)
			cmd.PrintErrf("original:  %d bytes\n", md.OriginalSize)
			cmd.PrintErrf("payload:   %d bytes\n", md.CompressedSize)
		}

		return writeOutput(outPath, payload)
	},
}

func init() {
	rootCmd.AddCommand(unwrapCmd)
	unwrapCmd.Flags().StringP("in", "i", "", "Input envelope file (default stdin)")
	unwrapCmd.Flags().StringP("out", "o", "", "Output payload file (default stdout)")
	unwrapCmd.Flags().BoolP("verbose", "v", false, "Print envelope metadata to stderr")
}
