package cmd

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/specfile"
	"github.com/ssorent/rowbin/pkg/textrec"
)

// unpackCmd represents the unpack command
var unpackCmd = &cobra.Command{
	Use:   "unpack",
	Short: "Unpack binary rows into text records",
	Long: `Unpack fixed-size binary rows back into line-formatted records
using the same field spec they were packed with.

Example:
  rowbin unpack -s spec.yaml -i rows.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specPath, _ := cmd.Flags().GetString("spec")
		inPath, _ := cmd.Flags().GetString("in")
		outPath, _ := cmd.Flags().GetString("out")

		spec, err := specfile.Load(specPath)
		if err != nil {
			return err
		}

		data, err := readInput(inPath)
		if err != nil {
			return err
		}

		records, err := spec.Decode(data)
		if err != nil {
			return err
		}

		var out bytes.Buffer
		if err := textrec.Write(&out, spec, records); err != nil {
			return err
		}

		return writeOutput(outPath, out.Bytes())
	},
}

func init() {
	rootCmd.AddCommand(unpackCmd)
	unpackCmd.Flags().StringP("spec", "s", "", "Spec file (required)")
	unpackCmd.Flags().StringP("in", "i", "", "Input rows file (default stdin)")
	unpackCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	if err := unpackCmd.MarkFlagRequired("spec"); err != nil {
		panic(err)
	}
}
