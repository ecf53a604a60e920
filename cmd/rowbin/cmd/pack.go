package cmd

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/specfile"
	"github.com/ssorent/rowbin/pkg/textrec"
)

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack text records into binary rows",
	Long: `Pack line-formatted records into fixed-size binary rows using a
field spec.

Records arrive one per line as name=value pairs:

  status=2 vip=true tries=5 amount=12345 tag=010203

Example:
  rowbin pack -s spec.yaml -i records.txt -o rows.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specPath, _ := cmd.Flags().GetString("spec")
		inPath, _ := cmd.Flags().GetString("in")
		outPath, _ := cmd.Flags().GetString("out")

		spec, err := specfile.Load(specPath)
		if err != nil {
			return err
		}

		input, err := readInput(inPath)
		if err != nil {
			return err
		}

		records, err := textrec.Read(bytes.NewReader(input), spec)
		if err != nil {
			return err
		}

		data, err := spec.Encode(records)
		if err != nil {
			return err
		}

		return writeOutput(outPath, data)
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
	packCmd.Flags().StringP("spec", "s", "", "Spec file (required)")
	packCmd.Flags().StringP("in", "i", "", "Input records file (default stdin)")
	packCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	if err := packCmd.MarkFlagRequired("spec"); err != nil {
		panic(err)
	}
}
