package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/envelope"
)

// wrapCmd represents the wrap command
var wrapCmd = &cobra.Command{
	Use:   "wrap",
	Short: "Wrap a payload in a compression envelope",
	Long: `Wrap a payload in a compression envelope. Each candidate algorithm
is tried and the smallest result wins; when compression does not save
enough bytes the payload is stored uncompressed.

Examples:
  rowbin wrap -i rows.bin -o rows.rbe
  rowbin wrap --algorithms zstd,s2 --min-gain 64 -i rows.bin -o rows.rbe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath, _ := cmd.Flags().GetString("in")
		outPath, _ := cmd.Flags().GetString("out")
		names, _ := cmd.Flags().GetStringSlice("algorithms")
		minGain, _ := cmd.Flags().GetInt("min-gain")

		cfg, err := loadToolConfig(cmd)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			names = cfg.Wrap.Algorithms
		}
		if !cmd.Flags().Changed("min-gain") {
			minGain = cfg.Wrap.MinGain
		}

		algs, err := envelope.ParseAlgorithms(names)
		if err != nil {
			return err
		}

		data, err := readInput(inPath)
		if err != nil {
			return err
		}

		wrapped, err := envelope.Wrap(data, envelope.Options{
			Algorithms: algs,
			MinGain:    minGain,
		})
		if err != nil {
			return err
		}

		return writeOutput(outPath, wrapped)
	},
}

func init() {
	rootCmd.AddCommand(wrapCmd)
	wrapCmd.Flags().StringP("in", "i", "", "Input payload file (default stdin)")
	wrapCmd.Flags().StringP("out", "o", "", "Output envelope file (default stdout)")
	wrapCmd.Flags().StringSliceP("algorithms", "a", nil, "Candidate algorithms in preference order (default from config)")
	wrapCmd.Flags().IntP("min-gain", "g", 0, "Minimum byte saving required to keep compression")
}
