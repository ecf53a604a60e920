package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/rowcodec"
	"github.com/ssorent/rowbin/pkg/specfile"
)

// sizeCmd represents the size command
var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Show the row layout of a spec",
	Long: `Show the fields of a spec and the fixed row size they produce.

Example:
  rowbin size -s spec.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specPath, _ := cmd.Flags().GetString("spec")

		spec, err := specfile.Load(specPath)
		if err != nil {
			return err
		}

		for _, f := range spec.Fields {
			switch f.Type.Kind {
			case rowcodec.KindUint, rowcodec.KindInt:
				cmd.Printf("%-16s %s(%d bits)\n", f.Name, f.Type.Kind, f.Type.Bits)
			case rowcodec.KindBool:
				cmd.Printf("%-16s %s(1 bit)\n", f.Name, f.Type.Kind)
			case rowcodec.KindBytes:
				cmd.Printf("%-16s %s(%d bytes)\n", f.Name, f.Type.Kind, f.Type.Size)
			}
		}
		cmd.Printf("row size: %d bytes\n", spec.RowSize())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sizeCmd)
	sizeCmd.Flags().StringP("spec", "s", "", "Spec file (required)")
	if err := sizeCmd.MarkFlagRequired("spec"); err != nil {
		panic(err)
	}
}
