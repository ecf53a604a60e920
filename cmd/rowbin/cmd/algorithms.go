package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssorent/rowbin/pkg/envelope"
)

// algorithmsCmd represents the algorithms command
var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List available compression algorithms",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, a := range envelope.Available() {
			cmd.Printf("%d\t%s\n", uint8(a), a)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(algorithmsCmd)
}
