package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/output"
)

var treeCmd = &cobra.Command{
	Use:   "tree [reference]",
	Short: "Print the submodule tree of a configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd.Context(), args)
		if err != nil {
			return err
		}
		return output.WriteTree(cmd.OutOrStdout(), c)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
