package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/output"
	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

var flagField string

var refCmd = &cobra.Command{
	Use:   "ref reference",
	Short: "Parse a config or element reference and print its fields",
	Long: `Parse a config reference (config, file, branch, http, https, glfs) or an
element reference (feature, release, hotfix, support) and print its fields.

Examples:
  flowconfig ref glfs://ghcr.io/acme/1.x/base
  flowconfig ref release://1.3 -o json
  flowconfig ref branch://develop --field branchName`,
	Args: cobra.ExactArgs(1),
	RunE: refRunE,
}

func init() {
	refCmd.Flags().StringVar(&flagField, "field", "", "print a single field")
	rootCmd.AddCommand(refCmd)
}

func refRunE(cmd *cobra.Command, args []string) error {
	ref, err := sdk.ParseRef(args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if flagField != "" {
		return output.WriteField(w, ref.Fields, flagField)
	}
	return writeFields(w, ref.Fields)
}
