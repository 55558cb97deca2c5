package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [reference...]",
	Short: "Check that configuration documents are valid",
	Long: `Check that each referenced configuration document, including every nested
submodule document, matches a supported schema version. Every reference is
checked; the command fails if any is invalid.`,
	RunE: validateRunE,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRunE(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"config://"}
	}

	failed := 0
	for _, uri := range args {
		c, err := loadConfig(cmd.Context(), []string{uri})
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", uri, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", uri, c.Identifier)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents invalid", failed, len(args))
	}
	return nil
}
