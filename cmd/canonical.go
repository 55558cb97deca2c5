package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

var flagStamp bool

var canonicalCmd = &cobra.Command{
	Use:   "canonical [reference]",
	Short: "Print the minimal canonical document of a configuration tree",
	Long: `Print the minimal canonical document of a configuration tree. Defaults and
shadow entries are left out. With --stamp, apiVersion is set to the newest
schema version in every nested document.

Output is YAML unless -o json is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: canonicalRunE,
}

func init() {
	canonicalCmd.Flags().BoolVar(&flagStamp, "stamp", false, "write the newest schema version into apiVersion")
	rootCmd.AddCommand(canonicalCmd)
}

func canonicalRunE(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd.Context(), args)
	if err != nil {
		return err
	}

	format := flagOutput
	if format == "" {
		format = "yaml"
	}
	doc, err := sdk.Canonical(c, format, flagStamp)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(doc)
	return err
}
