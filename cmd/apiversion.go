package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

var flagLatest bool

var apiVersionCmd = &cobra.Command{
	Use:   "api-version [reference]",
	Short: "Print the schema version a document declares",
	Args:  cobra.MaximumNArgs(1),
	RunE:  apiVersionRunE,
}

func init() {
	apiVersionCmd.Flags().BoolVar(&flagLatest, "latest", false, "print the newest supported schema version and exit")
	rootCmd.AddCommand(apiVersionCmd)
}

func apiVersionRunE(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if flagLatest {
		_, err := fmt.Fprintln(w, sdk.LatestAPIVersion())
		return err
	}

	c, err := loadConfig(cmd.Context(), args)
	if err != nil {
		return err
	}
	v, err := sdk.APIVersion(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}
