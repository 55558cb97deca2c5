package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// versionInfo is the structured form of the version command's output.
type versionInfo struct {
	Version   string `json:"version" yaml:"version"`
	SchemaAPI string `json:"schema" yaml:"schema"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the flowconfig binary version and newest supported schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := versionInfo{Version: Version, SchemaAPI: sdk.LatestAPIVersion()}
		w := cmd.OutOrStdout()
		return writeStructured(w, info, func() error {
			_, err := fmt.Fprintf(w, "flowconfig %s (schema %s)\n", info.Version, info.SchemaAPI)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
