package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/output"
	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

var (
	flagBranch string
	flagAll    bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve-version [reference]",
	Short: "Print the version declared for the develop or master line",
	Long: `Print the normalized version the root configuration declares for a branch
line. With --all, every version declared in the tree is listed: each config,
support line, feature, release and hotfix, including visible submodules.`,
	Args: cobra.MaximumNArgs(1),
	RunE: resolveRunE,
}

func init() {
	resolveCmd.Flags().StringVarP(&flagBranch, "branch", "b", "develop", "branch line: develop or master")
	resolveCmd.Flags().BoolVar(&flagAll, "all", false, "list every declared version in the tree")
	rootCmd.AddCommand(resolveCmd)
}

func resolveRunE(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd.Context(), args)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if flagAll {
		entries, err := sdk.ResolveVersions(c, flagBranch)
		if err != nil {
			return err
		}
		if entries == nil {
			entries = []sdk.VersionEntry{}
		}
		return writeStructured(w, entries, func() error {
			return output.WriteVersions(w, entries)
		})
	}

	v, ok, err := sdk.ResolveVersion(c, flagBranch)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no version declared for " + flagBranch + " in " + c.Identifier)
	}
	fields := map[string]string{"identifier": c.Identifier, "branch": flagBranch, "version": v}
	return writeStructured(w, fields, func() error {
		_, err := fmt.Fprintln(w, v)
		return err
	})
}
