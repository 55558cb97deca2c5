package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "Print the digest of the configuration on every branch",
	Long: `Print the digest of the configuration document committed on every local and
remote tracking branch of the repository at --path. Branches that carry the
same configuration share a digest. The current branch is marked with "*".`,
	Args: cobra.NoArgs,
	RunE: branchesRunE,
}

func init() {
	branchesCmd.Flags().StringVar(&flagAlgorithm, "algorithm", "sha256", "digest algorithm: sha256, sha384 or sha512")
	branchesCmd.Flags().StringVar(&flagEncoding, "encoding", "hex", "digest encoding: hex, base64 or digest")
	rootCmd.AddCommand(branchesCmd)
}

func branchesRunE(cmd *cobra.Command, _ []string) error {
	entries, err := sdk.Branches(cmd.Context(), sdkOptions(cfg, logger), sdk.HashOptions{
		Algorithm: flagAlgorithm,
		Encoding:  flagEncoding,
	})
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []sdk.BranchDigest{}
	}

	w := cmd.OutOrStdout()
	return writeStructured(w, entries, func() error {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, e := range entries {
			mark := " "
			if e.Head {
				mark = "*"
			}
			name := e.Branch
			if e.Remote {
				name += " (remote)"
			}
			state := e.Digest
			switch {
			case e.Error != "":
				state = "error: " + e.Error
			case state == "":
				state = "-"
			}
			fmt.Fprintf(tw, "%s %s\t%s\t%s\n", mark, name, e.Commit, state)
		}
		return tw.Flush()
	})
}
