package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup element [reference]",
	Short: "Find a feature, release, hotfix or support line in a configuration tree",
	Long: `Find the entry an element reference names in a configuration tree and print
its fields. Elements owned by a support line are found too.

Examples:
  flowconfig lookup release://1.3
  flowconfig lookup support://1.x branch://develop -o json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: lookupRunE,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func lookupRunE(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd.Context(), args[1:])
	if err != nil {
		return err
	}
	m, err := sdk.Lookup(c, args[0])
	if err != nil {
		return err
	}
	return writeFields(cmd.OutOrStdout(), matchFields(m))
}

func matchFields(m sdk.Match) map[string]string {
	fields := map[string]string{"kind": m.Kind.String()}
	if m.Line != "" {
		fields["line"] = m.Line
	}
	if s := m.Support; s != nil {
		fields["name"] = s.Name
		fields["masterBranchName"] = s.MasterBranchName
		fields["developBranchName"] = s.DevelopBranchName
		if s.SourceSha != "" {
			fields["sourceSha"] = s.SourceSha
		}
		return fields
	}
	if e := m.Element; e != nil {
		fields["name"] = e.Name
		fields["branchName"] = e.BranchName
		if e.SourceSha != "" {
			fields["sourceSha"] = e.SourceSha
		}
		if e.Version != nil {
			fields["version"] = *e.Version
		}
		if e.Upstream != nil {
			fields["upstream"] = *e.Upstream
		}
		if len(e.Tags) > 0 {
			names := make([]string, len(e.Tags))
			for i, tag := range e.Tags {
				names[i] = tag.Name
			}
			fields["tags"] = strings.Join(names, ",")
		}
		if m.Kind != reference.KindFeature {
			fields["intermediate"] = strconv.FormatBool(m.Intermediate)
		}
	}
	return fields
}
