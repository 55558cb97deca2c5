package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-flowconfig/pkg/sdk"
)

var (
	flagAlgorithm string
	flagEncoding  string
)

var hashCmd = &cobra.Command{
	Use:   "hash [reference]",
	Short: "Print the content digest of a configuration tree",
	Long: `Print the content digest of a configuration tree. Two documents that differ
only in formatting, key order or omitted defaults have the same digest. Shadow
entries do not contribute.`,
	Args: cobra.MaximumNArgs(1),
	RunE: hashRunE,
}

func init() {
	hashCmd.Flags().StringVar(&flagAlgorithm, "algorithm", "sha256", "digest algorithm: sha256, sha384 or sha512")
	hashCmd.Flags().StringVar(&flagEncoding, "encoding", "hex", "digest encoding: hex, base64 or digest")
	rootCmd.AddCommand(hashCmd)
}

func hashRunE(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd.Context(), args)
	if err != nil {
		return err
	}

	sum, err := sdk.Hash(c, sdk.HashOptions{Algorithm: flagAlgorithm, Encoding: flagEncoding})
	if err != nil {
		return err
	}

	fields := map[string]string{
		"identifier": c.Identifier,
		"algorithm":  flagAlgorithm,
		"encoding":   flagEncoding,
		"digest":     sum,
	}
	return writeStructured(cmd.OutOrStdout(), fields, func() error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), sum)
		return err
	})
}
