package main

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/netsettings/internal/yamltree"
)

const diffContextLines = 3

var diffCmd = &cobra.Command{
	Use:   "diff <hostname> <hostname>",
	Short: "Compare the resolved settings of two devices",
	Long: `Compare the resolved settings of two devices as a unified diff of their
YAML documents. Both devices are resolved with the same --device-type.

Examples:
  netsettings diff sw1 sw2 -t access`,
	Args: cobra.ExactArgs(2), //nolint:mnd // two hostnames
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	addDeviceTypeFlag(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	docs := make([]string, len(args))

	for i, arg := range args {
		res, err := resolveArgs([]string{arg})
		if err != nil {
			return err
		}

		data, err := yamltree.Marshal(res.Merged)
		if err != nil {
			return err
		}

		docs[i] = string(data)
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(docs[0]),
		B:        difflib.SplitLines(docs[1]),
		FromFile: args[0],
		ToFile:   args[1],
		Context:  diffContextLines,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), text)

	return nil
}
