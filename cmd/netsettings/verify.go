package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the repository layout",
	Long: `Check the settings repository against the structure specification and
report the first mismatch.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	r, err := newResolver(newLogger())
	if err != nil {
		return err
	}

	if err := r.Verify(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: layout OK\n", r.Root())

	return nil
}
