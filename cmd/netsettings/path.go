package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smykla-skalski/netsettings/internal/layout"
)

var pathCmd = &cobra.Command{
	Use:   "path <segment>...",
	Short: "Print the repository file holding a setting",
	Long: `Print the repository file for a setting path. Only paths allowed by the
structure specification are accepted.

Examples:
  netsettings path global groups.yml
  netsettings path devices sw1 interfaces.yml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	r, err := newResolver(newLogger())
	if err != nil {
		return err
	}

	p, err := layout.SettingPath(r.Root(), args)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), p)

	return nil
}
