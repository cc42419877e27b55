package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups [hostname]",
	Short: "List the groups a device belongs to",
	Long: `List the groups whose regex matches the start of the hostname, in the
order they are defined in global/groups.yml. Without a hostname every
well-formed group is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGroups,
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, args []string) error {
	hostname, err := hostnameArg(args)
	if err != nil {
		return err
	}

	r, err := newResolver(newLogger())
	if err != nil {
		return err
	}

	names, err := r.Groups(hostname)
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}

	return nil
}
