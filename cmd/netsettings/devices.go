package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var matchFlag string

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the device directories of the repository",
	Long: `List the hostnames that have a directory under devices/.

Examples:
  netsettings devices
  netsettings devices --match 'sw-*'
  netsettings devices --match '{core,dist}-[0-9]*'`,
	Args: cobra.NoArgs,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	devicesCmd.Flags().StringVarP(&matchFlag, "match", "m", "", "Only list hostnames matching this glob")
}

func runDevices(cmd *cobra.Command, _ []string) error {
	if matchFlag != "" && !doublestar.ValidatePattern(matchFlag) {
		return errors.Newf("invalid pattern %q", matchFlag)
	}

	r, err := newResolver(newLogger())
	if err != nil {
		return err
	}

	hostnames, err := r.DeviceHostnames()
	if err != nil {
		return err
	}

	for _, h := range hostnames {
		if matchFlag != "" {
			if ok, _ := doublestar.Match(matchFlag, h); !ok {
				continue
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), h)
	}

	return nil
}
