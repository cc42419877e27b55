package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smykla-skalski/netsettings/internal/resolver"
	"github.com/smykla-skalski/netsettings/internal/yamltree"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

var (
	formatFlag     string
	normalizedFlag bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings [hostname]",
	Short: "Print the resolved settings of a device",
	Long: `Print the resolved settings of a device.

Without a hostname only the default, global, fabric and device type layers
apply. With a hostname the device layer and the group-filtered routing
settings are merged as well.

Examples:
  netsettings settings                      # Default and global layers
  netsettings settings -t core              # Add the fabric and core layers
  netsettings settings sw1 -t access        # Settings of device sw1
  netsettings settings sw1 --format json    # As JSON
  netsettings settings sw1 --normalized     # Decoded into the settings schema`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	addDeviceTypeFlag(settingsCmd)

	settingsCmd.Flags().StringVarP(&formatFlag, "format", "f", formatYAML, "Output format (yaml, json)")
	settingsCmd.Flags().BoolVar(
		&normalizedFlag,
		"normalized",
		false,
		"Print the settings decoded into the typed schema instead of the merged document",
	)
}

func runSettings(cmd *cobra.Command, args []string) error {
	res, err := resolveArgs(args)
	if err != nil {
		return err
	}

	var doc any = yamltree.JSONCompatible(res.Merged)
	if normalizedFlag {
		doc = res.Settings
	}

	return writeDocument(cmd.OutOrStdout(), res.Merged, doc)
}

// resolveArgs resolves the settings named by the optional hostname argument
// and --device-type.
func resolveArgs(args []string) (*resolver.Resolved, error) {
	hostname, err := hostnameArg(args)
	if err != nil {
		return nil, err
	}

	return resolveHost(hostname)
}

func resolveHost(hostname string) (*resolver.Resolved, error) {
	dt, err := parseDeviceType()
	if err != nil {
		return nil, err
	}

	r, err := newResolver(newLogger())
	if err != nil {
		return nil, err
	}

	return r.Settings(hostname, dt)
}

// writeDocument writes merged in key order for YAML. JSON output and the
// normalized form are encoded from doc.
func writeDocument(w io.Writer, merged *yamltree.Mapping, doc any) error {
	var (
		data []byte
		err  error
	)

	switch formatFlag {
	case formatYAML:
		if normalizedFlag {
			data, err = yaml.Marshal(doc)
		} else {
			data, err = yamltree.Marshal(merged)
		}
	case formatJSON:
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	default:
		return errors.Newf("unknown format %q, must be %q or %q", formatFlag, formatYAML, formatJSON)
	}

	if err != nil {
		return errors.Wrap(err, "encoding settings")
	}

	_, err = w.Write(data)

	return err
}

// outputFile returns w as a file for terminal detection, or nil.
func outputFile(w io.Writer) *os.File {
	f, _ := w.(*os.File)

	return f
}
