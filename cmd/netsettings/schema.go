package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/netsettings/internal/schema"
)

var (
	schemaOutput  string
	schemaCompact bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema [device|groups]",
	Short: "Generate the JSON Schema settings are validated against",
	Long: `Generate a JSON Schema (Draft 2020-12) for resolved device settings or for
the group definitions. The schema is derived from the typed settings.

Examples:
  netsettings schema                          # Device settings schema to stdout
  netsettings schema groups                   # Group definitions schema
  netsettings schema --output schema.json     # Write to file
  netsettings schema --compact                # Compact output`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{schema.KindDevice.String(), schema.KindGroups.String()},
	RunE:      runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "Write schema to file instead of stdout")
	schemaCmd.Flags().BoolVar(&schemaCompact, "compact", false, "Output compact JSON without indentation")
}

func runSchema(cmd *cobra.Command, args []string) error {
	kind := schema.KindDevice
	if len(args) == 1 && args[0] == schema.KindGroups.String() {
		kind = schema.KindGroups
	}

	data, err := schema.GenerateJSON(kind, !schemaCompact)
	if err != nil {
		return errors.Wrap(err, "generating schema")
	}

	if schemaOutput != "" {
		const filePerms = 0o644

		if writeErr := os.WriteFile(schemaOutput, data, filePerms); writeErr != nil {
			return errors.Wrap(writeErr, "writing schema file")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Schema written to %s\n", schemaOutput)

		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
