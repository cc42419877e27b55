package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/netsettings/internal/color"
	"github.com/smykla-skalski/netsettings/internal/merge"
)

const originKeyDelim = "."

var originsCmd = &cobra.Command{
	Use:   "origins [hostname]",
	Short: "Show which layer supplied each resolved setting",
	Long: `Show which layer supplied each resolved setting.

Every leaf of the merged settings is listed with its dotted key, the layer
that supplied it (default, global, fabric, devicetype, device) and its
value. Lists are shown as a single value.

Examples:
  netsettings origins sw1 -t access`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrigins,
}

func init() {
	rootCmd.AddCommand(originsCmd)
	addDeviceTypeFlag(originsCmd)
}

func runOrigins(cmd *cobra.Command, args []string) error {
	res, err := resolveArgs(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	theme := color.NewTheme(color.Enabled(noColorFlag, outputFile(out)))

	return renderOrigins(out, res.Origins.Flatten(res.Merged, originKeyDelim), theme)
}

func renderOrigins(w io.Writer, entries []merge.Entry, theme color.Theme) error {
	t := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)

	t.Header([]string{"Setting", "Layer", "Value"})

	for _, e := range entries {
		if err := t.Append([]string{e.Key, theme.Layer(e.Layer), formatOriginValue(e.Value)}); err != nil {
			return err
		}
	}

	return t.Render()
}

// formatOriginValue renders a flattened leaf on one line.
func formatOriginValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		if t == "" {
			return `""`
		}

		return t
	case []any, map[string]any:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}

		return strings.TrimSpace(string(data))
	default:
		return fmt.Sprint(t)
	}
}
