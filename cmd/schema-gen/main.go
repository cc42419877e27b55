// Command schema-gen writes the JSON Schemas for device settings and group
// definitions to schema/.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/smykla-skalski/netsettings/internal/schema"
)

func main() {
	outDir := "schema"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	for _, kind := range []schema.Kind{schema.KindDevice, schema.KindGroups} {
		outPath, err := write(outDir, kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(outPath)
	}
}

func write(outDir string, kind schema.Kind) (string, error) {
	data, err := schema.GenerateJSON(kind, true)
	if err != nil {
		return "", err
	}

	outPath := filepath.Clean(filepath.Join(outDir, schema.Filename(kind)))

	const filePerms = 0o644

	//nolint:gosec // dev tool, outDir from CLI arg
	if err := os.WriteFile(outPath, data, filePerms); err != nil {
		return "", err
	}

	return outPath, nil
}
