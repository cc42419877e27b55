// Package main provides the CLI entry point for netsettings.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/netsettings/internal/layout"
	"github.com/smykla-skalski/netsettings/internal/repository"
	"github.com/smykla-skalski/netsettings/internal/resolver"
	"github.com/smykla-skalski/netsettings/pkg/logger"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

const (
	exitCodeOK      = 0
	exitCodeFailure = 1
)

var (
	repoConfigPath string
	repoPath       string
	debugMode      bool
	traceMode      bool
	noColorFlag    bool
	deviceTypeFlag string
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return exitCodeFailure
	}

	return exitCodeOK
}

var rootCmd = &cobra.Command{
	Use:   "netsettings",
	Short: "Resolve layered network device settings",
	Long: `Resolve the effective settings of network devices from a layered
settings repository.

Settings are merged from the bundled defaults, the global layer, the fabric
layer (dist and core), the device type layer and the device's own directory.
Routing settings are filtered by the groups the hostname belongs to.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&repoConfigPath,
		"repo-config",
		"",
		"Path to the repository configuration file (default: $"+repository.ConfigPathEnv+
			" or "+repository.DefaultConfigPath+")",
	)
	rootCmd.PersistentFlags().StringVar(
		&repoPath,
		"repo",
		"",
		"Path to a settings repository checkout, bypassing the configuration file",
	)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&traceMode, "trace", false, "Enable trace logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// addDeviceTypeFlag registers --device-type on cmd.
func addDeviceTypeFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&deviceTypeFlag,
		"device-type",
		"t",
		"",
		fmt.Sprintf("Device type selecting the device type layer %v", settings.DeviceTypeStrings()[1:]),
	)
}

func newLogger() logger.Logger {
	return logger.NewStderr(logger.LevelFromFlags(debugMode, traceMode))
}

// newResolver builds a Resolver from --repo or the repository
// configuration.
func newResolver(log logger.Logger) (*resolver.Resolver, error) {
	if repoPath != "" {
		return resolver.New(repoPath, resolver.WithLogger(log)), nil
	}

	loader := repository.NewLoader(repoConfigPath)

	cfg, err := loader.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading repository configuration")
	}

	log.Debug("loaded repository configuration",
		"path", loader.Path(),
		"settings_local", cfg.SettingsLocal,
	)

	return resolver.FromConfig(cfg, resolver.WithLogger(log)), nil
}

func parseDeviceType() (settings.DeviceType, error) {
	return settings.ParseDeviceType(deviceTypeFlag)
}

func hostnameArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}

	if !layout.ValidHostname(args[0]) {
		return "", errors.Wrapf(layout.ErrInvalidRequest, "invalid hostname %q", args[0])
	}

	return args[0], nil
}
