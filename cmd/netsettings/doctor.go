package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/netsettings/internal/color"
	"github.com/smykla-skalski/netsettings/internal/doctor"
	groupschecker "github.com/smykla-skalski/netsettings/internal/doctor/checkers/groups"
	layoutchecker "github.com/smykla-skalski/netsettings/internal/doctor/checkers/layout"
	"github.com/smykla-skalski/netsettings/internal/doctor/checkers/resolution"
	"github.com/smykla-skalski/netsettings/internal/doctor/fixers"
	"github.com/smykla-skalski/netsettings/internal/doctor/reporters"
	"github.com/smykla-skalski/netsettings/internal/resolver"
	"github.com/smykla-skalski/netsettings/pkg/logger"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

var (
	verboseFlag  bool
	fixFlag      bool
	categoryFlag []string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the settings repository",
	Long: `Diagnose the settings repository.

Checks:
- Repository layout against the structure specification
- Group definitions (schema and skipped entries)
- Layered settings for every device type
- Settings of every device directory

Examples:
  netsettings doctor                        # Run all checks
  netsettings doctor --verbose              # Show details
  netsettings doctor --fix                  # Create missing layout entries
  netsettings doctor --category layout,groups
  netsettings doctor -t access              # Resolve devices as access switches`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	addDeviceTypeFlag(doctorCmd)

	doctorCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output with detailed context")
	doctorCmd.Flags().BoolVar(&fixFlag, "fix", false, "Automatically fix issues")
	doctorCmd.Flags().StringSliceVar(
		&categoryFlag,
		"category",
		[]string{},
		fmt.Sprintf("Filter checks by category %v", doctor.Categories),
	)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	log := newLogger()

	dt, err := parseDeviceType()
	if err != nil {
		return err
	}

	r, err := newResolver(log)
	if err != nil {
		return err
	}

	categories, err := parseCategories(categoryFlag)
	if err != nil {
		return err
	}

	log.Info("starting doctor command",
		"verbose", verboseFlag,
		"fix", fixFlag,
		"categories", categoryFlag,
	)

	out := cmd.OutOrStdout()
	registry := buildDoctorRegistry(r, dt, log)
	runner := doctor.NewRunner(registry, selectReporter(out, r.Root()), out, log)

	err = runner.Run(cmd.Context(), doctor.RunOptions{
		Verbose:    verboseFlag,
		AutoFix:    fixFlag,
		Categories: categories,
	})
	if err != nil && !errors.Is(err, doctor.ErrChecksFailed) {
		return errors.Wrap(err, "doctor command failed")
	}

	return err
}

// buildDoctorRegistry creates and populates the health check registry.
func buildDoctorRegistry(r *resolver.Resolver, dt settings.DeviceType, log logger.Logger) *doctor.Registry {
	registry := doctor.NewRegistry()

	registry.RegisterChecker(layoutchecker.NewChecker(r.Root()))
	registry.RegisterChecker(groupschecker.NewChecker(r))

	for _, c := range resolution.NewSettingsCheckers(r) {
		registry.RegisterChecker(c)
	}

	registry.RegisterChecker(resolution.NewDevicesChecker(r, dt))

	registry.RegisterFixer(fixers.NewScaffoldFixer(r.Root(), log))

	return registry
}

func parseCategories(names []string) ([]doctor.Category, error) {
	categories := make([]doctor.Category, 0, len(names))

	for _, name := range names {
		cat := doctor.Category(name)
		if !slices.Contains(doctor.Categories, cat) {
			return nil, errors.Newf("unknown category %q, must be one of %v", name, doctor.Categories)
		}

		categories = append(categories, cat)
	}

	return categories, nil
}

// selectReporter picks the table for terminals, styled unless color is
// disabled, and the plain checklist otherwise.
//
//nolint:ireturn // factory selecting the reporter by environment
func selectReporter(out io.Writer, root string) doctor.Reporter {
	f := outputFile(out)
	if f == nil || !color.IsTerminal(f) {
		return reporters.NewSimpleReporter(out)
	}

	return reporters.NewTableReporter(out, color.NewTheme(color.Enabled(noColorFlag, f)), root)
}
