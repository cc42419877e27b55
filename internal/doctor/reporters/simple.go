// Package reporters provides output formatting for doctor check results
package reporters

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/smykla-skalski/netsettings/internal/doctor"
)

const reportHeader = "Checking settings repository health..."

var categoryNames = map[doctor.Category]string{
	doctor.CategoryLayout:   "Repository Layout",
	doctor.CategoryGroups:   "Group Definitions",
	doctor.CategorySettings: "Layered Settings",
	doctor.CategoryDevices:  "Devices",
}

// SimpleReporter writes a plain checklist. It never emits escape codes and
// suits logs and pipes.
type SimpleReporter struct {
	out io.Writer
}

// NewSimpleReporter creates a SimpleReporter writing to out
func NewSimpleReporter(out io.Writer) *SimpleReporter {
	return &SimpleReporter{out: out}
}

// Report outputs the results in a checklist grouped by category
func (r *SimpleReporter) Report(results []doctor.CheckResult, verbose bool) {
	fmt.Fprintln(r.out, reportHeader)
	fmt.Fprintln(r.out)

	for _, g := range GroupResultsByCategory(results) {
		fmt.Fprintf(r.out, "%s:\n", getCategoryName(g.Category))

		for _, result := range g.Results {
			r.printResult(result, verbose)
		}

		fmt.Fprintln(r.out)
	}

	fmt.Fprintln(r.out, "Summary: "+strings.Join(summaryParts(results), ", "))
}

func (r *SimpleReporter) printResult(result doctor.CheckResult, verbose bool) {
	fmt.Fprintf(r.out, "  %s %s", StatusIcon(result), result.Name)

	if result.Message != "" {
		fmt.Fprintf(r.out, " - %s", result.Message)
	}

	fmt.Fprintln(r.out)

	if verbose {
		for _, detail := range result.Details {
			fmt.Fprintf(r.out, "      %s\n", detail)
		}
	}

	if result.HasFix() && result.Status == doctor.StatusFail {
		fmt.Fprintln(r.out, "      -> Run: netsettings doctor --fix")
	}
}

// getCategoryName returns the display name for a category
func getCategoryName(category doctor.Category) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}

	s := string(category)
	if s == "" {
		return "Other"
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// summaryParts counts results per outcome. Skipped checks are mentioned
// only when there are some.
func summaryParts(results []doctor.CheckResult) []string {
	errs, warnings, passed, skipped := countResults(results)

	parts := []string{
		english.Plural(errs, "error", ""),
		english.Plural(warnings, "warning", ""),
		fmt.Sprintf("%d passed", passed),
	}

	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipped))
	}

	return parts
}

func countResults(results []doctor.CheckResult) (errs, warnings, passed, skipped int) {
	for _, result := range results {
		switch {
		case result.IsPassed():
			passed++
		case result.IsError():
			errs++
		case result.IsWarning():
			warnings++
		case result.IsSkipped():
			skipped++
		}
	}

	return errs, warnings, passed, skipped
}
