package reporters

import "github.com/smykla-skalski/netsettings/internal/doctor"

// Export unexported functions for external tests.
var (
	PadToWidth          = padToWidth
	ToCellWidths        = toCellWidths
	CalcColumnWidthsFor = calcColumnWidthsFor
	BuildResultRow      = buildResultRow
	SeverityRank        = severityRank
	Relativize          = relativize
	DimBorders          = dimBorders
)

// WithWidth fixes the terminal width a TableReporter lays out for.
func (r *TableReporter) WithWidth(w int) *TableReporter {
	r.width = w

	return r
}

// CountResults exposes countResults.
func CountResults(results []doctor.CheckResult) (int, int, int, int) {
	return countResults(results)
}
