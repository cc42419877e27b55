package reporters

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/smykla-skalski/netsettings/internal/color"
	"github.com/smykla-skalski/netsettings/internal/doctor"
)

// TableReporter renders results as a bordered table, one section per
// category.
type TableReporter struct {
	out   io.Writer
	theme color.Theme
	root  string
	width int
}

// NewTableReporter creates a TableReporter. Paths under root are shown
// relative to it. The table fills the terminal attached to stdout or
// stderr, if any.
func NewTableReporter(out io.Writer, theme color.Theme, root string) *TableReporter {
	return &TableReporter{out: out, theme: theme, root: root, width: termWidth()}
}

// Report writes the table and a summary line.
func (r *TableReporter) Report(results []doctor.CheckResult, verbose bool) {
	fmt.Fprintln(r.out, reportHeader)
	fmt.Fprintln(r.out)

	shown := make([]doctor.CheckResult, len(results))
	for i, res := range results {
		shown[i] = relativize(res, r.root)
	}

	tbl := renderTable(shown, verbose, r.theme, calcColumnWidthsFor(r.width, shown, verbose))
	if tbl != "" {
		fmt.Fprintln(r.out, tbl)
		fmt.Fprintln(r.out)
	}

	fmt.Fprintln(r.out, RenderSummary(results, r.theme))
}

// StatusIcon returns a single-width character icon for a check result.
func StatusIcon(result doctor.CheckResult) string {
	switch result.Status {
	case doctor.StatusPass:
		return "✓"
	case doctor.StatusFail:
		switch result.Severity {
		case doctor.SeverityError:
			return "✗"
		case doctor.SeverityWarning:
			return "!"
		default:
			return "i"
		}
	case doctor.StatusSkipped:
		return "-"
	default:
		return "?"
	}
}

// StyledIcon returns a StatusIcon colored by the theme.
func StyledIcon(result doctor.CheckResult, theme color.Theme) string {
	icon := StatusIcon(result)

	switch result.Status {
	case doctor.StatusPass:
		return theme.Pass.Render(icon)
	case doctor.StatusFail:
		if result.Severity == doctor.SeverityError {
			return theme.Fail.Render(icon)
		}

		return theme.Warning.Render(icon)
	case doctor.StatusSkipped:
		return theme.Skip.Render(icon)
	default:
		return icon
	}
}

// RenderTable builds a table from check results without fixed column
// widths.
func RenderTable(results []doctor.CheckResult, verbose bool, theme color.Theme) string {
	return renderTable(results, verbose, theme, nil)
}

// renderTable lays out the table. Category headers span every column but
// the icon column via horizontal merge. Long text wraps within cells when
// colWidths is set.
func renderTable(
	results []doctor.CheckResult,
	verbose bool,
	theme color.Theme,
	colWidths map[int]int,
) string {
	grouped := GroupResultsByCategory(results)
	if len(grouped) == 0 {
		return ""
	}

	headers := []string{"", "Check", "Message"}
	if verbose {
		headers = append(headers, "Details")
	}

	var buf bytes.Buffer

	opts := []tablewriter.Option{
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenRows: tw.On,
				},
			},
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
		tablewriter.WithConfig(tablewriter.NewConfigBuilder().
			WithTrimSpace(tw.Off).
			Row().Merging().WithMode(tw.MergeHorizontal).Build().
			Formatting().WithAutoWrap(tw.WrapNormal).Build().
			Build().Build()),
	}

	if colWidths != nil {
		opts = append(opts, tablewriter.WithColumnWidths(toCellWidths(colWidths)))
	}

	t := tablewriter.NewTable(&buf, opts...)

	t.Header(headers)

	for _, g := range grouped {
		appendCategoryRows(t, g, len(headers), verbose, colWidths, theme)
	}

	_ = t.Render()

	return dimBorders(strings.TrimRight(buf.String(), "\n"), theme)
}

// appendCategoryRows adds a category header row followed by the group's
// results, worst first.
func appendCategoryRows(
	t *tablewriter.Table,
	g categoryGroup,
	columns int,
	verbose bool,
	colWidths map[int]int,
	theme color.Theme,
) {
	catName := theme.Header.Render(getCategoryName(g.Category))

	catRow := []string{""}
	for i := 1; i < columns; i++ {
		catRow = append(catRow, catName)
	}

	_ = t.Append(catRow)

	sorted := slices.Clone(g.Results)
	slices.SortStableFunc(sorted, func(a, b doctor.CheckResult) int {
		return severityRank(a) - severityRank(b)
	})

	for _, r := range sorted {
		_ = t.Append(buildResultRow(r, verbose, colWidths, theme))
	}
}

// buildResultRow creates a table row for a single check result, padding cells
// to the target column widths when set.
func buildResultRow(
	r doctor.CheckResult,
	verbose bool,
	colWidths map[int]int,
	theme color.Theme,
) []string {
	row := []string{StyledIcon(r, theme), theme.CheckName.Render(r.Name), r.Message}

	if verbose {
		row = append(row, strings.Join(r.Details, "; "))
	}

	if colWidths != nil {
		for i, cell := range row {
			if w, ok := colWidths[i]; ok {
				row[i] = padToWidth(cell, w)
			}
		}
	}

	return row
}

// toCellWidths converts content widths to cell widths (content + left/right
// padding) for WithColumnWidths.
func toCellWidths(contentWidths map[int]int) tw.Mapper[int, int] {
	const padW = 2

	m := make(tw.Mapper[int, int], len(contentWidths))
	for col, w := range contentWidths {
		m[col] = w + padW
	}

	return m
}

// padToWidth right-pads s with spaces so its display width reaches w.
// ANSI escape codes are excluded from width calculation.
func padToWidth(s string, w int) string {
	visible := runewidth.StringWidth(ansi.Strip(s))
	if visible >= w {
		return s
	}

	return s + strings.Repeat(" ", w-visible)
}

// dimBorders applies the muted style to the box-drawing characters.
func dimBorders(s string, theme color.Theme) string {
	for _, ch := range []string{
		"╭", "╮", "╰", "╯", "│", "─", "┬", "┴", "├", "┤", "┼",
	} {
		s = strings.ReplaceAll(s, ch, theme.Muted.Render(ch))
	}

	return s
}

// RenderSummary returns the summary line, highlighting non-zero problem
// counts.
func RenderSummary(results []doctor.CheckResult, theme color.Theme) string {
	errs, warnings, _, _ := countResults(results)
	parts := summaryParts(results)

	parts[0] = styleSummaryPart(parts[0], errs > 0, theme.Fail)
	parts[1] = styleSummaryPart(parts[1], warnings > 0, theme.Warning)
	parts[2] = theme.Pass.Render(parts[2])

	if len(parts) > 3 {
		parts[3] = theme.Skip.Render(parts[3])
	}

	return "Summary: " + strings.Join(parts, ", ")
}

func styleSummaryPart(text string, active bool, style lipgloss.Style) string {
	if active {
		return style.Render(text)
	}

	return text
}

// GroupResultsByCategory groups results by category, known categories
// first in display order, unknown ones after in order of appearance.
func GroupResultsByCategory(results []doctor.CheckResult) []categoryGroup {
	catMap := make(map[doctor.Category][]doctor.CheckResult)

	var extra []doctor.Category

	for _, r := range results {
		if _, seen := catMap[r.Category]; !seen && !slices.Contains(doctor.Categories, r.Category) {
			extra = append(extra, r.Category)
		}

		catMap[r.Category] = append(catMap[r.Category], r)
	}

	var groups []categoryGroup

	for _, cat := range append(slices.Clone(doctor.Categories), extra...) {
		if rs, ok := catMap[cat]; ok {
			groups = append(groups, categoryGroup{Category: cat, Results: rs})
		}
	}

	return groups
}

type categoryGroup struct {
	Category doctor.Category
	Results  []doctor.CheckResult
}

// calcColumnWidthsFor computes per-column content widths for a terminal of
// width w. It returns nil when w is too narrow for a table.
func calcColumnWidthsFor(
	w int,
	results []doctor.CheckResult,
	verbose bool,
) map[int]int {
	const minTableW = 40

	if w < minTableW {
		return nil
	}

	checkW := len("Check")

	for _, r := range results {
		if n := runewidth.StringWidth(r.Name); n > checkW {
			checkW = n
		}
	}

	const iconW = 1

	numCols := 3
	if verbose {
		numCols = 4
	}

	// border + left pad + right pad per column, plus the closing border
	const colOverhead = 3

	overhead := numCols*colOverhead + 1
	available := w - overhead - iconW

	const (
		minMsgW   = 20
		minCheckW = 5
	)

	if available < minMsgW+minCheckW {
		return nil
	}

	if checkW > available-minMsgW {
		checkW = available - minMsgW
	}

	remaining := available - checkW

	widths := map[int]int{
		0: iconW,
		1: checkW,
		2: remaining,
	}

	if verbose {
		msgW := remaining * 60 / 100 //nolint:mnd // layout ratio
		widths[2] = msgW
		widths[3] = remaining - msgW
	}

	return widths
}

// termWidth returns the terminal width or 0 if not a terminal.
func termWidth() int {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 { //nolint:gosec // fd fits int
			return w
		}
	}

	return 0
}

// relativize shows paths under root relative to it.
func relativize(r doctor.CheckResult, root string) doctor.CheckResult {
	if root == "" {
		return r
	}

	prefix := strings.TrimSuffix(root, string(os.PathSeparator)) + string(os.PathSeparator)

	r.Message = strings.ReplaceAll(r.Message, prefix, "")

	details := make([]string, len(r.Details))
	for i, d := range r.Details {
		details[i] = strings.ReplaceAll(d, prefix, "")
	}

	r.Details = details

	return r
}

// Severity rank constants for sorting results within a category.
const (
	rankError   = 0
	rankWarning = 1
	rankPass    = 2
	rankSkipped = 3
)

func severityRank(r doctor.CheckResult) int {
	switch {
	case r.IsError():
		return rankError
	case r.IsWarning():
		return rankWarning
	case r.IsPassed():
		return rankPass
	default:
		return rankSkipped
	}
}
