// Package resolution provides checkers that resolve settings the way a
// consumer of the repository would.
package resolution

import (
	"errors"
	"strings"

	"github.com/smykla-skalski/netsettings/internal/doctor"
	"github.com/smykla-skalski/netsettings/internal/layout"
	"github.com/smykla-skalski/netsettings/internal/schema"
)

// Failure turns a resolution error into a check result. Layout mismatches
// are skipped because the layout checker already reports them; syntax
// errors carry one detail line per report line.
func Failure(name, message string, err error) doctor.CheckResult {
	if errors.Is(err, layout.ErrVerifyPath) {
		return doctor.Skip(name, "Repository layout mismatch")
	}

	var syntaxErr *schema.SyntaxError
	if errors.As(err, &syntaxErr) {
		return doctor.FailError(name, message).WithDetails(reportLines(syntaxErr.Report)...)
	}

	return doctor.FailError(name, message).WithDetails(err.Error())
}

func reportLines(report string) []string {
	var lines []string

	for line := range strings.SplitSeq(report, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
