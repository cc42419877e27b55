package schema

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/netsettings/internal/merge"
	"github.com/smykla-skalski/netsettings/internal/yamltree"
)

const (
	// ValueNotFound replaces the offending value when the location does not
	// exist in the merged settings.
	ValueNotFound = "value not found"

	unknownOrigin = "unknown"
)

// ErrSettingsSyntax is returned when merged settings do not validate.
var ErrSettingsSyntax = errors.New("settings syntax error")

// SyntaxError carries every violation found in one validation pass.
type SyntaxError struct {
	Violations []Violation
	Report     string
}

func (e *SyntaxError) Error() string {
	return ErrSettingsSyntax.Error() + ":\n" + e.Report
}

// Unwrap returns ErrSettingsSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSettingsSyntax
}

// Check validates merged against kind. On failure it returns a
// *SyntaxError whose report names each offending setting, its value and
// the layer that supplied it.
func Check(merged *yamltree.Mapping, origins merge.Origins, kind Kind) error {
	violations, err := Validate(kind, merged)
	if err != nil {
		return err
	}

	if len(violations) == 0 {
		return nil
	}

	return &SyntaxError{
		Violations: violations,
		Report:     Report(merged, origins, violations),
	}
}

// Report renders violations in the order given.
func Report(merged *yamltree.Mapping, origins merge.Origins, violations []Violation) string {
	var b strings.Builder

	for _, v := range violations {
		fmt.Fprintf(&b,
			"Validation error for setting %s, bad value: %s (value origin: %s)\n",
			v.Path(), badValue(merged, v.Loc), originOf(origins, v.Loc),
		)
		fmt.Fprintf(&b, "Message: %s\n", v.Message)
	}

	return b.String()
}

func badValue(merged *yamltree.Mapping, loc []string) string {
	if merged == nil {
		return ValueNotFound
	}

	v, ok := yamltree.Lookup(merged, loc)
	if !ok {
		return ValueNotFound
	}

	return yamltree.Format(v)
}

func originOf(origins merge.Origins, loc []string) string {
	if len(loc) == 0 {
		return unknownOrigin
	}

	layer, ok := origins.Layer(loc[0])
	if !ok {
		return unknownOrigin
	}

	return layer.String()
}
