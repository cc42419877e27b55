// Package layout provides the repository structure checker.
package layout

import (
	"context"
	"errors"

	"github.com/smykla-skalski/netsettings/internal/doctor"
	repolayout "github.com/smykla-skalski/netsettings/internal/layout"
)

// ScaffoldFixID links missing layout entries to the scaffold fixer.
const ScaffoldFixID = "scaffold_layout"

const checkName = "Repository layout"

// Checker verifies the repository against the structure specification
type Checker struct {
	root string
}

// NewChecker creates a layout checker for the repository at root
func NewChecker(root string) *Checker {
	return &Checker{root: root}
}

// Name returns the name of the check
func (*Checker) Name() string {
	return checkName
}

// Category returns the category of the check
func (*Checker) Category() doctor.Category {
	return doctor.CategoryLayout
}

// Check verifies the layout. Missing entries can be scaffolded; entries of
// the wrong kind need manual attention.
func (c *Checker) Check(_ context.Context) doctor.CheckResult {
	err := repolayout.Verify(c.root, repolayout.RepoSpec)
	if err == nil {
		return doctor.Pass(checkName, "Matches the structure specification")
	}

	var pathErr *repolayout.PathError
	if !errors.As(err, &pathErr) {
		return doctor.FailError(checkName, "Repository cannot be read").
			WithDetails(err.Error())
	}

	switch {
	case errors.Is(err, repolayout.ErrFileNotFound),
		errors.Is(err, repolayout.ErrDirectoryNotFound):
		return doctor.FailError(checkName, pathErr.Err.Error()).
			WithDetails("Path: "+pathErr.Path).
			WithFixID(ScaffoldFixID)
	default:
		return doctor.FailError(checkName, pathErr.Err.Error()).
			WithDetails("Path: "+pathErr.Path, "Remove or rename it and re-run the check")
	}
}
