// Package groups provides the group definitions checker.
package groups

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize/english"

	"github.com/smykla-skalski/netsettings/internal/doctor"
	"github.com/smykla-skalski/netsettings/internal/doctor/checkers/resolution"
	groupmatch "github.com/smykla-skalski/netsettings/internal/groups"
	"github.com/smykla-skalski/netsettings/internal/resolver"
)

const checkName = "Group definitions"

// Checker validates global/groups.yml and reports entries the matcher skips
type Checker struct {
	resolver *resolver.Resolver
}

// NewChecker creates a group definitions checker
func NewChecker(r *resolver.Resolver) *Checker {
	return &Checker{resolver: r}
}

// Name returns the name of the check
func (*Checker) Name() string {
	return checkName
}

// Category returns the category of the check
func (*Checker) Category() doctor.Category {
	return doctor.CategoryGroups
}

// Check resolves the group settings and matches them without a hostname,
// which evaluates every entry.
func (c *Checker) Check(_ context.Context) doctor.CheckResult {
	gs, err := c.resolver.GroupSettings()
	if err != nil {
		return resolution.Failure(checkName, "Group settings do not resolve", err)
	}

	res := groupmatch.Match(gs.Settings, "")
	defined := english.Plural(len(res.Names), "group", "") + " defined"

	if len(res.Skipped) == 0 {
		return doctor.Pass(checkName, defined)
	}

	details := make([]string, 0, len(res.Skipped))

	for _, s := range res.Skipped {
		if s.Name == "" {
			details = append(details, fmt.Sprintf("entry %d: %s", s.Index, s.Reason))
			continue
		}

		details = append(details, fmt.Sprintf("entry %d (%s): %s", s.Index, s.Name, s.Reason))
	}

	msg := fmt.Sprintf("%s, %s ignored", defined, english.Plural(len(res.Skipped), "entry", ""))

	return doctor.FailWarning(checkName, msg).WithDetails(details...)
}
