package resolution

import (
	"context"

	"github.com/dustin/go-humanize/english"

	"github.com/smykla-skalski/netsettings/internal/doctor"
	"github.com/smykla-skalski/netsettings/internal/resolver"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

// SettingsChecker resolves the settings of a device type without a
// hostname. DeviceTypeUnknown checks the default and global layers alone.
type SettingsChecker struct {
	resolver   *resolver.Resolver
	deviceType settings.DeviceType
}

// NewSettingsChecker creates a settings checker for deviceType
func NewSettingsChecker(r *resolver.Resolver, deviceType settings.DeviceType) *SettingsChecker {
	return &SettingsChecker{resolver: r, deviceType: deviceType}
}

// NewSettingsCheckers returns one checker for the global layers and one per
// device type.
func NewSettingsCheckers(r *resolver.Resolver) []*SettingsChecker {
	checkers := []*SettingsChecker{NewSettingsChecker(r, settings.DeviceTypeUnknown)}

	for _, dt := range settings.DeviceTypeValues() {
		if dt.IsSet() {
			checkers = append(checkers, NewSettingsChecker(r, dt))
		}
	}

	return checkers
}

// Name returns the name of the check
func (c *SettingsChecker) Name() string {
	if !c.deviceType.IsSet() {
		return "Global settings"
	}

	return c.deviceType.Dir() + " settings"
}

// Category returns the category of the check
func (*SettingsChecker) Category() doctor.Category {
	return doctor.CategorySettings
}

// Check resolves and validates the settings
func (c *SettingsChecker) Check(_ context.Context) doctor.CheckResult {
	res, err := c.resolver.Settings("", c.deviceType)
	if err != nil {
		return Failure(c.Name(), "Settings do not resolve", err)
	}

	return doctor.Pass(c.Name(), english.Plural(res.Merged.Len(), "top-level setting", "")+" resolved")
}
