package resolution

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize/english"

	"github.com/smykla-skalski/netsettings/internal/doctor"
	"github.com/smykla-skalski/netsettings/internal/resolver"
	"github.com/smykla-skalski/netsettings/pkg/settings"
)

const devicesCheckName = "Device settings"

// DevicesChecker resolves the settings of every device directory
type DevicesChecker struct {
	resolver   *resolver.Resolver
	deviceType settings.DeviceType
}

// NewDevicesChecker creates a checker resolving every device as deviceType
func NewDevicesChecker(r *resolver.Resolver, deviceType settings.DeviceType) *DevicesChecker {
	return &DevicesChecker{resolver: r, deviceType: deviceType}
}

// Name returns the name of the check
func (*DevicesChecker) Name() string {
	return devicesCheckName
}

// Category returns the category of the check
func (*DevicesChecker) Category() doctor.Category {
	return doctor.CategoryDevices
}

// Check resolves each device in turn and lists the ones that fail. It stops
// early when ctx is cancelled.
func (c *DevicesChecker) Check(ctx context.Context) doctor.CheckResult {
	hostnames, err := c.resolver.DeviceHostnames()
	if err != nil {
		return Failure(devicesCheckName, "Device directories cannot be listed", err)
	}

	if len(hostnames) == 0 {
		return doctor.Skip(devicesCheckName, "No device directories")
	}

	var details []string

	failed := 0

	for _, hostname := range hostnames {
		if err := ctx.Err(); err != nil {
			return doctor.Skip(devicesCheckName, "Cancelled")
		}

		if _, err := c.resolver.Settings(hostname, c.deviceType); err != nil {
			failed++

			sub := Failure(hostname, "", err)
			if sub.IsSkipped() {
				return doctor.Skip(devicesCheckName, sub.Message)
			}

			for _, d := range sub.Details {
				details = append(details, hostname+": "+d)
			}
		}
	}

	if failed == 0 {
		return doctor.Pass(devicesCheckName, english.Plural(len(hostnames), "device", "")+" resolved")
	}

	msg := fmt.Sprintf("%d of %s do not resolve", failed, english.Plural(len(hostnames), "device", ""))

	return doctor.FailError(devicesCheckName, msg).WithDetails(details...)
}
