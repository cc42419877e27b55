// Package settings provides the typed schema for resolved device settings and
// group definitions. The structs double as the validation contract: the JSON
// schema used to check merged settings is generated from them.
package settings

import (
	"github.com/cockroachdb/errors"
)

//go:generate enumer -type=DeviceType -trimprefix=DeviceType -transform=lower -json -text -yaml

// ErrInvalidDeviceType is returned when a device type name is not recognised.
var ErrInvalidDeviceType = errors.New("invalid device type")

// DeviceType classifies a device by its position in the network.
type DeviceType int

const (
	// DeviceTypeUnknown is the zero value and selects no device-type layer.
	DeviceTypeUnknown DeviceType = iota

	// DeviceTypeAccess is an access switch.
	DeviceTypeAccess

	// DeviceTypeDist is a distribution switch (fabric tier).
	DeviceTypeDist

	// DeviceTypeCore is a core switch (fabric tier).
	DeviceTypeCore
)

// ParseDeviceType parses a device type name, case-insensitively. The empty
// string means no device type.
func ParseDeviceType(s string) (DeviceType, error) {
	if s == "" {
		return DeviceTypeUnknown, nil
	}

	// "unknown" is the zero value's name, not a device type a caller may pick
	dt, err := DeviceTypeString(s)
	if err != nil || dt == DeviceTypeUnknown {
		return DeviceTypeUnknown, errors.Wrapf(
			ErrInvalidDeviceType,
			"%q, must be one of %v",
			s,
			DeviceTypeStrings()[1:],
		)
	}

	return dt, nil
}

// IsSet reports whether a device-type layer applies.
func (i DeviceType) IsSet() bool {
	return i != DeviceTypeUnknown && i.IsADeviceType()
}

// IsFabric reports whether the device type belongs to the fabric tier, which
// receives the shared fabric layer before its own device-type layer.
func (i DeviceType) IsFabric() bool {
	return i == DeviceTypeDist || i == DeviceTypeCore
}

// Dir returns the repository directory holding this device type's layer.
func (i DeviceType) Dir() string {
	return i.String()
}
