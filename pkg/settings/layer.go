package settings

// Layer names one configuration source. Layers are applied in the order of
// the constants below; a later layer overrides an earlier one at the same key.
type Layer string

const (
	// LayerDefault is the settings document bundled with the binary.
	LayerDefault Layer = "default"

	// LayerGlobal is the repository's global directory.
	LayerGlobal Layer = "global"

	// LayerFabric is shared by every fabric-tier device type.
	LayerFabric Layer = "fabric"

	// LayerDeviceType is the directory named after the device type.
	LayerDeviceType Layer = "devicetype"

	// LayerDevice is the per-hostname directory.
	LayerDevice Layer = "device"
)

// String returns the layer label.
func (l Layer) String() string {
	return string(l)
}
