// Package layout describes the expected directory structure of a settings
// repository, verifies a checkout against it and turns setting requests
// into file paths inside the repository.
package layout

// NodeKind identifies how a Node is checked.
type NodeKind int

const (
	// NodeFile is a regular file leaf.
	NodeFile NodeKind = iota

	// NodeDir is a named directory with children.
	NodeDir

	// NodeDevices matches every device directory in its parent. Its
	// children describe the contents of a single device directory.
	NodeDevices
)

// Node is one entry of a Spec.
type Node struct {
	Name     string
	Kind     NodeKind
	Children Spec
}

// Spec is an ordered list of entries expected in a directory.
type Spec []Node

// File returns a file leaf.
func File(name string) Node {
	return Node{Name: name, Kind: NodeFile}
}

// Dir returns a directory node.
func Dir(name string, children ...Node) Node {
	return Node{Name: name, Kind: NodeDir, Children: children}
}

// Devices returns the device wildcard node.
func Devices(children Spec) Node {
	return Node{Kind: NodeDevices, Children: children}
}

// Repository file and directory names.
const (
	DevicesDir     = "devices"
	GlobalDir      = "global"
	FabricDir      = "fabric"
	BaseSystemFile = "base_system.yml"
	InterfacesFile = "interfaces.yml"
	GroupsFile     = "groups.yml"
	RoutingFile    = "routing.yml"
)

// HostSpec is the expected content of devices/<hostname>.
var HostSpec = Spec{
	File(BaseSystemFile),
	File(InterfacesFile),
}

// RepoSpec is the expected layout of a settings repository.
var RepoSpec = Spec{
	Dir(GlobalDir,
		File(BaseSystemFile),
		File(GroupsFile),
		File(RoutingFile),
	),
	Dir(FabricDir, File(BaseSystemFile)),
	Dir("core", File(BaseSystemFile)),
	Dir("dist", File(BaseSystemFile)),
	Dir("access", File(BaseSystemFile)),
	Dir(DevicesDir, Devices(HostSpec)),
}

// Lookup returns the named child of s.
func (s Spec) Lookup(name string) (Node, bool) {
	for _, n := range s {
		if n.Kind != NodeDevices && n.Name == name {
			return n, true
		}
	}

	return Node{}, false
}

// KeyPathExists reports whether segments name a chain of entries in s. The
// device wildcard never matches a literal name. A file leaf ends the chain.
func KeyPathExists(s Spec, segments []string) bool {
	cur := s

	for i, seg := range segments {
		n, ok := cur.Lookup(seg)
		if !ok {
			return false
		}

		if n.Kind == NodeFile && i < len(segments)-1 {
			return false
		}

		cur = n.Children
	}

	return true
}
