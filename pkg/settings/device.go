package settings

// DeviceSettings is the validated, normalized result of resolving all layers
// for one device or device class.
type DeviceSettings struct {
	// NTPServers lists time sources.
	NTPServers []Server `json:"ntp_servers,omitempty" yaml:"ntp_servers,omitempty"`

	// RadiusServers lists 802.1X authentication servers.
	RadiusServers []Server `json:"radius_servers,omitempty" yaml:"radius_servers,omitempty"`

	// SyslogServers lists remote log receivers.
	SyslogServers []Server `json:"syslog_servers,omitempty" yaml:"syslog_servers,omitempty"`

	// SNMPServers lists trap receivers.
	SNMPServers []Server `json:"snmp_servers,omitempty" yaml:"snmp_servers,omitempty"`

	// DNSServers lists name servers.
	DNSServers []Server `json:"dns_servers,omitempty" yaml:"dns_servers,omitempty"`

	// FlowCollectors lists flow export destinations.
	FlowCollectors []FlowCollector `json:"flow_collectors,omitempty" yaml:"flow_collectors,omitempty"`

	// DHCPRelays lists DHCP helper addresses.
	DHCPRelays []Server `json:"dhcp_relays,omitempty" yaml:"dhcp_relays,omitempty"`

	// Interfaces holds per-port configuration, normally from the device layer.
	Interfaces []Interface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`

	// VRFs defines routing instances.
	VRFs []VRF `json:"vrfs,omitempty" yaml:"vrfs,omitempty"`

	// VXLANs maps a VXLAN name to its definition.
	VXLANs map[string]VXLAN `json:"vxlans,omitempty" yaml:"vxlans,omitempty"`

	// Underlay holds fabric addressing pools.
	Underlay *Underlay `json:"underlay,omitempty" yaml:"underlay,omitempty"`

	// EVPNPeers lists route reflector peers.
	EVPNPeers []EVPNPeer `json:"evpn_peers,omitempty" yaml:"evpn_peers,omitempty"`

	// ExtrouteStatic holds static routes towards external networks.
	ExtrouteStatic *ExtrouteStatic `json:"extroute_static,omitempty" yaml:"extroute_static,omitempty"`

	// InternalVLANs reserves a VLAN range for platform-internal use.
	InternalVLANs *InternalVLANs `json:"internal_vlans,omitempty" yaml:"internal_vlans,omitempty"`

	// Dot1xFailVLAN is assigned to ports failing 802.1X.
	Dot1xFailVLAN *int `json:"dot1x_fail_vlan,omitempty" jsonschema:"minimum=1,maximum=4094" yaml:"dot1x_fail_vlan,omitempty"`

	// CLIPrependStr is raw configuration emitted before generated config.
	CLIPrependStr string `json:"cli_prepend_str,omitempty" yaml:"cli_prepend_str,omitempty"`

	// CLIAppendStr is raw configuration emitted after generated config.
	CLIAppendStr string `json:"cli_append_str,omitempty" yaml:"cli_append_str,omitempty"`
}

// Server is a host reachable by name or address.
type Server struct {
	Host string `json:"host" jsonschema:"minLength=1" yaml:"host"`
}

// FlowCollector is a flow export destination.
type FlowCollector struct {
	Host string `json:"host"           jsonschema:"minLength=1"                 yaml:"host"`
	Port *int   `json:"port,omitempty" jsonschema:"minimum=1,maximum=65535" yaml:"port,omitempty"`
}

// Interface configures one port.
type Interface struct {
	Name         string   `json:"name"                       jsonschema:"minLength=1"                                                         yaml:"name"`
	IfClass      string   `json:"ifclass"                    jsonschema:"pattern=^(downlink|fabric|custom|port_template_[a-zA-Z0-9_]+)$" yaml:"ifclass"`
	Config       string   `json:"config,omitempty"           yaml:"config,omitempty"`
	Description  string   `json:"description,omitempty"      jsonschema:"maxLength=64"                                                        yaml:"description,omitempty"`
	Enabled      *bool    `json:"enabled,omitempty"          yaml:"enabled,omitempty"`
	UntaggedVLAN *int     `json:"untagged_vlan,omitempty"    jsonschema:"minimum=1,maximum=4094"                                           yaml:"untagged_vlan,omitempty"`
	TaggedVLANs  []int    `json:"tagged_vlan_list,omitempty" yaml:"tagged_vlan_list,omitempty"`
	MTU          *int     `json:"mtu,omitempty"              jsonschema:"minimum=68,maximum=9214"                                          yaml:"mtu,omitempty"`
	Tags         []string `json:"tags,omitempty"             yaml:"tags,omitempty"`
}

// IsEnabled returns whether the interface is administratively up. Defaults to true.
func (i Interface) IsEnabled() bool {
	if i.Enabled == nil {
		return true
	}

	return *i.Enabled
}

// VRF is a routing instance.
type VRF struct {
	Name               string   `json:"name"                           jsonschema:"minLength=1"                 yaml:"name"`
	VRFID              int      `json:"vrf_id"                         jsonschema:"minimum=1,maximum=65535" yaml:"vrf_id"`
	ImportRouteTargets []string `json:"import_route_targets,omitempty" yaml:"import_route_targets,omitempty"`
	ExportRouteTargets []string `json:"export_route_targets,omitempty" yaml:"export_route_targets,omitempty"`
}

// VXLAN maps a VLAN into the overlay.
type VXLAN struct {
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	VNI         int      `json:"vni"                   jsonschema:"minimum=1,maximum=16777215" yaml:"vni"`
	VRF         string   `json:"vrf,omitempty"         yaml:"vrf,omitempty"`
	VLANID      int      `json:"vlan_id"               jsonschema:"minimum=1,maximum=4094"     yaml:"vlan_id"`
	VLANName    string   `json:"vlan_name,omitempty"   jsonschema:"maxLength=31"               yaml:"vlan_name,omitempty"`
	IPv4GW      string   `json:"ipv4_gw,omitempty"     yaml:"ipv4_gw,omitempty"`
	Groups      []string `json:"groups,omitempty"      yaml:"groups,omitempty"`
	Devices     []string `json:"devices,omitempty"     yaml:"devices,omitempty"`
}

// Underlay holds fabric addressing pools in CIDR notation.
type Underlay struct {
	InfraLoNet   string `json:"infra_lo_net"   jsonschema:"minLength=1" yaml:"infra_lo_net"`
	InfraLinkNet string `json:"infra_link_net" jsonschema:"minLength=1" yaml:"infra_link_net"`
	MgmtLoNet    string `json:"mgmt_lo_net"    jsonschema:"minLength=1" yaml:"mgmt_lo_net"`
}

// EVPNPeer is a BGP EVPN peer.
type EVPNPeer struct {
	Hostname string `json:"hostname" jsonschema:"minLength=1" yaml:"hostname"`
}

// ExtrouteStatic groups static routes per VRF.
type ExtrouteStatic struct {
	VRFs []ExtrouteStaticVRF `json:"vrfs,omitempty" yaml:"vrfs,omitempty"`
}

// ExtrouteStaticVRF holds the static routes of one VRF.
type ExtrouteStaticVRF struct {
	Name string        `json:"name"           jsonschema:"minLength=1" yaml:"name"`
	IPv4 []StaticRoute `json:"ipv4,omitempty" yaml:"ipv4,omitempty"`
}

// StaticRoute is one IPv4 static route.
type StaticRoute struct {
	Destination  string `json:"destination"              jsonschema:"minLength=1" yaml:"destination"`
	Nexthop      string `json:"nexthop"                  jsonschema:"format=ipv4" yaml:"nexthop"`
	Interface    string `json:"interface,omitempty"      yaml:"interface,omitempty"`
	Name         string `json:"name,omitempty"           yaml:"name,omitempty"`
	CLIAppendStr string `json:"cli_append_str,omitempty" yaml:"cli_append_str,omitempty"`
}

// InternalVLANs reserves a contiguous VLAN range.
type InternalVLANs struct {
	VLANIDLow  int `json:"vlan_id_low"  jsonschema:"minimum=1,maximum=4094" yaml:"vlan_id_low"`
	VLANIDHigh int `json:"vlan_id_high" jsonschema:"minimum=1,maximum=4094" yaml:"vlan_id_high"`
}
