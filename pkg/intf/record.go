package intf

// Interface holds the attributes every interface kind carries.
type Interface struct {
	Name        string `json:"name"`
	Type        Kind   `json:"type"`
	Description string `json:"description"`
	Shutdown    bool   `json:"shutdown"`
}

// Base returns the common attributes.
func (i *Interface) Base() *Interface { return i }

// Resource is a parsed interface record of any kind: *Interface,
// *Ethernet, *PortChannel or *Vxlan.
type Resource interface {
	Base() *Interface
}

// Ethernet is a physical port.
type Ethernet struct {
	Interface
	Sflow              bool   `json:"sflow"`
	FlowcontrolSend    string `json:"flowcontrol_send"`
	FlowcontrolReceive string `json:"flowcontrol_receive"`
}

// PortChannel is a link-aggregation bundle. Members come from the device's
// operational state, and LacpMode from the first member's configuration.
type PortChannel struct {
	Interface
	Members      []string `json:"members"`
	LacpMode     string   `json:"lacp_mode"`
	MinimumLinks string   `json:"minimum_links"`
	LacpFallback string   `json:"lacp_fallback"`
	LacpTimeout  string   `json:"lacp_timeout"`
}

// Vxlan is a VXLAN tunnel interface.
type Vxlan struct {
	Interface
	SourceInterface string            `json:"source_interface"`
	MulticastGroup  string            `json:"multicast_group"`
	UDPPort         string            `json:"udp_port"`
	FloodList       []string          `json:"flood_list"`
	Vlans           map[string]string `json:"vlans"`
}
