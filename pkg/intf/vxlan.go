package intf

import (
	"context"
	"fmt"

	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/util"
)

// DefaultVxlan is the interface VXLAN operations target when no name is given.
const DefaultVxlan = "Vxlan1"

// VxlanHandler serves VXLAN tunnel interfaces. Every method accepts an
// empty name as DefaultVxlan.
type VxlanHandler struct {
	GenericHandler
}

// NewVxlanHandler creates a handler bound to node.
func NewVxlanHandler(node device.Node) *VxlanHandler {
	return &VxlanHandler{GenericHandler{node: node}}
}

func vxlanName(name string) string {
	if name == "" {
		return DefaultVxlan
	}
	return util.NormalizeInterfaceName(name)
}

// Get returns the VXLAN record, or nil if the interface has no stanza.
func (h *VxlanHandler) Get(ctx context.Context, name string) (*Vxlan, error) {
	name = vxlanName(name)
	base, block, err := h.read(ctx, name, KindVxlan)
	if err != nil || base == nil {
		return nil, err
	}
	return &Vxlan{
		Interface:       *base,
		SourceInterface: parseSourceInterface(block),
		MulticastGroup:  parseMulticastGroup(block),
		UDPPort:         parseUDPPort(block),
		FloodList:       parseFloodList(block),
		Vlans:           parseVlans(block),
	}, nil
}

// SetSourceInterface sets the interface whose address sources the tunnel.
func (h *VxlanHandler) SetSourceInterface(ctx context.Context, name string, o Options[string]) error {
	return h.configureIn(ctx, vxlanName(name), stringCommand("vxlan source-interface", o))
}

// SetMulticastGroup sets the underlay group used for flooding.
func (h *VxlanHandler) SetMulticastGroup(ctx context.Context, name string, o Options[string]) error {
	return h.configureIn(ctx, vxlanName(name), stringCommand("vxlan multicast-group", o))
}

// SetUDPPort sets the VXLAN destination port.
func (h *VxlanHandler) SetUDPPort(ctx context.Context, name string, o Options[string]) error {
	return h.configureIn(ctx, vxlanName(name), stringCommand("vxlan udp-port", o))
}

// AddVtep appends a remote VTEP to the flood list.
func (h *VxlanHandler) AddVtep(ctx context.Context, name, vtep string) error {
	return h.configureIn(ctx, vxlanName(name), "vxlan flood vtep add "+vtep)
}

// RemoveVtep drops a remote VTEP from the flood list.
func (h *VxlanHandler) RemoveVtep(ctx context.Context, name, vtep string) error {
	return h.configureIn(ctx, vxlanName(name), "vxlan flood vtep remove "+vtep)
}

// UpdateVlan maps vlan to vni, replacing any existing mapping for vlan.
func (h *VxlanHandler) UpdateVlan(ctx context.Context, name, vlan, vni string) error {
	return h.configureIn(ctx, vxlanName(name), fmt.Sprintf("vxlan vlan %s vni %s", vlan, vni))
}

// RemoveVlan removes the VNI mapping of vlan.
func (h *VxlanHandler) RemoveVlan(ctx context.Context, name, vlan string) error {
	return h.configureIn(ctx, vxlanName(name), fmt.Sprintf("no vxlan vlan %s vni", vlan))
}
