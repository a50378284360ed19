package intf

import (
	"context"
	"errors"
	"sync"

	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/util"
)

// handler is implemented by the four interface handlers.
type handler interface {
	resource(ctx context.Context, name string) (Resource, error)

	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
	Default(ctx context.Context, name string) error
	SetDescription(ctx context.Context, name string, o Options[string]) error
	SetShutdown(ctx context.Context, name string, o Options[bool]) error
}

// The typed Get results are converted explicitly so that a missing
// interface is a nil Resource, not a typed nil pointer.

func (h *GenericHandler) resource(ctx context.Context, name string) (Resource, error) {
	r, err := h.Get(ctx, name)
	if r == nil {
		return nil, err
	}
	return r, err
}

func (h *EthernetHandler) resource(ctx context.Context, name string) (Resource, error) {
	r, err := h.Get(ctx, name)
	if r == nil {
		return nil, err
	}
	return r, err
}

func (h *PortChannelHandler) resource(ctx context.Context, name string) (Resource, error) {
	r, err := h.Get(ctx, name)
	if r == nil {
		return nil, err
	}
	return r, err
}

func (h *VxlanHandler) resource(ctx context.Context, name string) (Resource, error) {
	r, err := h.Get(ctx, name)
	if r == nil {
		return nil, err
	}
	return r, err
}

// Interfaces is the facade over every interface of one device. Each call
// resolves the handler from the interface name; handlers are created on
// first use and shared for the facade's lifetime.
type Interfaces struct {
	node     device.Node
	once     [numKinds]sync.Once
	handlers [numKinds]handler
}

// New creates a facade for node.
func New(node device.Node) *Interfaces {
	return &Interfaces{node: node}
}

// Node returns the device the facade is bound to.
func (f *Interfaces) Node() device.Node { return f.node }

func (f *Interfaces) handler(k Kind) handler {
	f.once[k].Do(func() {
		switch k {
		case KindEthernet:
			f.handlers[k] = NewEthernetHandler(f.node)
		case KindPortChannel:
			f.handlers[k] = NewPortChannelHandler(f.node)
		case KindVxlan:
			f.handlers[k] = NewVxlanHandler(f.node)
		default:
			f.handlers[k] = NewGenericHandler(f.node)
		}
	})
	return f.handlers[k]
}

// Generic returns the shared generic handler.
func (f *Interfaces) Generic() *GenericHandler {
	return f.handler(KindGeneric).(*GenericHandler)
}

// Ethernet returns the shared Ethernet handler.
func (f *Interfaces) Ethernet() *EthernetHandler {
	return f.handler(KindEthernet).(*EthernetHandler)
}

// PortChannel returns the shared Port-Channel handler.
func (f *Interfaces) PortChannel() *PortChannelHandler {
	return f.handler(KindPortChannel).(*PortChannelHandler)
}

// Vxlan returns the shared VXLAN handler.
func (f *Interfaces) Vxlan() *VxlanHandler {
	return f.handler(KindVxlan).(*VxlanHandler)
}

// Supports reports whether op can be applied to the interface name.
func (f *Interfaces) Supports(op Operation, name string) bool {
	return KindOf(name).Supports(op)
}

// resolve returns the handler for name, or an *util.UnsupportedError when
// its kind does not offer op.
func (f *Interfaces) resolve(op Operation, name string) (handler, error) {
	kind := KindOf(name)
	if !kind.Supports(op) {
		util.WithInterface(f.node.Name(), name).Debugf("%s is not supported on %s interfaces", op, kind)
		return nil, util.NewUnsupportedError(string(op), name, kind.String())
	}
	return f.handler(kind), nil
}

func resolveAs[H handler](f *Interfaces, op Operation, name string) (H, error) {
	var zero H
	h, err := f.resolve(op, name)
	if err != nil {
		return zero, err
	}
	typed, ok := h.(H)
	if !ok {
		return zero, util.NewUnsupportedError(string(op), name, KindOf(name).String())
	}
	return typed, nil
}

// Get returns the record of name, or nil if it is not configured.
func (f *Interfaces) Get(ctx context.Context, name string) (Resource, error) {
	return f.handler(KindOf(name)).resource(ctx, name)
}

// Names lists every interface in the running configuration, in order.
func (f *Interfaces) Names(ctx context.Context) ([]string, error) {
	config, err := f.node.RunningConfig(ctx)
	if err != nil {
		return nil, err
	}
	return interfaceNames(config), nil
}

// GetAll returns the record of every configured interface keyed by name.
// Interfaces whose stanza cannot be parsed are logged and left out;
// device errors abort the scan.
func (f *Interfaces) GetAll(ctx context.Context) (map[string]Resource, error) {
	names, err := f.Names(ctx)
	if err != nil {
		return nil, err
	}

	all := make(map[string]Resource, len(names))
	for _, name := range names {
		r, err := f.Get(ctx, name)
		var perr *util.ParseError
		switch {
		case errors.As(err, &perr):
			util.WithInterface(f.node.Name(), name).Warnf("Skipping interface: %v", err)
			continue
		case err != nil:
			return nil, err
		case r == nil:
			continue
		}
		all[name] = r
	}
	return all, nil
}

// Create creates a logical interface. Ethernet ports cannot be created.
func (f *Interfaces) Create(ctx context.Context, name string) error {
	h, err := f.resolve(OpCreate, name)
	if err != nil {
		return err
	}
	return h.Create(ctx, name)
}

// Delete removes a logical interface. Ethernet ports cannot be deleted.
func (f *Interfaces) Delete(ctx context.Context, name string) error {
	h, err := f.resolve(OpDelete, name)
	if err != nil {
		return err
	}
	return h.Delete(ctx, name)
}

// Default resets name to its default configuration.
func (f *Interfaces) Default(ctx context.Context, name string) error {
	h, err := f.resolve(OpDefault, name)
	if err != nil {
		return err
	}
	return h.Default(ctx, name)
}

// SetDescription sets, negates or defaults the description of name.
func (f *Interfaces) SetDescription(ctx context.Context, name string, o Options[string]) error {
	h, err := f.resolve(OpSetDescription, name)
	if err != nil {
		return err
	}
	return h.SetDescription(ctx, name, o)
}

// SetShutdown sets the administrative state of name.
func (f *Interfaces) SetShutdown(ctx context.Context, name string, o Options[bool]) error {
	h, err := f.resolve(OpSetShutdown, name)
	if err != nil {
		return err
	}
	return h.SetShutdown(ctx, name, o)
}

// Ethernet operations.

// SetSflow toggles sFlow on an Ethernet port.
func (f *Interfaces) SetSflow(ctx context.Context, name string, o Options[bool]) error {
	h, err := resolveAs[*EthernetHandler](f, OpSetSflow, name)
	if err != nil {
		return err
	}
	return h.SetSflow(ctx, name, o)
}

// SetFlowcontrolSend sets transmit flow control on an Ethernet port.
func (f *Interfaces) SetFlowcontrolSend(ctx context.Context, name string, o Options[string]) error {
	h, err := resolveAs[*EthernetHandler](f, OpSetFlowcontrolSend, name)
	if err != nil {
		return err
	}
	return h.SetFlowcontrolSend(ctx, name, o)
}

// SetFlowcontrolReceive sets receive flow control on an Ethernet port.
func (f *Interfaces) SetFlowcontrolReceive(ctx context.Context, name string, o Options[string]) error {
	h, err := resolveAs[*EthernetHandler](f, OpSetFlowcontrolReceive, name)
	if err != nil {
		return err
	}
	return h.SetFlowcontrolReceive(ctx, name, o)
}

// Port-Channel operations.

// SetMinimumLinks sets the min-links of a port-channel.
func (f *Interfaces) SetMinimumLinks(ctx context.Context, name string, o Options[string]) error {
	h, err := resolveAs[*PortChannelHandler](f, OpSetMinimumLinks, name)
	if err != nil {
		return err
	}
	return h.SetMinimumLinks(ctx, name, o)
}

// SetLacpFallback sets the LACP fallback mode of a port-channel.
func (f *Interfaces) SetLacpFallback(ctx context.Context, name string, o Options[string]) error {
	h, err := resolveAs[*PortChannelHandler](f, OpSetLacpFallback, name)
	if err != nil {
		return err
	}
	return h.SetLacpFallback(ctx, name, o)
}

// SetLacpTimeout sets the LACP fallback timeout of a port-channel.
func (f *Interfaces) SetLacpTimeout(ctx context.Context, name string, o Options[string]) error {
	h, err := resolveAs[*PortChannelHandler](f, OpSetLacpTimeout, name)
	if err != nil {
		return err
	}
	return h.SetLacpTimeout(ctx, name, o)
}

// SetLacpMode rebinds every member of a port-channel with mode.
func (f *Interfaces) SetLacpMode(ctx context.Context, name, mode string) error {
	h, err := resolveAs[*PortChannelHandler](f, OpSetLacpMode, name)
	if err != nil {
		return err
	}
	return h.SetLacpMode(ctx, name, mode)
}

// SetMembers reconciles the members of a port-channel to members.
func (f *Interfaces) SetMembers(ctx context.Context, name string, members []string) error {
	h, err := resolveAs[*PortChannelHandler](f, OpSetMembers, name)
	if err != nil {
		return err
	}
	return h.SetMembers(ctx, name, members)
}

// AddMember binds member to a port-channel.
func (f *Interfaces) AddMember(ctx context.Context, name, member string) error {
	h, err := resolveAs[*PortChannelHandler](f, OpAddMember, name)
	if err != nil {
		return err
	}
	return h.AddMember(ctx, name, member)
}

// RemoveMember unbinds member from a port-channel.
func (f *Interfaces) RemoveMember(ctx context.Context, name, member string) error {
	h, err := resolveAs[*PortChannelHandler](f, OpRemoveMember, name)
	if err != nil {
		return err
	}
	return h.RemoveMember(ctx, name, member)
}

// VXLAN operations. An empty name targets DefaultVxlan.

// SetSourceInterface sets the source interface of a VXLAN interface.
func (f *Interfaces) SetSourceInterface(ctx context.Context, name string, o Options[string]) error {
	name = vxlanName(name)
	h, err := resolveAs[*VxlanHandler](f, OpSetSourceInterface, name)
	if err != nil {
		return err
	}
	return h.SetSourceInterface(ctx, name, o)
}

// SetMulticastGroup sets the flood multicast group of a VXLAN interface.
func (f *Interfaces) SetMulticastGroup(ctx context.Context, name string, o Options[string]) error {
	name = vxlanName(name)
	h, err := resolveAs[*VxlanHandler](f, OpSetMulticastGroup, name)
	if err != nil {
		return err
	}
	return h.SetMulticastGroup(ctx, name, o)
}

// SetUDPPort sets the UDP port of a VXLAN interface.
func (f *Interfaces) SetUDPPort(ctx context.Context, name string, o Options[string]) error {
	name = vxlanName(name)
	h, err := resolveAs[*VxlanHandler](f, OpSetUDPPort, name)
	if err != nil {
		return err
	}
	return h.SetUDPPort(ctx, name, o)
}

// AddVtep adds vtep to the flood list of a VXLAN interface.
func (f *Interfaces) AddVtep(ctx context.Context, name, vtep string) error {
	name = vxlanName(name)
	h, err := resolveAs[*VxlanHandler](f, OpAddVtep, name)
	if err != nil {
		return err
	}
	return h.AddVtep(ctx, name, vtep)
}

// RemoveVtep removes vtep from the flood list of a VXLAN interface.
func (f *Interfaces) RemoveVtep(ctx context.Context, name, vtep string) error {
	name = vxlanName(name)
	h, err := resolveAs[*VxlanHandler](f, OpRemoveVtep, name)
	if err != nil {
		return err
	}
	return h.RemoveVtep(ctx, name, vtep)
}

// UpdateVlan maps vlan to vni on a VXLAN interface.
func (f *Interfaces) UpdateVlan(ctx context.Context, name, vlan, vni string) error {
	name = vxlanName(name)
	h, err := resolveAs[*VxlanHandler](f, OpUpdateVlan, name)
	if err != nil {
		return err
	}
	return h.UpdateVlan(ctx, name, vlan, vni)
}

// RemoveVlan removes the VNI mapping of vlan.
func (f *Interfaces) RemoveVlan(ctx context.Context, name, vlan string) error {
	name = vxlanName(name)
	h, err := resolveAs[*VxlanHandler](f, OpRemoveVlan, name)
	if err != nil {
		return err
	}
	return h.RemoveVlan(ctx, name, vlan)
}
