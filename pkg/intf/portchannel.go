package intf

import (
	"context"
	"fmt"

	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/util"
)

// lacpModes are the accepted channel-group modes.
var lacpModes = map[string]bool{"active": true, "passive": true, "on": true}

// PortChannelHandler serves link-aggregation bundles.
type PortChannelHandler struct {
	GenericHandler
}

// NewPortChannelHandler creates a handler bound to node.
func NewPortChannelHandler(node device.Node) *PortChannelHandler {
	return &PortChannelHandler{GenericHandler{node: node}}
}

// Get returns the port-channel record, or nil if name has no stanza.
// A stanza without "lacp fallback timeout" is a *util.ParseError.
func (h *PortChannelHandler) Get(ctx context.Context, name string) (*PortChannel, error) {
	base, block, err := h.read(ctx, name, KindPortChannel)
	if err != nil || base == nil {
		return nil, err
	}
	name = base.Name

	members, err := h.Members(ctx, name)
	if err != nil {
		return nil, err
	}
	mode, err := h.lacpMode(ctx, name, members)
	if err != nil {
		return nil, err
	}
	timeout, ok := parseLacpTimeout(block)
	if !ok {
		return nil, util.NewParseError(name, "lacp_timeout")
	}

	return &PortChannel{
		Interface:    *base,
		Members:      members,
		LacpMode:     mode,
		MinimumLinks: parseMinimumLinks(block),
		LacpFallback: parseLacpFallback(block),
		LacpTimeout:  timeout,
	}, nil
}

// Members queries the device for the ports bound to the port-channel.
func (h *PortChannelHandler) Members(ctx context.Context, name string) ([]string, error) {
	out, err := h.node.Enable(ctx, fmt.Sprintf("show port-channel %s all-ports", groupID(name)), device.EncodingText)
	if err != nil {
		return nil, err
	}
	return parseMembers(out), nil
}

// lacpMode reads the channel-group mode from the first member, or "on"
// when there are no members.
func (h *PortChannelHandler) lacpMode(ctx context.Context, name string, members []string) (string, error) {
	if len(members) == 0 {
		return defaultLacpMode, nil
	}
	block, _, err := h.block(ctx, members[0])
	if err != nil {
		return "", err
	}
	return parseLacpMode(block, groupID(name)), nil
}

// SetMinimumLinks sets how many members must be up for the bundle to be up.
func (h *PortChannelHandler) SetMinimumLinks(ctx context.Context, name string, o Options[string]) error {
	return h.configureIn(ctx, name, stringCommand("port-channel min-links", o))
}

// SetLacpFallback configures fallback ("static" or "individual"). A value
// of "disabled" negates it like an empty value.
func (h *PortChannelHandler) SetLacpFallback(ctx context.Context, name string, o Options[string]) error {
	if o.Value == defaultLacpFallback {
		o.Value = ""
	}
	return h.configureIn(ctx, name, stringCommand("port-channel lacp fallback", o))
}

// SetLacpTimeout sets the fallback timeout in seconds.
func (h *PortChannelHandler) SetLacpTimeout(ctx context.Context, name string, o Options[string]) error {
	return h.configureIn(ctx, name, stringCommand("port-channel lacp fallback timeout", o))
}

// SetMembers reconciles the bundle to exactly members: current members not
// wanted are removed first, then missing ones are added with the bundle's
// current LACP mode. Names are normalized and repeats ignored. Each change
// is its own batch and the first failure stops reconciliation without
// undoing earlier changes.
func (h *PortChannelHandler) SetMembers(ctx context.Context, name string, members []string) error {
	current, err := h.Members(ctx, name)
	if err != nil {
		return err
	}
	mode, err := h.lacpMode(ctx, name, current)
	if err != nil {
		return err
	}

	desired := make([]string, 0, len(members))
	for _, m := range members {
		m = util.NormalizeInterfaceName(m)
		if !contains(desired, m) {
			desired = append(desired, m)
		}
	}

	for _, m := range current {
		if contains(desired, m) {
			continue
		}
		if err := h.removeMember(ctx, name, m); err != nil {
			return err
		}
	}
	for _, m := range desired {
		if contains(current, m) {
			continue
		}
		if err := h.addMember(ctx, name, m, mode); err != nil {
			return err
		}
	}
	return nil
}

// AddMember binds member to the port-channel using its current LACP mode.
func (h *PortChannelHandler) AddMember(ctx context.Context, name, member string) error {
	current, err := h.Members(ctx, name)
	if err != nil {
		return err
	}
	mode, err := h.lacpMode(ctx, name, current)
	if err != nil {
		return err
	}
	return h.addMember(ctx, name, util.NormalizeInterfaceName(member), mode)
}

// RemoveMember unbinds member from the port-channel.
func (h *PortChannelHandler) RemoveMember(ctx context.Context, name, member string) error {
	return h.removeMember(ctx, name, util.NormalizeInterfaceName(member))
}

func (h *PortChannelHandler) addMember(ctx context.Context, name, member, mode string) error {
	return h.configure(ctx, name,
		"interface "+member,
		fmt.Sprintf("channel-group %s mode %s", groupID(name), mode))
}

func (h *PortChannelHandler) removeMember(ctx context.Context, name, member string) error {
	return h.configure(ctx, name,
		"interface "+member,
		"no channel-group "+groupID(name))
}

// SetLacpMode rebinds every member with mode. All members are removed and
// then re-added in a single batch. An invalid mode fails before anything
// is sent to the device.
func (h *PortChannelHandler) SetLacpMode(ctx context.Context, name, mode string) error {
	if !lacpModes[mode] {
		return util.NewValidationError(fmt.Sprintf("lacp mode must be one of active, passive, on; got %q", mode))
	}

	members, err := h.Members(ctx, name)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		util.WithInterface(h.node.Name(), name).Debugf("No members, lacp mode unchanged")
		return nil
	}

	id := groupID(name)
	var removes, adds []string
	for _, m := range members {
		removes = append(removes, "interface "+m, "no channel-group "+id)
		adds = append(adds, "interface "+m, fmt.Sprintf("channel-group %s mode %s", id, mode))
	}
	return h.configure(ctx, name, append(removes, adds...)...)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
