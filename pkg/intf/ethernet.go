package intf

import (
	"context"
	"fmt"

	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/util"
)

// EthernetHandler serves physical ports.
type EthernetHandler struct {
	GenericHandler
}

// NewEthernetHandler creates a handler bound to node.
func NewEthernetHandler(node device.Node) *EthernetHandler {
	return &EthernetHandler{GenericHandler{node: node}}
}

// Get returns the port record, or nil if name has no stanza.
func (h *EthernetHandler) Get(ctx context.Context, name string) (*Ethernet, error) {
	base, block, err := h.read(ctx, name, KindEthernet)
	if err != nil || base == nil {
		return nil, err
	}
	return &Ethernet{
		Interface:          *base,
		Sflow:              parseSflow(block),
		FlowcontrolSend:    parseFlowcontrol(block, "send"),
		FlowcontrolReceive: parseFlowcontrol(block, "receive"),
	}, nil
}

// Create always fails: physical ports cannot be created.
func (h *EthernetHandler) Create(ctx context.Context, name string) error {
	return util.NewUnsupportedError(string(OpCreate), name, KindEthernet.String())
}

// Delete always fails: physical ports cannot be removed.
func (h *EthernetHandler) Delete(ctx context.Context, name string) error {
	return util.NewUnsupportedError(string(OpDelete), name, KindEthernet.String())
}

// SetSflow enables or disables sFlow sampling on the port.
func (h *EthernetHandler) SetSflow(ctx context.Context, name string, o Options[bool]) error {
	return h.configureIn(ctx, name, boolCommand("sflow enable", o))
}

// SetFlowcontrolSend sets transmit flow control ("on" or "off").
func (h *EthernetHandler) SetFlowcontrolSend(ctx context.Context, name string, o Options[string]) error {
	return h.SetFlowcontrol(ctx, name, "send", o)
}

// SetFlowcontrolReceive sets receive flow control ("on" or "off").
func (h *EthernetHandler) SetFlowcontrolReceive(ctx context.Context, name string, o Options[string]) error {
	return h.SetFlowcontrol(ctx, name, "receive", o)
}

// SetFlowcontrol configures flow control in one direction ("send" or
// "receive").
func (h *EthernetHandler) SetFlowcontrol(ctx context.Context, name, direction string, o Options[string]) error {
	if direction != "send" && direction != "receive" {
		return util.NewValidationError(fmt.Sprintf("flowcontrol direction must be send or receive, got %q", direction))
	}
	return h.configureIn(ctx, name, stringCommand("flowcontrol "+direction, o))
}
