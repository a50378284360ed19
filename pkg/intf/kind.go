// Package intf reads and configures switch interfaces. Interfaces are
// dispatched by the first two letters of their name to one of four
// handlers (generic, Ethernet, Port-Channel, VXLAN); each handler parses
// attributes out of the interface's running-configuration stanza and turns
// mutations into configuration command batches.
package intf

import (
	"fmt"
	"strings"
)

// Kind identifies which handler serves an interface.
type Kind int

const (
	KindGeneric Kind = iota
	KindEthernet
	KindPortChannel
	KindVxlan

	numKinds
)

var kindNames = [numKinds]string{
	KindGeneric:     "generic",
	KindEthernet:    "ethernet",
	KindPortChannel: "portchannel",
	KindVxlan:       "vxlan",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf resolves an interface name by its case-insensitive two-letter
// prefix: ET is Ethernet, PO is Port-Channel, VX is VXLAN, and anything
// else is generic. The rest of the name is not inspected.
func KindOf(name string) Kind {
	if len(name) < 2 {
		return KindGeneric
	}
	switch strings.ToUpper(name[:2]) {
	case "ET":
		return KindEthernet
	case "PO":
		return KindPortChannel
	case "VX":
		return KindVxlan
	default:
		return KindGeneric
	}
}

// Operation names a facade operation.
type Operation string

const (
	OpGet                   Operation = "get"
	OpCreate                Operation = "create"
	OpDelete                Operation = "delete"
	OpDefault               Operation = "default"
	OpSetDescription        Operation = "set_description"
	OpSetShutdown           Operation = "set_shutdown"
	OpSetSflow              Operation = "set_sflow"
	OpSetFlowcontrolSend    Operation = "set_flowcontrol_send"
	OpSetFlowcontrolReceive Operation = "set_flowcontrol_receive"
	OpSetMinimumLinks       Operation = "set_minimum_links"
	OpSetLacpFallback       Operation = "set_lacp_fallback"
	OpSetLacpTimeout        Operation = "set_lacp_timeout"
	OpSetLacpMode           Operation = "set_lacp_mode"
	OpSetMembers            Operation = "set_members"
	OpAddMember             Operation = "add_member"
	OpRemoveMember          Operation = "remove_member"
	OpSetSourceInterface    Operation = "set_source_interface"
	OpSetMulticastGroup     Operation = "set_multicast_group"
	OpSetUDPPort            Operation = "set_udp_port"
	OpAddVtep               Operation = "add_vtep"
	OpRemoveVtep            Operation = "remove_vtep"
	OpUpdateVlan            Operation = "update_vlan"
	OpRemoveVlan            Operation = "remove_vlan"
)

var allOperations = []Operation{
	OpGet, OpCreate, OpDelete, OpDefault, OpSetDescription, OpSetShutdown,
	OpSetSflow, OpSetFlowcontrolSend, OpSetFlowcontrolReceive,
	OpSetMinimumLinks, OpSetLacpFallback, OpSetLacpTimeout, OpSetLacpMode,
	OpSetMembers, OpAddMember, OpRemoveMember,
	OpSetSourceInterface, OpSetMulticastGroup, OpSetUDPPort,
	OpAddVtep, OpRemoveVtep, OpUpdateVlan, OpRemoveVlan,
}

// Operations returns every operation the facade knows, in a stable order.
func Operations() []Operation {
	return append([]Operation(nil), allOperations...)
}

// ParseOperation looks up an operation by name. Dashes are accepted in
// place of underscores.
func ParseOperation(s string) (Operation, bool) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, op := range allOperations {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

func opSet(ops ...Operation) map[Operation]bool {
	m := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

var genericOps = []Operation{OpGet, OpCreate, OpDelete, OpDefault, OpSetDescription, OpSetShutdown}

// operationTable is the closed set of operations each kind supports.
var operationTable = [numKinds]map[Operation]bool{
	KindGeneric: opSet(genericOps...),
	KindEthernet: opSet(OpGet, OpDefault, OpSetDescription, OpSetShutdown,
		OpSetSflow, OpSetFlowcontrolSend, OpSetFlowcontrolReceive),
	KindPortChannel: opSet(append(genericOps,
		OpSetMinimumLinks, OpSetLacpFallback, OpSetLacpTimeout, OpSetLacpMode,
		OpSetMembers, OpAddMember, OpRemoveMember)...),
	KindVxlan: opSet(append(genericOps,
		OpSetSourceInterface, OpSetMulticastGroup, OpSetUDPPort,
		OpAddVtep, OpRemoveVtep, OpUpdateVlan, OpRemoveVlan)...),
}

// Supports reports whether interfaces of kind k accept op.
func (k Kind) Supports(op Operation) bool {
	if k < 0 || k >= numKinds {
		return false
	}
	return operationTable[k][op]
}
