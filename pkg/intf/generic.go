package intf

import (
	"context"
	"regexp"

	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/util"
)

// GenericHandler serves interfaces with no type-specific attributes
// (Loopback, Vlan, Management and anything unrecognised). The other
// handlers embed it for the common attributes and lifecycle commands.
type GenericHandler struct {
	node device.Node
}

// NewGenericHandler creates a handler bound to node.
func NewGenericHandler(node device.Node) *GenericHandler {
	return &GenericHandler{node: node}
}

// Get returns the interface record, or nil if name has no stanza in the
// running configuration. Names may be abbreviated ("lo0", "vl10").
func (h *GenericHandler) Get(ctx context.Context, name string) (*Interface, error) {
	base, _, err := h.read(ctx, name, KindGeneric)
	return base, err
}

// Create enters the interface, creating it if needed.
func (h *GenericHandler) Create(ctx context.Context, name string) error {
	name = util.NormalizeInterfaceName(name)
	return h.configure(ctx, name, "interface "+name)
}

// Delete removes the interface. Deleting an absent interface succeeds.
func (h *GenericHandler) Delete(ctx context.Context, name string) error {
	name = util.NormalizeInterfaceName(name)
	return h.configure(ctx, name, "no interface "+name)
}

// Default resets the interface to its default configuration.
func (h *GenericHandler) Default(ctx context.Context, name string) error {
	name = util.NormalizeInterfaceName(name)
	return h.configure(ctx, name, "default interface "+name)
}

// SetDescription configures, negates (empty value) or defaults the
// description.
func (h *GenericHandler) SetDescription(ctx context.Context, name string, o Options[string]) error {
	return h.configureIn(ctx, name, stringCommand("description", o))
}

// SetShutdown sets the administrative state; true shuts the interface down.
func (h *GenericHandler) SetShutdown(ctx context.Context, name string, o Options[bool]) error {
	return h.configureIn(ctx, name, boolCommand("shutdown", o))
}

// read fetches the stanza of name and parses the common attributes into a
// record of the given kind. It returns a nil record when the stanza is
// absent. Abbreviated names are expanded first, so the record always
// carries the running-configuration spelling.
func (h *GenericHandler) read(ctx context.Context, name string, kind Kind) (*Interface, string, error) {
	name = util.NormalizeInterfaceName(name)
	block, found, err := h.block(ctx, name)
	if err != nil || !found {
		return nil, "", err
	}
	util.WithInterface(h.node.Name(), name).Debugf("Parsing %s interface", kind)

	return &Interface{
		Name:        name,
		Type:        kind,
		Description: parseDescription(block),
		Shutdown:    parseShutdown(block),
	}, block, nil
}

func (h *GenericHandler) block(ctx context.Context, name string) (string, bool, error) {
	return device.GetBlock(ctx, h.node, "interface "+regexp.QuoteMeta(name))
}

// configureIn applies commands inside the stanza of name.
func (h *GenericHandler) configureIn(ctx context.Context, name string, commands ...string) error {
	name = util.NormalizeInterfaceName(name)
	return h.configure(ctx, name, append([]string{"interface " + name}, commands...)...)
}

// configure submits commands as one batch and logs the outcome against name.
func (h *GenericHandler) configure(ctx context.Context, name string, commands ...string) error {
	log := util.WithInterface(h.node.Name(), name)
	if err := h.node.Configure(ctx, commands...); err != nil {
		log.Warnf("Configuration rejected: %v", err)
		return err
	}
	log.Infof("Applied %d command(s)", len(commands))
	return nil
}
