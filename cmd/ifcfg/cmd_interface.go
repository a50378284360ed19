package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ifcfg/pkg/intf"
)

var createCmd = &cobra.Command{
	Use:   "create [interface]",
	Short: "Create an interface",
	Long: `Create a logical interface (Port-Channel, Vxlan, Loopback, ...).

Ethernet ports are physical and cannot be created.

Examples:
  ifcfg -d leaf1 create Port-Channel20 -x`,
	Args: cobra.MaximumNArgs(1),
	RunE: lifecycle(intf.OpCreate, (*intf.Interfaces).Create),
}

var deleteCmd = &cobra.Command{
	Use:   "delete [interface]",
	Short: "Delete an interface",
	Args:  cobra.MaximumNArgs(1),
	RunE:  lifecycle(intf.OpDelete, (*intf.Interfaces).Delete),
}

var defaultCmd = &cobra.Command{
	Use:   "default [interface]",
	Short: "Return an interface to its default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  lifecycle(intf.OpDefault, (*intf.Interfaces).Default),
}

func lifecycle(op intf.Operation, fn func(*intf.Interfaces, context.Context, string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		name, err := requireInterface(args, 0)
		if err != nil {
			return err
		}
		return withWrite(cmd, op, name, func(ctx context.Context, f *intf.Interfaces) error {
			return fn(f, ctx, name)
		})
	}
}

// property is one settable interface attribute. Exactly one of str and
// boolean is set.
type property struct {
	op      intf.Operation
	str     func(*intf.Interfaces, context.Context, string, intf.Options[string]) error
	boolean func(*intf.Interfaces, context.Context, string, intf.Options[bool]) error
	vxlan   bool
}

var properties = map[string]property{
	"description":         {op: intf.OpSetDescription, str: (*intf.Interfaces).SetDescription},
	"shutdown":            {op: intf.OpSetShutdown, boolean: (*intf.Interfaces).SetShutdown},
	"sflow":               {op: intf.OpSetSflow, boolean: (*intf.Interfaces).SetSflow},
	"flowcontrol-send":    {op: intf.OpSetFlowcontrolSend, str: (*intf.Interfaces).SetFlowcontrolSend},
	"flowcontrol-receive": {op: intf.OpSetFlowcontrolReceive, str: (*intf.Interfaces).SetFlowcontrolReceive},
	"min-links":           {op: intf.OpSetMinimumLinks, str: (*intf.Interfaces).SetMinimumLinks},
	"lacp-fallback":       {op: intf.OpSetLacpFallback, str: (*intf.Interfaces).SetLacpFallback},
	"lacp-timeout":        {op: intf.OpSetLacpTimeout, str: (*intf.Interfaces).SetLacpTimeout},
	"lacp-mode":           {op: intf.OpSetLacpMode, str: setLacpMode},
	"source-interface":    {op: intf.OpSetSourceInterface, str: (*intf.Interfaces).SetSourceInterface, vxlan: true},
	"multicast-group":     {op: intf.OpSetMulticastGroup, str: (*intf.Interfaces).SetMulticastGroup, vxlan: true},
	"udp-port":            {op: intf.OpSetUDPPort, str: (*intf.Interfaces).SetUDPPort, vxlan: true},
}

// setLacpMode adapts SetLacpMode, which always takes an explicit mode.
func setLacpMode(f *intf.Interfaces, ctx context.Context, name string, o intf.Options[string]) error {
	if o.Default || o.Value == "" {
		return fmt.Errorf("lacp-mode has no default: give one of active, passive, on")
	}
	return f.SetLacpMode(ctx, name, o.Value)
}

func propertyNames() []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupProperty(name string) (property, error) {
	p, ok := properties[strings.ToLower(name)]
	if !ok {
		return property{}, fmt.Errorf("unknown property %q (valid: %s)", name, strings.Join(propertyNames(), ", "))
	}
	return p, nil
}

// parseSwitch accepts the spellings of a boolean property value.
func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "enable", "enabled", "yes":
		return true, nil
	case "off", "disable", "disabled", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}

// applyProperty sets (value non-nil), resets (useDefault) or negates a
// property on name.
func applyProperty(ctx context.Context, f *intf.Interfaces, p property, name string, value *string, useDefault bool) error {
	if p.boolean != nil {
		o := intf.Options[bool]{Default: useDefault}
		if value != nil {
			b, err := parseSwitch(*value)
			if err != nil {
				return err
			}
			o.Value = b
		}
		return p.boolean(f, ctx, name, o)
	}
	o := intf.Options[string]{Default: useDefault}
	if value != nil {
		o.Value = *value
	}
	return p.str(f, ctx, name, o)
}

var setDefault bool

var setCmd = &cobra.Command{
	Use:   "set <property> [value]",
	Short: "Set an interface property",
	Long: `Set an interface property, or return it to the default with --default.

Properties:
  description          any text
  shutdown             true | false
  sflow                true | false                       (Ethernet)
  flowcontrol-send     on | off | desired                 (Ethernet)
  flowcontrol-receive  on | off | desired                 (Ethernet)
  min-links            number                             (Port-Channel)
  lacp-fallback        individual | static | disabled     (Port-Channel)
  lacp-timeout         seconds                            (Port-Channel)
  lacp-mode            active | passive | on              (Port-Channel)
  source-interface     interface name                     (Vxlan)
  multicast-group      IPv4 group                         (Vxlan)
  udp-port             port number                        (Vxlan)

Vxlan properties default to Vxlan1 when -i is not given.

Examples:
  ifcfg -d leaf1 -i Ethernet1 set description "uplink to spine1" -x
  ifcfg -d leaf1 -i po10 set min-links 2
  ifcfg -d leaf1 -i Ethernet1 set flowcontrol-send --default`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupProperty(args[0])
		if err != nil {
			return err
		}
		var value *string
		switch {
		case setDefault && len(args) == 2:
			return fmt.Errorf("--default takes no value")
		case !setDefault && len(args) == 1:
			return fmt.Errorf("value required (or use --default)")
		case len(args) == 2:
			value = &args[1]
		}
		return runProperty(cmd, p, value, setDefault)
	},
}

var unsetCmd = &cobra.Command{
	Use:   "unset <property>",
	Short: "Remove an interface property",
	Long: `Remove an interface property with the "no" form of its command.

Examples:
  ifcfg -d leaf1 -i Ethernet1 unset description -x
  ifcfg -d leaf1 unset multicast-group`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupProperty(args[0])
		if err != nil {
			return err
		}
		return runProperty(cmd, p, nil, false)
	},
}

func runProperty(cmd *cobra.Command, p property, value *string, useDefault bool) error {
	name := vxlanInterface()
	if !p.vxlan {
		var err error
		if name, err = requireInterface(nil, 0); err != nil {
			return err
		}
	}
	return withWrite(cmd, p.op, name, func(ctx context.Context, f *intf.Interfaces) error {
		return applyProperty(ctx, f, p, name, value, useDefault)
	})
}

func init() {
	setCmd.Flags().BoolVar(&setDefault, "default", false, "Return the property to its default")
}
