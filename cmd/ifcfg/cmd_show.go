package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ifcfg/pkg/cli"
	"github.com/newtron-network/ifcfg/pkg/intf"
	"github.com/newtron-network/ifcfg/pkg/inventory"
	"github.com/newtron-network/ifcfg/pkg/util"
	"github.com/newtron-network/ifcfg/pkg/version"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every interface on the device",
	Long: `List every interface in the device's running configuration.

Interfaces whose configuration cannot be parsed are skipped (see -v).

Examples:
  ifcfg -d leaf1 list
  ifcfg -d leaf1 list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInterfaces(cmd, func(ctx context.Context, f *intf.Interfaces) error {
			all, err := f.GetAll(ctx)
			if err != nil {
				return err
			}
			if app.jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(all)
			}
			if len(all) == 0 {
				fmt.Println("No interfaces configured")
				return nil
			}

			names := make([]string, 0, len(all))
			for name := range all {
				names = append(names, name)
			}
			sort.Strings(names)

			t := cli.NewTable("INTERFACE", "TYPE", "STATE", "DESCRIPTION", "DETAIL")
			for _, name := range names {
				r := all[name]
				b := r.Base()
				t.Row(b.Name, b.Type.String(), cli.AdminState(b.Shutdown), cli.OrDash(b.Description), summary(r))
			}
			t.Flush()
			return nil
		})
	},
}

// summary is the one-line kind-specific detail shown by list.
func summary(r intf.Resource) string {
	switch v := r.(type) {
	case *intf.Ethernet:
		return fmt.Sprintf("flowcontrol send %s receive %s", v.FlowcontrolSend, v.FlowcontrolReceive)
	case *intf.PortChannel:
		if len(v.Members) == 0 {
			return "no members"
		}
		return fmt.Sprintf("members %s, lacp %s", util.CompactInterfaceList(v.Members), v.LacpMode)
	case *intf.Vxlan:
		return fmt.Sprintf("source %s, %d vni(s)", cli.OrDash(v.SourceInterface), len(v.Vlans))
	}
	return ""
}

var showCmd = &cobra.Command{
	Use:   "show [interface]",
	Short: "Show one interface",
	Long: `Show every attribute of one interface.

Examples:
  ifcfg -d leaf1 -i Ethernet1 show
  ifcfg -d leaf1 show po10 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := requireInterface(args, 0)
		if err != nil {
			return err
		}
		return withInterfaces(cmd, func(ctx context.Context, f *intf.Interfaces) error {
			r, err := f.Get(ctx, name)
			if err != nil {
				return err
			}
			if r == nil {
				return fmt.Errorf("interface %s is not configured on %s", name, app.deviceName)
			}
			if app.jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(r)
			}
			printResource(r)
			return nil
		})
	},
}

func printResource(r intf.Resource) {
	b := r.Base()
	fmt.Printf("Interface: %s\n", bold(b.Name))
	fmt.Printf("Type: %s\n", b.Type)
	fmt.Printf("State: %s\n", cli.AdminState(b.Shutdown))
	fmt.Printf("Description: %s\n", cli.OrDash(b.Description))

	switch v := r.(type) {
	case *intf.Ethernet:
		fmt.Printf("sFlow: %s\n", cli.YesNo(v.Sflow))
		fmt.Printf("Flowcontrol send: %s\n", v.FlowcontrolSend)
		fmt.Printf("Flowcontrol receive: %s\n", v.FlowcontrolReceive)
	case *intf.PortChannel:
		if len(v.Members) > 0 {
			fmt.Printf("Members: %s\n", strings.Join(v.Members, ", "))
		} else {
			fmt.Println("Members: (none)")
		}
		fmt.Printf("LACP mode: %s\n", v.LacpMode)
		fmt.Printf("Min links: %s\n", v.MinimumLinks)
		fmt.Printf("LACP fallback: %s (timeout %ss)\n", v.LacpFallback, v.LacpTimeout)
	case *intf.Vxlan:
		fmt.Printf("Source interface: %s\n", cli.OrDash(v.SourceInterface))
		fmt.Printf("Multicast group: %s\n", cli.OrDash(v.MulticastGroup))
		fmt.Printf("UDP port: %s\n", v.UDPPort)
		fmt.Printf("Flood list: %s\n", cli.OrDash(strings.Join(v.FloodList, ", ")))
		if len(v.Vlans) == 0 {
			fmt.Println("VLAN to VNI: (none)")
			return
		}
		fmt.Println("VLAN to VNI:")
		t := cli.NewTable("VLAN", "VNI")
		for _, vlan := range sortedKeys(v.Vlans) {
			t.Row("  "+vlan, v.Vlans[vlan])
		}
		t.Flush()
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var supportsCmd = &cobra.Command{
	Use:   "supports [operation]",
	Short: "Show which operations an interface supports",
	Long: `Show which operations the -i interface supports, or whether it supports one.

Does not contact the device: support depends only on the interface type.

Examples:
  ifcfg -i Ethernet1 supports
  ifcfg -i po10 supports set-lacp-mode`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := requireInterface(nil, 0)
		if err != nil {
			return err
		}
		kind := intf.KindOf(name)

		ops := intf.Operations()
		if len(args) == 1 {
			op, ok := intf.ParseOperation(args[0])
			if !ok {
				return fmt.Errorf("unknown operation %q", args[0])
			}
			ops = []intf.Operation{op}
		}

		if app.jsonOutput {
			out := make(map[intf.Operation]bool, len(ops))
			for _, op := range ops {
				out[op] = kind.Supports(op)
			}
			return json.NewEncoder(os.Stdout).Encode(out)
		}

		fmt.Printf("%s (%s):\n", bold(name), kind)
		for _, op := range ops {
			fmt.Printf("  %s %s\n", cli.DotPad(string(op), 28), cli.YesNo(kind.Supports(op)))
		}
		return nil
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices in the inventory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := inventory.Load(app.inventoryPath)
		if err != nil {
			return err
		}

		if app.jsonOutput {
			devs := make([]*inventory.Device, 0, len(inv.Devices))
			for _, name := range inv.Names() {
				dev, _ := inv.Device(name)
				devs = append(devs, redacted(dev))
			}
			return json.NewEncoder(os.Stdout).Encode(devs)
		}

		t := cli.NewTable("DEVICE", "TRANSPORT", "ADDRESS")
		for _, name := range inv.Names() {
			dev, _ := inv.Device(name)
			marker := name
			if name == app.settings.DefaultDevice {
				marker = name + " *"
			}
			t.Row(marker, string(dev.Transport), deviceAddress(dev))
		}
		t.Flush()
		return nil
	},
}

func redacted(dev *inventory.Device) *inventory.Device {
	d := *dev
	if d.Password != "" {
		d.Password = "********"
	}
	return &d
}

func deviceAddress(dev *inventory.Device) string {
	switch dev.Transport {
	case inventory.TransportRedis:
		return fmt.Sprintf("%s/%d", dev.Address, dev.DB)
	case inventory.TransportFile:
		return dev.Path
	}
	if dev.Port != 0 {
		return fmt.Sprintf("%s:%d", dev.Host, dev.Port)
	}
	return dev.Host
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("ifcfg dev build")
			return
		}
		fmt.Println("ifcfg " + version.Info())
	},
}
