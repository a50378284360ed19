package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ifcfg/pkg/intf"
	"github.com/newtron-network/ifcfg/pkg/util"
)

var addVtepCmd = &cobra.Command{
	Use:   "add-vtep <ip>",
	Short: "Add a remote VTEP to the flood list",
	Long: `Add a remote VTEP to the head-end replication flood list.

Uses -i, or Vxlan1 when -i is not given.

Examples:
  ifcfg -d leaf1 add-vtep 10.0.0.13 -x`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return vtepOp(cmd, intf.OpAddVtep, args[0], (*intf.Interfaces).AddVtep)
	},
}

var removeVtepCmd = &cobra.Command{
	Use:   "remove-vtep <ip>",
	Short: "Remove a remote VTEP from the flood list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return vtepOp(cmd, intf.OpRemoveVtep, args[0], (*intf.Interfaces).RemoveVtep)
	},
}

func vtepOp(cmd *cobra.Command, op intf.Operation, vtep string, fn func(*intf.Interfaces, context.Context, string, string) error) error {
	if !util.IsValidIPv4(vtep) {
		return fmt.Errorf("invalid VTEP address %q", vtep)
	}
	name := vxlanInterface()
	return withWrite(cmd, op, name, func(ctx context.Context, f *intf.Interfaces) error {
		return fn(f, ctx, name, vtep)
	})
}

var mapVniCmd = &cobra.Command{
	Use:   "map-vni <vlan> <vni>",
	Short: "Map a VLAN to a VNI",
	Long: `Map a VLAN to a VXLAN network identifier, replacing any existing mapping.

Examples:
  ifcfg -d leaf1 map-vni 20 10020 -x`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		vlan, vni := args[0], args[1]
		if err := checkRange("vlan", vlan, 1, 4094); err != nil {
			return err
		}
		if err := checkRange("vni", vni, 1, 16777215); err != nil {
			return err
		}
		name := vxlanInterface()
		return withWrite(cmd, intf.OpUpdateVlan, name, func(ctx context.Context, f *intf.Interfaces) error {
			return f.UpdateVlan(ctx, name, vlan, vni)
		})
	},
}

var unmapVniCmd = &cobra.Command{
	Use:   "unmap-vni <vlan>",
	Short: "Remove a VLAN to VNI mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vlan := args[0]
		if err := checkRange("vlan", vlan, 1, 4094); err != nil {
			return err
		}
		name := vxlanInterface()
		return withWrite(cmd, intf.OpRemoveVlan, name, func(ctx context.Context, f *intf.Interfaces) error {
			return f.RemoveVlan(ctx, name, vlan)
		})
	},
}

func checkRange(what, s string, lo, hi int) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return fmt.Errorf("invalid %s %q (want %d-%d)", what, s, lo, hi)
	}
	return nil
}
