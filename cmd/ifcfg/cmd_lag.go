package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ifcfg/pkg/intf"
	"github.com/newtron-network/ifcfg/pkg/util"
)

var addMemberCmd = &cobra.Command{
	Use:   "add-member <member>",
	Short: "Add an Ethernet port to a Port-Channel",
	Long: `Add an Ethernet port to the -i Port-Channel.

The member joins with the LACP mode of the existing members ("on" when
the Port-Channel is empty).

Examples:
  ifcfg -d leaf1 -i Port-Channel10 add-member Ethernet5 -x`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return memberOp(cmd, intf.OpAddMember, args[0], (*intf.Interfaces).AddMember)
	},
}

var removeMemberCmd = &cobra.Command{
	Use:   "remove-member <member>",
	Short: "Remove an Ethernet port from a Port-Channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return memberOp(cmd, intf.OpRemoveMember, args[0], (*intf.Interfaces).RemoveMember)
	},
}

func memberOp(cmd *cobra.Command, op intf.Operation, member string, fn func(*intf.Interfaces, context.Context, string, string) error) error {
	name, err := requireInterface(nil, 0)
	if err != nil {
		return err
	}
	member = util.NormalizeInterfaceName(member)
	return withWrite(cmd, op, name, func(ctx context.Context, f *intf.Interfaces) error {
		return fn(f, ctx, name, member)
	})
}

var setMembersCmd = &cobra.Command{
	Use:   "set-members <range>",
	Short: "Make a Port-Channel's members exactly the given ports",
	Long: `Reconcile the -i Port-Channel's members with a port range.

Ports not in the range are removed first, then missing ports are added.
Ports already in the bundle are not touched. An empty string removes
every member.

Examples:
  ifcfg -d leaf1 -i po10 set-members Ethernet3-4
  ifcfg -d leaf1 -i po10 set-members et1,3,5-6 -x
  ifcfg -d leaf1 -i po10 set-members "" -x`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := requireInterface(nil, 0)
		if err != nil {
			return err
		}
		members, err := expandMembers(args[0])
		if err != nil {
			return err
		}
		return withWrite(cmd, intf.OpSetMembers, name, func(ctx context.Context, f *intf.Interfaces) error {
			return f.SetMembers(ctx, name, members)
		})
	},
}

// expandMembers turns "et1-2,5" into normalized interface names.
func expandMembers(spec string) ([]string, error) {
	if spec == "" {
		return []string{}, nil
	}
	names, err := util.ExpandInterfaceList(spec)
	if err != nil {
		return nil, err
	}
	for i, n := range names {
		names[i] = util.NormalizeInterfaceName(n)
		if intf.KindOf(names[i]) != intf.KindEthernet {
			return nil, fmt.Errorf("%s is not an Ethernet port", names[i])
		}
	}
	return names, nil
}
