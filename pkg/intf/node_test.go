package intf

import (
	"context"
	"strings"
	"testing"

	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/util"
)

const testConfig = `hostname leaf1
!
interface Ethernet1
   description uplink
   no shutdown
   channel-group 5 mode active
!
interface Ethernet2
   no sflow enable
   flowcontrol send on
   channel-group 5 mode active
!
interface Ethernet3
!
interface Ethernet4
!
interface Loopback0
   description router-id
   no shutdown
!
interface Port-Channel5
   description bond
   no shutdown
   port-channel min-links 1
   port-channel lacp fallback individual
   port-channel lacp fallback timeout 30
!
interface Port-Channel6
   port-channel lacp fallback timeout 90
!
interface Vxlan1
   vxlan source-interface Loopback0
   vxlan multicast-group 239.1.1.1
   vxlan vlan 10 vni 10010
   vxlan flood vtep 10.0.0.2 10.0.0.3
!
end
`

// recordingNode records every configure batch it is given and can be told
// to reject batches containing a particular command.
type recordingNode struct {
	*device.MemoryNode
	batches [][]string
	failOn  string
}

func newRecordingNode(config string) *recordingNode {
	return &recordingNode{MemoryNode: device.NewMemoryNode("leaf1", config)}
}

func (r *recordingNode) Configure(ctx context.Context, commands ...string) error {
	r.batches = append(r.batches, append([]string(nil), commands...))
	if r.failOn != "" {
		for _, c := range commands {
			if c == r.failOn {
				return util.NewCommandError(r.Name(), commands, "% injected failure")
			}
		}
	}
	return r.MemoryNode.Configure(ctx, commands...)
}

// commands returns every command sent, flattened.
func (r *recordingNode) commands() []string {
	var out []string
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func assertBatches(t *testing.T, r *recordingNode, want ...[]string) {
	t.Helper()
	if len(r.batches) != len(want) {
		t.Fatalf("got %d batch(es) %q, want %d %q", len(r.batches), r.batches, len(want), want)
	}
	for i := range want {
		if strings.Join(r.batches[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("batch %d = %q, want %q", i, r.batches[i], want[i])
		}
	}
}
