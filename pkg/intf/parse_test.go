package intf

import (
	"reflect"
	"testing"
)

func TestParseCommon(t *testing.T) {
	tests := []struct {
		name        string
		block       string
		description string
		shutdown    bool
	}{
		{
			name:        "description and no shutdown",
			block:       "interface Ethernet1\n   description to spine 1\n   no shutdown",
			description: "to spine 1",
			shutdown:    false,
		},
		{
			name:     "empty stanza is shut",
			block:    "interface Ethernet1",
			shutdown: true,
		},
		{
			name:     "explicit shutdown",
			block:    "interface Ethernet1\n   shutdown",
			shutdown: true,
		},
		{
			name:     "description needs three-space indent",
			block:    "interface Ethernet1\n description x",
			shutdown: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDescription(tt.block); got != tt.description {
				t.Errorf("parseDescription() = %q, want %q", got, tt.description)
			}
			if got := parseShutdown(tt.block); got != tt.shutdown {
				t.Errorf("parseShutdown() = %v, want %v", got, tt.shutdown)
			}
		})
	}
}

func TestParseEthernet(t *testing.T) {
	block := "interface Ethernet2\n   no sflow enable\n   flowcontrol receive desired"
	if parseSflow(block) {
		t.Error("parseSflow() with 'no sflow enable' = true")
	}
	if !parseSflow("interface Ethernet1") {
		t.Error("parseSflow() default should be true")
	}
	if got := parseFlowcontrol(block, "receive"); got != "desired" {
		t.Errorf("parseFlowcontrol(receive) = %q", got)
	}
	if got := parseFlowcontrol(block, "send"); got != "off" {
		t.Errorf("parseFlowcontrol(send) = %q, want off", got)
	}
}

func TestParsePortChannel(t *testing.T) {
	block := "interface Port-Channel5\n   port-channel min-links 2\n   port-channel lacp fallback static\n   port-channel lacp fallback timeout 45"

	if got := parseMinimumLinks(block); got != "2" {
		t.Errorf("parseMinimumLinks() = %q", got)
	}
	if got := parseMinimumLinks("interface Port-Channel5"); got != "0" {
		t.Errorf("parseMinimumLinks() default = %q", got)
	}
	if got := parseLacpFallback(block); got != "static" {
		t.Errorf("parseLacpFallback() = %q", got)
	}
	if got := parseLacpFallback("interface Port-Channel5\n   port-channel lacp fallback timeout 45"); got != "disabled" {
		t.Errorf("parseLacpFallback() with only timeout = %q, want disabled", got)
	}
	if got, ok := parseLacpTimeout(block); !ok || got != "45" {
		t.Errorf("parseLacpTimeout() = %q, %v", got, ok)
	}
	if _, ok := parseLacpTimeout("interface Port-Channel5"); ok {
		t.Error("parseLacpTimeout() on missing line should fail")
	}
}

func TestParseLacpMode(t *testing.T) {
	block := "interface Ethernet1\n   channel-group 7 mode passive"
	if got := parseLacpMode(block, "7"); got != "passive" {
		t.Errorf("parseLacpMode(7) = %q", got)
	}
	if got := parseLacpMode(block, "5"); got != "on" {
		t.Errorf("parseLacpMode(5) = %q, want on", got)
	}
}

func TestParseMembers(t *testing.T) {
	out := `Port Channel Port-Channel5:
  Active Ports:
       Port            Protocol    Mode
    --------------- ----------- ------
       Ethernet1       LACP        active
       Ethernet3/1     LACP        active
       Ethernet1       LACP        active
`
	want := []string{"Ethernet1", "Ethernet3/1"}
	if got := parseMembers(out); !reflect.DeepEqual(got, want) {
		t.Errorf("parseMembers() = %v, want %v", got, want)
	}
	if got := parseMembers("Port Channel Port-Channel5:\n  No Active Ports\n"); got == nil || len(got) != 0 {
		t.Errorf("parseMembers() with no ports = %#v, want empty non-nil", got)
	}
}

func TestParseVxlan(t *testing.T) {
	block := "interface Vxlan1\n   vxlan source-interface Loopback1\n   vxlan udp-port 8472\n   vxlan vlan 10 vni 10010\n   vxlan vlan 20 vni 10020\n   vxlan flood vtep 10.0.0.1 10.0.0.2"

	if got := parseSourceInterface(block); got != "Loopback1" {
		t.Errorf("parseSourceInterface() = %q", got)
	}
	if got := parseMulticastGroup(block); got != "" {
		t.Errorf("parseMulticastGroup() = %q", got)
	}
	if got := parseUDPPort(block); got != "8472" {
		t.Errorf("parseUDPPort() = %q", got)
	}
	if got := parseUDPPort("interface Vxlan1"); got != "4789" {
		t.Errorf("parseUDPPort() default = %q", got)
	}
	if got := parseFloodList(block); !reflect.DeepEqual(got, []string{"10.0.0.1", "10.0.0.2"}) {
		t.Errorf("parseFloodList() = %v", got)
	}
	want := map[string]string{"10": "10010", "20": "10020"}
	if got := parseVlans(block); !reflect.DeepEqual(got, want) {
		t.Errorf("parseVlans() = %v", got)
	}
}

func TestGroupID(t *testing.T) {
	tests := map[string]string{
		"Port-Channel5":   "5",
		"Port-Channel100": "100",
		"po7":             "7",
		"Port-Channel":    "",
	}
	for in, want := range tests {
		if got := groupID(in); got != want {
			t.Errorf("groupID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInterfaceNames(t *testing.T) {
	got := interfaceNames(testConfig)
	want := []string{"Ethernet1", "Ethernet2", "Ethernet3", "Ethernet4", "Loopback0", "Port-Channel5", "Port-Channel6", "Vxlan1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("interfaceNames() = %v, want %v", got, want)
	}
}
