package main

import (
	"context"
	"reflect"
	"testing"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ifcfg/pkg/device"
	"github.com/newtron-network/ifcfg/pkg/intf"
)

const testConfig = `interface Ethernet1
   shutdown
   flowcontrol send on
!
interface Ethernet2
!
interface Port-Channel10
   port-channel lacp fallback timeout 90
!
interface Vxlan1
   vxlan source-interface Loopback0
!
end
`

func TestProperties(t *testing.T) {
	for name, p := range properties {
		if (p.str == nil) == (p.boolean == nil) {
			t.Errorf("property %s must have exactly one setter", name)
		}
		if p.op == "" {
			t.Errorf("property %s has no operation", name)
		}
	}

	if _, err := lookupProperty("Description"); err != nil {
		t.Errorf("lookupProperty(Description) error = %v", err)
	}
	if _, err := lookupProperty("mtu"); err == nil {
		t.Error("lookupProperty(mtu) should fail")
	}
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"on", true, false},
		{"Enable", true, false},
		{"false", false, false},
		{"off", false, false},
		{"0", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSwitch(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSwitch(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseSwitch(%q) = %v", tt.in, got)
			}
		})
	}
}

func TestApplyProperty(t *testing.T) {
	ctx := context.Background()
	node := device.NewMemoryNode("leaf1", testConfig)
	f := intf.New(node)

	str := func(s string) *string { return &s }
	steps := []struct {
		property   string
		name       string
		value      *string
		useDefault bool
	}{
		{"description", "Ethernet1", str("uplink to spine1"), false},
		{"shutdown", "Ethernet1", str("false"), false},
		{"flowcontrol-send", "Ethernet1", nil, true},
		{"min-links", "Port-Channel10", str("2"), false},
		{"source-interface", "", nil, false},
		{"udp-port", "", str("8472"), false},
	}
	for _, s := range steps {
		p, err := lookupProperty(s.property)
		if err != nil {
			t.Fatal(err)
		}
		if err := applyProperty(ctx, f, p, s.name, s.value, s.useDefault); err != nil {
			t.Fatalf("%s: %v", s.property, err)
		}
	}

	r, err := f.Get(ctx, "Ethernet1")
	if err != nil {
		t.Fatal(err)
	}
	eth := r.(*intf.Ethernet)
	if eth.Description != "uplink to spine1" || eth.Shutdown || eth.FlowcontrolSend != "off" {
		t.Errorf("Ethernet1 = %+v", eth)
	}

	r, err = f.Get(ctx, "Vxlan1")
	if err != nil {
		t.Fatal(err)
	}
	vx := r.(*intf.Vxlan)
	if vx.SourceInterface != "" || vx.UDPPort != "8472" {
		t.Errorf("Vxlan1 = %+v", vx)
	}

	if err := applyProperty(ctx, f, properties["lacp-mode"], "Port-Channel10", nil, true); err == nil {
		t.Error("lacp-mode --default should fail")
	}
	if err := applyProperty(ctx, f, properties["sflow"], "Ethernet1", str("sometimes"), false); err == nil {
		t.Error("invalid boolean should fail")
	}
}

func TestExpandMembers(t *testing.T) {
	tests := []struct {
		spec    string
		want    []string
		wantErr bool
	}{
		{"", []string{}, false},
		{"Ethernet3-4", []string{"Ethernet3", "Ethernet4"}, false},
		{"et1-2,5", []string{"Ethernet1", "Ethernet2", "Ethernet5"}, false},
		{"po1", nil, true},
		{"1-2", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := expandMembers(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandMembers(%q) error = %v", tt.spec, err)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expandMembers(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestCheckRange(t *testing.T) {
	if err := checkRange("vlan", "10", 1, 4094); err != nil {
		t.Errorf("checkRange(10) error = %v", err)
	}
	for _, bad := range []string{"0", "4095", "ten", ""} {
		if err := checkRange("vlan", bad, 1, 4094); err == nil {
			t.Errorf("checkRange(%q) should fail", bad)
		}
	}
}

func TestBatchRecorder(t *testing.T) {
	ctx := context.Background()
	rec := &batchRecorder{Node: device.NewMemoryNode("leaf1", testConfig)}
	f := intf.New(rec)

	if err := f.SetMembers(ctx, "Port-Channel10", []string{"Ethernet1", "Ethernet2"}); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"interface Ethernet1", "channel-group 10 mode on",
		"interface Ethernet2", "channel-group 10 mode on",
	}
	if got := rec.commands(); !reflect.DeepEqual(got, want) {
		t.Errorf("commands() = %q, want %q", got, want)
	}
	if len(rec.batches) != 2 {
		t.Errorf("recorded %d batches, want 2", len(rec.batches))
	}
}

func TestIsMetaCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  *cobra.Command
		want bool
	}{
		{"settings show", settingsShowCmd, true},
		{"audit list", auditListCmd, true},
		{"version", versionCmd, true},
		{"devices", devicesCmd, true},
		{"set", setCmd, false},
		{"list", listCmd, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isMetaCommand(tt.cmd); got != tt.want {
				t.Errorf("isMetaCommand(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
