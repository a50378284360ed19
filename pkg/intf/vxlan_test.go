package intf

import (
	"context"
	"reflect"
	"testing"
)

func TestVxlanGet(t *testing.T) {
	ctx := context.Background()
	h := NewVxlanHandler(newRecordingNode(testConfig))

	got, err := h.Get(ctx, "")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	want := &Vxlan{
		Interface:       Interface{Name: "Vxlan1", Type: KindVxlan, Shutdown: true},
		SourceInterface: "Loopback0",
		MulticastGroup:  "239.1.1.1",
		UDPPort:         "4789",
		FloodList:       []string{"10.0.0.2", "10.0.0.3"},
		Vlans:           map[string]string{"10": "10010"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	if got, err := h.Get(ctx, "Vxlan2"); got != nil || err != nil {
		t.Errorf("Get(missing) = %+v, %v", got, err)
	}
}

func TestVxlanMutators(t *testing.T) {
	ctx := context.Background()
	node := newRecordingNode(testConfig)
	h := NewVxlanHandler(node)

	steps := []struct {
		name string
		run  func() error
	}{
		{"source", func() error { return h.SetSourceInterface(ctx, "", Value("Loopback1")) }},
		{"multicast", func() error { return h.SetMulticastGroup(ctx, "Vxlan1", Options[string]{}) }},
		{"udp", func() error { return h.SetUDPPort(ctx, "", Value("8472")) }},
		{"add vtep", func() error { return h.AddVtep(ctx, "", "10.0.0.4") }},
		{"remove vtep", func() error { return h.RemoveVtep(ctx, "", "10.0.0.2") }},
		{"map", func() error { return h.UpdateVlan(ctx, "", "20", "10020") }},
		{"unmap", func() error { return h.RemoveVlan(ctx, "", "10") }},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
	}

	assertBatches(t, node,
		[]string{"interface Vxlan1", "vxlan source-interface Loopback1"},
		[]string{"interface Vxlan1", "no vxlan multicast-group"},
		[]string{"interface Vxlan1", "vxlan udp-port 8472"},
		[]string{"interface Vxlan1", "vxlan flood vtep add 10.0.0.4"},
		[]string{"interface Vxlan1", "vxlan flood vtep remove 10.0.0.2"},
		[]string{"interface Vxlan1", "vxlan vlan 20 vni 10020"},
		[]string{"interface Vxlan1", "no vxlan vlan 10 vni"},
	)

	got, err := h.Get(ctx, "Vxlan1")
	if err != nil {
		t.Fatal(err)
	}
	want := &Vxlan{
		Interface:       Interface{Name: "Vxlan1", Type: KindVxlan, Shutdown: true},
		SourceInterface: "Loopback1",
		MulticastGroup:  "",
		UDPPort:         "8472",
		FloodList:       []string{"10.0.0.3", "10.0.0.4"},
		Vlans:           map[string]string{"20": "10020"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}
