package util

import "testing"

func TestParseInterfaceName(t *testing.T) {
	tests := []struct {
		input             string
		wantType, wantNum string
		wantSub           string
	}{
		{"Ethernet1", "Ethernet", "1", ""},
		{"Ethernet3/1", "Ethernet", "3/1", ""},
		{"Ethernet3/1.100", "Ethernet", "3/1", "100"},
		{"Port-Channel5", "Port-Channel", "5", ""},
		{"Vxlan1", "Vxlan", "1", ""},
		{"Loopback0", "Loopback", "0", ""},
		{"weird", "weird", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gotType, gotNum, gotSub := ParseInterfaceName(tt.input)
			if gotType != tt.wantType || gotNum != tt.wantNum || gotSub != tt.wantSub {
				t.Errorf("ParseInterfaceName(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.input, gotType, gotNum, gotSub, tt.wantType, tt.wantNum, tt.wantSub)
			}
		})
	}
}

func TestNormalizeInterfaceName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"et1", "Ethernet1"},
		{"Eth3/1", "Ethernet3/1"},
		{"ethernet2", "Ethernet2"},
		{"Ethernet2", "Ethernet2"},
		{"po10", "Port-Channel10"},
		{"port-channel10", "Port-Channel10"},
		{"PortChannel10", "Port-Channel10"},
		{"Port-Channel10", "Port-Channel10"},
		{"vx1", "Vxlan1"},
		{"vlan100", "Vlan100"},
		{"vl100", "Vlan100"},
		{"lo0", "Loopback0"},
		{"ma1", "Management1"},
		{"  Ethernet4  ", "Ethernet4"},
		{"Tunnel1", "Tunnel1"},
		{"po", "po"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeInterfaceName(tt.input); got != tt.want {
				t.Errorf("NormalizeInterfaceName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
