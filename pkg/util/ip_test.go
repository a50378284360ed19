package util

import "testing"

func TestIsValidIPv4(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"10.0.0.1", true},
		{"239.1.1.1", true},
		{"10.0.0.256", false},
		{"10.0.0", false},
		{"2001:db8::1", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidIPv4(tt.input); got != tt.want {
				t.Errorf("IsValidIPv4(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsMulticastIPv4(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"224.0.0.1", true},
		{"239.1.1.1", true},
		{"223.255.255.255", false},
		{"240.0.0.1", false},
		{"ff02::1", false},
		{"group", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsMulticastIPv4(tt.input); got != tt.want {
				t.Errorf("IsMulticastIPv4(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
