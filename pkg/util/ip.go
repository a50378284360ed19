package util

import (
	"net"
)

// IsValidIPv4 checks if a string is a valid IPv4 address
func IsValidIPv4(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	return ip != nil && ip.To4() != nil
}

// IsMulticastIPv4 checks if a string is an IPv4 group address (224.0.0.0/4).
func IsMulticastIPv4(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	return ip != nil && ip.To4() != nil && ip.IsMulticast()
}
