package util

import (
	"regexp"
	"sort"
	"strings"
)

var parseInterfaceRegexp = regexp.MustCompile(`^([A-Za-z][A-Za-z-]*?)(\d+(?:/\d+)*)$`)

// ParseInterfaceName extracts interface type and number
// Returns (type, number, subinterface) e.g., ("Ethernet", "3/1", "100") for Ethernet3/1.100
func ParseInterfaceName(name string) (ifType string, num string, subintf string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		subintf = parts[1]
		name = parts[0]
	}

	matches := parseInterfaceRegexp.FindStringSubmatch(name)
	if len(matches) == 3 {
		return matches[1], matches[2], subintf
	}

	return name, "", subintf
}

var (
	// shortToLong maps abbreviations to full EOS interface type names
	shortToLong = map[string]string{
		"et":           "Ethernet",
		"eth":          "Ethernet",
		"ethernet":     "Ethernet",
		"po":           "Port-Channel",
		"port-channel": "Port-Channel",
		"portchannel":  "Port-Channel",
		"vx":           "Vxlan",
		"vxlan":        "Vxlan",
		"lo":           "Loopback",
		"loopback":     "Loopback",
		"vl":           "Vlan",
		"vlan":         "Vlan",
		"ma":           "Management",
		"mgmt":         "Management",
		"management":   "Management",
	}

	// shortToLongSorted contains abbreviation keys sorted longest-first
	// so that "vlan" is matched before "vl" in NormalizeInterfaceName.
	shortToLongSorted []string
)

func init() {
	shortToLongSorted = make([]string, 0, len(shortToLong))
	for k := range shortToLong {
		shortToLongSorted = append(shortToLongSorted, k)
	}
	sort.Slice(shortToLongSorted, func(i, j int) bool {
		if len(shortToLongSorted[i]) != len(shortToLongSorted[j]) {
			return len(shortToLongSorted[i]) > len(shortToLongSorted[j])
		}
		return shortToLongSorted[i] < shortToLongSorted[j]
	})
}

// NormalizeInterfaceName expands abbreviated names to EOS format
// et1 -> Ethernet1, po10 -> Port-Channel10, vx1 -> Vxlan1, ma1 -> Management1.
// Names that are already canonical or unknown are returned trimmed.
func NormalizeInterfaceName(name string) string {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)

	for _, abbr := range shortToLongSorted {
		if strings.HasPrefix(lower, abbr) && len(name) > len(abbr) {
			suffix := name[len(abbr):]
			if suffix[0] >= '0' && suffix[0] <= '9' {
				return shortToLong[abbr] + suffix
			}
		}
	}

	return name
}
