package intf

import (
	"regexp"
	"strings"
)

// Attribute parsers. Each takes an interface stanza as returned by
// device.Block and falls back to the attribute's default when the line is
// absent.

var (
	descriptionRegexp     = regexp.MustCompile(`(?m)^\s{3}description\s(.+)$`)
	flowcontrolRegexp     = regexp.MustCompile(`flowcontrol (send|receive) (\w+)`)
	minLinksRegexp        = regexp.MustCompile(`port-channel min-links (\d+)`)
	lacpFallbackRegexp    = regexp.MustCompile(`lacp fallback (static|individual)`)
	lacpTimeoutRegexp     = regexp.MustCompile(`lacp fallback timeout (\d+)`)
	channelGroupRegexp    = regexp.MustCompile(`channel-group (\d+) mode (\w+)`)
	memberRegexp          = regexp.MustCompile(`Ethernet[\d/]+`)
	sourceInterfaceRegexp = regexp.MustCompile(`vxlan source-interface (\S+)`)
	multicastGroupRegexp  = regexp.MustCompile(`vxlan multicast-group (\S+)`)
	udpPortRegexp         = regexp.MustCompile(`vxlan udp-port (\d+)`)
	floodListRegexp       = regexp.MustCompile(`(?m)^\s*vxlan flood vtep (.+)$`)
	vlanVniRegexp         = regexp.MustCompile(`vxlan vlan (\d+) vni (\d+)`)
	groupIDRegexp         = regexp.MustCompile(`\d+`)
	interfaceLineRegexp   = regexp.MustCompile(`(?m)^interface\s+(\S+)`)
)

const (
	defaultFlowcontrol  = "off"
	defaultMinimumLinks = "0"
	defaultLacpFallback = "disabled"
	defaultLacpMode     = "on"
	defaultUDPPort      = "4789"
)

func parseDescription(block string) string {
	if m := descriptionRegexp.FindStringSubmatch(block); m != nil {
		return m[1]
	}
	return ""
}

// parseShutdown is true unless the stanza says "no shutdown".
func parseShutdown(block string) bool {
	return !hasLine(block, "no shutdown")
}

// parseSflow is false only when the stanza says "no sflow enable".
func parseSflow(block string) bool {
	return !hasLine(block, "no sflow enable")
}

func parseFlowcontrol(block, direction string) string {
	for _, m := range flowcontrolRegexp.FindAllStringSubmatch(block, -1) {
		if m[1] == direction {
			return m[2]
		}
	}
	return defaultFlowcontrol
}

func parseMinimumLinks(block string) string {
	return firstMatch(minLinksRegexp, block, defaultMinimumLinks)
}

func parseLacpFallback(block string) string {
	return firstMatch(lacpFallbackRegexp, block, defaultLacpFallback)
}

// parseLacpTimeout has no default; ok is false when the line is absent.
func parseLacpTimeout(block string) (timeout string, ok bool) {
	if m := lacpTimeoutRegexp.FindStringSubmatch(block); m != nil {
		return m[1], true
	}
	return "", false
}

// parseLacpMode reads the mode of channel-group id from a member's stanza.
func parseLacpMode(block, id string) string {
	for _, m := range channelGroupRegexp.FindAllStringSubmatch(block, -1) {
		if m[1] == id {
			return m[2]
		}
	}
	return defaultLacpMode
}

// parseMembers extracts Ethernet member names from port-channel
// operational output, in order of first appearance.
func parseMembers(output string) []string {
	members := []string{}
	seen := map[string]bool{}
	for _, m := range memberRegexp.FindAllString(output, -1) {
		if !seen[m] {
			seen[m] = true
			members = append(members, m)
		}
	}
	return members
}

func parseSourceInterface(block string) string {
	return firstMatch(sourceInterfaceRegexp, block, "")
}

func parseMulticastGroup(block string) string {
	return firstMatch(multicastGroupRegexp, block, "")
}

func parseUDPPort(block string) string {
	return firstMatch(udpPortRegexp, block, defaultUDPPort)
}

func parseFloodList(block string) []string {
	if m := floodListRegexp.FindStringSubmatch(block); m != nil {
		return strings.Fields(m[1])
	}
	return []string{}
}

func parseVlans(block string) map[string]string {
	vlans := map[string]string{}
	for _, m := range vlanVniRegexp.FindAllStringSubmatch(block, -1) {
		vlans[m[1]] = m[2]
	}
	return vlans
}

// groupID returns the first run of digits in a port-channel name.
func groupID(name string) string {
	return groupIDRegexp.FindString(name)
}

// interfaceNames lists every top-level interface stanza in a running
// configuration.
func interfaceNames(config string) []string {
	var names []string
	for _, m := range interfaceLineRegexp.FindAllStringSubmatch(config, -1) {
		names = append(names, m[1])
	}
	return names
}

func firstMatch(re *regexp.Regexp, block, def string) string {
	if m := re.FindStringSubmatch(block); m != nil {
		return m[1]
	}
	return def
}

func hasLine(block, line string) bool {
	for _, l := range strings.Split(block, "\n") {
		if strings.TrimSpace(l) == line {
			return true
		}
	}
	return false
}
