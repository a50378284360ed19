package device

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/newtron-network/ifcfg/pkg/util"
)

// CLI messages printed for rejected commands.
const (
	msgInvalidInput  = "% Invalid input"
	msgIncomplete    = "% Incomplete command"
	msgNoSuchIntf    = "% Interface does not exist"
	msgPhysicalIntf  = "% Removal of physical interfaces is not permitted"
	msgNotApplicable = "% Invalid input (not supported on this interface)"
)

// errUnsupportedShow marks enable-mode commands the emulator cannot answer.
var errUnsupportedShow = errors.New("unsupported show command")

// CLIError is a command rejected by the emulated CLI.
type CLIError struct {
	Command string
	Message string
}

func (e *CLIError) Error() string {
	return fmt.Sprintf("%s\n%s", e.Command, e.Message)
}

func reject(command, message string) error {
	return &CLIError{Command: strings.TrimSpace(command), Message: message}
}

// knownKeys are the attribute prefixes that identify a configuration line
// inside an interface stanza, longest first. A new line replaces the
// existing line with the same key.
var knownKeys = [][]string{
	{"port-channel", "lacp", "fallback", "timeout"},
	{"port-channel", "lacp", "fallback"},
	{"switchport", "access", "vlan"},
	{"switchport", "trunk", "allowed"},
	{"vxlan", "flood", "vtep"},
	{"port-channel", "min-links"},
	{"vxlan", "source-interface"},
	{"vxlan", "multicast-group"},
	{"vxlan", "udp-port"},
	{"flowcontrol", "send"},
	{"flowcontrol", "receive"},
	{"sflow", "enable"},
	{"switchport", "mode"},
	{"ip", "address"},
	{"channel-group"},
	{"description"},
	{"shutdown"},
	{"mtu"},
}

// booleanKeys keep their negated form in the running configuration.
var booleanKeys = map[string]bool{
	"shutdown":     true,
	"sflow enable": true,
}

var (
	digitsRegexp    = regexp.MustCompile(`^\d+$`)
	intfNameRegexp  = regexp.MustCompile(`^[A-Z][A-Za-z-]*\d+(?:/\d+)*(?:\.\d+)?$`)
	channelModes    = map[string]bool{"active": true, "passive": true, "on": true}
	flowcontrolVals = map[string]bool{"on": true, "off": true, "desired": true}
	fallbackModes   = map[string]bool{"static": true, "individual": true}
)

// Apply runs commands in configuration mode against config and returns the
// resulting running configuration. The first rejected command aborts the
// batch and the returned error is a *CLIError; config is never partially
// applied.
func Apply(config string, commands []string) (string, error) {
	s := &session{cfg: parseConfig(config)}
	for _, cmd := range commands {
		if err := s.exec(cmd); err != nil {
			return config, err
		}
	}
	return s.cfg.String(), nil
}

type session struct {
	cfg *runningConfig
	cur *stanza
}

func (s *session) exec(command string) error {
	line := strings.TrimSpace(command)
	if line == "" || strings.HasPrefix(line, "!") {
		return nil
	}
	words := strings.Fields(line)

	switch {
	case line == "end" || line == "exit":
		s.cur = nil
		return nil
	case words[0] == "interface":
		return s.enterInterface(command, words[1:])
	case len(words) > 1 && words[1] == "interface" && (words[0] == "no" || words[0] == "default"):
		return s.resetInterface(command, words[0], words[2:])
	case s.cur != nil:
		return s.applyChild(command, words)
	default:
		return s.applyGlobal(command, words)
	}
}

func (s *session) enterInterface(command string, args []string) error {
	if len(args) == 0 {
		return reject(command, msgIncomplete)
	}
	if len(args) > 1 {
		return reject(command, msgInvalidInput)
	}
	name := util.NormalizeInterfaceName(args[0])
	if !intfNameRegexp.MatchString(name) {
		return reject(command, msgInvalidInput)
	}

	header := "interface " + name
	st := s.cfg.find(header)
	if st == nil {
		if isPhysical(name) {
			return reject(command, msgNoSuchIntf)
		}
		st = &stanza{header: header}
		s.cfg.stanzas = append(s.cfg.stanzas, st)
	}
	s.cur = st
	return nil
}

func (s *session) resetInterface(command, verb string, args []string) error {
	if len(args) == 0 {
		return reject(command, msgIncomplete)
	}
	if len(args) > 1 {
		return reject(command, msgInvalidInput)
	}
	name := util.NormalizeInterfaceName(args[0])
	header := "interface " + name
	s.cur = nil

	if verb == "no" {
		if isPhysical(name) {
			return reject(command, msgPhysicalIntf)
		}
		s.cfg.remove(header)
		if _, num, _ := util.ParseInterfaceName(name); isPortChannel(name) && num != "" {
			s.dropChannelGroup(num)
		}
		return nil
	}

	if st := s.cfg.find(header); st != nil {
		st.lines = nil
	}
	return nil
}

// dropChannelGroup removes membership of port-channel id from every
// interface, as the device does when the port-channel is deleted.
func (s *session) dropChannelGroup(id string) {
	for _, st := range s.cfg.stanzas {
		if _, ok := interfaceName(st.header); !ok {
			continue
		}
		kept := st.lines[:0]
		for _, l := range st.lines {
			f := strings.Fields(l)
			if len(f) >= 2 && f[0] == "channel-group" && f[1] == id {
				continue
			}
			kept = append(kept, l)
		}
		st.lines = kept
	}
}

func (s *session) applyChild(command string, words []string) error {
	verb, body := splitVerb(words)
	if len(body) == 0 {
		return reject(command, msgIncomplete)
	}

	if verb == "" && hasWords(body, "vxlan", "flood", "vtep") && len(body) >= 4 &&
		(body[3] == "add" || body[3] == "remove") {
		if !s.currentIs(isVxlan) {
			return reject(command, msgNotApplicable)
		}
		return s.editFloodList(command, body[3], body[4:])
	}

	key := keyOf(body)
	if msg := s.validate(key, verb, body); msg != "" {
		return reject(command, msg)
	}

	switch {
	case booleanKeys[key] && verb == "no":
		s.cur.set(key, "no "+key)
	case verb != "" && key == "channel-group" && len(body) >= 2:
		// only the named group is unbound
		if l, ok := s.cur.get(key); ok && strings.Fields(l)[1] == body[1] {
			s.cur.unset(key)
		}
	case verb != "":
		s.cur.unset(key)
	default:
		line := strings.Join(body, " ")
		if key == "description" {
			// descriptions keep their inner spacing
			line = strings.TrimSpace(command)
		}
		s.cur.set(key, line)
		if key == "channel-group" {
			s.ensurePortChannel(body[1])
		}
	}
	return nil
}

// validate returns the CLI message for an unacceptable line, or "".
func (s *session) validate(key, verb string, body []string) string {
	switch {
	case strings.HasPrefix(key, "vxlan "):
		if !s.currentIs(isVxlan) {
			return msgNotApplicable
		}
	case strings.HasPrefix(key, "port-channel "):
		if !s.currentIs(isPortChannel) {
			return msgNotApplicable
		}
	case key == "channel-group" || strings.HasPrefix(key, "flowcontrol ") || key == "sflow enable":
		if !s.currentIs(isEthernet) {
			return msgNotApplicable
		}
	}

	if verb != "" {
		return ""
	}

	switch key {
	case "shutdown":
		return exactly(body, 1)
	case "sflow enable":
		return exactly(body, 2)
	case "description":
		if len(body) < 2 {
			return msgIncomplete
		}
	case "mtu":
		if len(body) != 2 || !digitsRegexp.MatchString(body[1]) {
			return msgInvalidInput
		}
	case "channel-group":
		if len(body) < 4 {
			return msgIncomplete
		}
		if len(body) != 4 || !digitsRegexp.MatchString(body[1]) || body[2] != "mode" || !channelModes[body[3]] {
			return msgInvalidInput
		}
	case "flowcontrol send", "flowcontrol receive":
		if len(body) != 3 || !flowcontrolVals[body[2]] {
			return msgInvalidInput
		}
	case "port-channel min-links":
		if len(body) != 3 || !digitsRegexp.MatchString(body[2]) {
			return msgInvalidInput
		}
	case "port-channel lacp fallback":
		if len(body) != 4 || !fallbackModes[body[3]] {
			return msgInvalidInput
		}
	case "port-channel lacp fallback timeout":
		if len(body) != 5 || !digitsRegexp.MatchString(body[4]) {
			return msgInvalidInput
		}
	case "vxlan source-interface":
		if len(body) != 3 || !intfNameRegexp.MatchString(util.NormalizeInterfaceName(body[2])) {
			return msgInvalidInput
		}
	case "vxlan multicast-group":
		if len(body) != 3 || !util.IsMulticastIPv4(body[2]) {
			return msgInvalidInput
		}
	case "vxlan udp-port":
		if len(body) != 3 {
			return msgInvalidInput
		}
		if p, err := strconv.Atoi(body[2]); err != nil || p < 1 || p > 65535 {
			return msgInvalidInput
		}
	case "vxlan flood vtep":
		if len(body) < 4 {
			return msgIncomplete
		}
		for _, v := range body[3:] {
			if !util.IsValidIPv4(v) {
				return msgInvalidInput
			}
		}
	default:
		if strings.HasPrefix(key, "vxlan vlan ") {
			if len(body) != 5 || !digitsRegexp.MatchString(body[2]) || body[3] != "vni" || !digitsRegexp.MatchString(body[4]) {
				return msgInvalidInput
			}
		}
	}
	return ""
}

func (s *session) editFloodList(command, op string, vteps []string) error {
	if len(vteps) == 0 {
		return reject(command, msgIncomplete)
	}
	for _, v := range vteps {
		if !util.IsValidIPv4(v) {
			return reject(command, msgInvalidInput)
		}
	}

	const key = "vxlan flood vtep"
	var current []string
	if l, ok := s.cur.get(key); ok {
		current = strings.Fields(l)[3:]
	}

	var next []string
	switch op {
	case "add":
		next = current
		for _, v := range vteps {
			if !contains(next, v) {
				next = append(next, v)
			}
		}
	case "remove":
		for _, v := range current {
			if !contains(vteps, v) {
				next = append(next, v)
			}
		}
	}

	if len(next) == 0 {
		s.cur.unset(key)
		return nil
	}
	s.cur.set(key, key+" "+strings.Join(next, " "))
	return nil
}

func (s *session) ensurePortChannel(id string) {
	header := "interface Port-Channel" + id
	if s.cfg.find(header) == nil {
		s.cfg.stanzas = append(s.cfg.stanzas, &stanza{header: header})
	}
}

// applyGlobal handles single-line top-level commands such as hostname.
func (s *session) applyGlobal(command string, words []string) error {
	verb, body := splitVerb(words)
	if len(body) == 0 {
		return reject(command, msgIncomplete)
	}
	for i, st := range s.cfg.stanzas {
		if len(st.lines) > 0 || strings.Fields(st.header)[0] != body[0] {
			continue
		}
		if verb != "" {
			s.cfg.stanzas = append(s.cfg.stanzas[:i], s.cfg.stanzas[i+1:]...)
		} else {
			st.header = strings.Join(body, " ")
		}
		return nil
	}
	if verb == "" {
		s.cfg.stanzas = append(s.cfg.stanzas, &stanza{header: strings.Join(body, " ")})
	}
	return nil
}

func (s *session) currentIs(pred func(string) bool) bool {
	name, ok := interfaceName(s.cur.header)
	return ok && pred(name)
}

func (st *stanza) get(key string) (string, bool) {
	for _, l := range st.lines {
		if lineKey(l) == key {
			return l, true
		}
	}
	return "", false
}

func (st *stanza) set(key, line string) {
	for i, l := range st.lines {
		if lineKey(l) == key {
			st.lines[i] = line
			return
		}
	}
	st.lines = append(st.lines, line)
}

func (st *stanza) unset(key string) {
	kept := st.lines[:0]
	for _, l := range st.lines {
		if lineKey(l) != key {
			kept = append(kept, l)
		}
	}
	st.lines = kept
}

// lineKey returns the key of a stored line, ignoring a leading "no".
func lineKey(line string) string {
	words := strings.Fields(line)
	if len(words) > 1 && words[0] == "no" {
		words = words[1:]
	}
	if len(words) == 0 {
		return ""
	}
	return keyOf(words)
}

func keyOf(words []string) string {
	if len(words) >= 3 && words[0] == "vxlan" && words[1] == "vlan" {
		return strings.Join(words[:3], " ")
	}
	for _, k := range knownKeys {
		if hasWords(words, k...) {
			return strings.Join(k, " ")
		}
	}
	return words[0]
}

func splitVerb(words []string) (string, []string) {
	if words[0] == "no" || words[0] == "default" {
		return words[0], words[1:]
	}
	return "", words
}

func hasWords(words []string, prefix ...string) bool {
	if len(words) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if words[i] != p {
			return false
		}
	}
	return true
}

func exactly(body []string, n int) string {
	if len(body) != n {
		return msgInvalidInput
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func isPhysical(name string) bool {
	return isEthernet(name) || strings.HasPrefix(name, "Management")
}

func isEthernet(name string) bool { return strings.HasPrefix(name, "Ethernet") }

func isPortChannel(name string) bool { return strings.HasPrefix(name, "Port-Channel") }

func isVxlan(name string) bool { return strings.HasPrefix(name, "Vxlan") }

// Show answers an enable-mode command from config. Only the commands the
// interface layer issues are understood; anything else returns an error
// wrapping errUnsupportedShow.
func Show(config, command string, enc Encoding) (string, error) {
	words := strings.Fields(command)
	switch {
	case len(words) == 2 && hasWords(words, "show", "running-config"):
		if enc == EncodingJSON {
			return "", reject(command, "% This is an unconverted command")
		}
		return NormalizeConfig(config), nil
	case len(words) == 4 && hasWords(words, "show", "port-channel") && words[3] == "all-ports":
		return showPortChannel(parseConfig(config), words[2], enc)
	}
	return "", fmt.Errorf("%w: %s", errUnsupportedShow, command)
}

type portChannelMember struct {
	Protocol string `json:"protocol"`
	LacpMode string `json:"lacpMode"`
}

func showPortChannel(cfg *runningConfig, id string, enc Encoding) (string, error) {
	id = strings.TrimPrefix(util.NormalizeInterfaceName(id), "Port-Channel")
	if !digitsRegexp.MatchString(id) {
		return "", reject("show port-channel "+id+" all-ports", msgInvalidInput)
	}
	name := "Port-Channel" + id
	if cfg.find("interface "+name) == nil {
		return "", nil
	}

	var members []string
	modes := map[string]string{}
	for _, st := range cfg.stanzas {
		intf, ok := interfaceName(st.header)
		if !ok {
			continue
		}
		for _, l := range st.lines {
			f := strings.Fields(l)
			if len(f) == 4 && f[0] == "channel-group" && f[1] == id {
				members = append(members, intf)
				modes[intf] = f[3]
			}
		}
	}

	if enc == EncodingJSON {
		active := make(map[string]portChannelMember, len(members))
		for _, m := range members {
			active[m] = portChannelMember{Protocol: protocolOf(modes[m]), LacpMode: modes[m]}
		}
		out := map[string]interface{}{
			"portChannels": map[string]interface{}{
				name: map[string]interface{}{"activePorts": active},
			},
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Port Channel %s:\n", name)
	if len(members) == 0 {
		b.WriteString("  No Active Ports\n")
		return b.String(), nil
	}
	b.WriteString("  Active Ports:\n")
	fmt.Fprintf(&b, "       %-15s %-11s %s\n", "Port", "Protocol", "Mode")
	b.WriteString("    --------------- ----------- ------\n")
	for _, m := range members {
		fmt.Fprintf(&b, "       %-15s %-11s %s\n", m, protocolOf(modes[m]), modes[m])
	}
	return b.String(), nil
}

func protocolOf(mode string) string {
	if mode == "on" {
		return "Static"
	}
	return "LACP"
}
