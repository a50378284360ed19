package device

import (
	"strings"
)

// childIndent is the indentation EOS uses for lines inside a stanza.
const childIndent = "   "

// stanza is one top-level configuration entry and its indented children.
// Child lines are stored with one level of indentation removed.
type stanza struct {
	header string
	lines  []string
}

// runningConfig is a parsed running configuration in device order.
type runningConfig struct {
	stanzas []*stanza
}

// parseConfig reads running-configuration text. Comment lines ("!") and the
// trailing "end" are dropped; they are regenerated by String.
func parseConfig(text string) *runningConfig {
	cfg := &runningConfig{}
	var cur *stanza
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "!") {
			continue
		}
		if isIndented(line) {
			if cur == nil {
				continue
			}
			cur.lines = append(cur.lines, trimIndent(line))
			continue
		}
		if trimmed == "end" {
			cur = nil
			continue
		}
		cur = &stanza{header: trimmed}
		cfg.stanzas = append(cfg.stanzas, cur)
	}
	return cfg
}

// trimIndent removes one indentation level, keeping any deeper nesting.
func trimIndent(line string) string {
	if strings.HasPrefix(line, "\t") {
		return line[1:]
	}
	if strings.HasPrefix(line, childIndent) {
		return line[len(childIndent):]
	}
	return strings.TrimLeft(line, " ")
}

// String renders the configuration the way "show running-config" does.
func (c *runningConfig) String() string {
	var b strings.Builder
	for _, s := range c.stanzas {
		b.WriteString(s.header)
		b.WriteByte('\n')
		for _, l := range s.lines {
			b.WriteString(childIndent)
			b.WriteString(l)
			b.WriteByte('\n')
		}
		b.WriteString("!\n")
	}
	b.WriteString("end\n")
	return b.String()
}

func (c *runningConfig) find(header string) *stanza {
	for _, s := range c.stanzas {
		if s.header == header {
			return s
		}
	}
	return nil
}

func (c *runningConfig) remove(header string) {
	for i, s := range c.stanzas {
		if s.header == header {
			c.stanzas = append(c.stanzas[:i], c.stanzas[i+1:]...)
			return
		}
	}
}

func interfaceName(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || fields[0] != "interface" {
		return "", false
	}
	return fields[1], true
}

// NormalizeConfig parses and re-renders running-configuration text so that
// two configurations can be compared line by line.
func NormalizeConfig(text string) string {
	return parseConfig(text).String()
}
