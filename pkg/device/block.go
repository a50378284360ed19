package device

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Block returns the configuration stanza whose header line matches anchor.
// The anchor is a regular expression matched against whole lines; the
// stanza is the header followed by every indented line after it. The
// boolean reports whether a header matched.
func Block(config, anchor string) (string, bool, error) {
	re, err := regexp.Compile("^(?:" + anchor + ")$")
	if err != nil {
		return "", false, fmt.Errorf("invalid block anchor %q: %w", anchor, err)
	}

	lines := splitLines(config)
	for i, line := range lines {
		if !re.MatchString(line) {
			continue
		}
		end := i + 1
		for end < len(lines) && isIndented(lines[end]) {
			end++
		}
		return strings.Join(lines[i:end], "\n"), true, nil
	}
	return "", false, nil
}

// GetBlock fetches the running configuration from n and extracts the stanza
// anchored by anchor.
func GetBlock(ctx context.Context, n Node, anchor string) (string, bool, error) {
	config, err := n.RunningConfig(ctx)
	if err != nil {
		return "", false, err
	}
	return Block(config, anchor)
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
