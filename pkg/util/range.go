package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// maxRangeValues bounds how many values one range spec may expand to.
const maxRangeValues = 4096

// ExpandRange expands "1-3,5,7-9" to [1 2 3 5 7 8 9]. The result is sorted
// and free of duplicates; an empty spec yields nil.
func ExpandRange(spec string) ([]int, error) {
	var result []int
	for _, part := range SplitCommaSeparated(spec) {
		lo, hi, err := parseBounds(part)
		if err != nil {
			return nil, err
		}
		if len(result)+hi-lo+1 > maxRangeValues {
			return nil, fmt.Errorf("range %s expands to more than %d values", spec, maxRangeValues)
		}
		for v := lo; v <= hi; v++ {
			result = append(result, v)
		}
	}
	sort.Ints(result)
	return dedupInts(result), nil
}

// parseBounds reads "n" or "lo-hi".
func parseBounds(part string) (lo, hi int, err error) {
	first, last, isRange := strings.Cut(part, "-")
	lo, err = strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value %q in range", part)
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err = strconv.Atoi(strings.TrimSpace(last))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end of range %q", part)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("range %q runs backwards", part)
	}
	return lo, hi, nil
}

// CompactRange is the inverse of ExpandRange: [5 1 2 3 9] -> "1-3,5,9".
func CompactRange(values []int) string {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	sorted = dedupInts(sorted)

	var b strings.Builder
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(sorted[i]))
		if j > i {
			fmt.Fprintf(&b, "-%d", sorted[j])
		}
		i = j + 1
	}
	return b.String()
}

func dedupInts(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// splitRangeSpec separates "Ethernet1/1-4" into ("Ethernet1/", "1-4").
// The numeric spec is the longest trailing run of digits, commas and dashes
// that starts with a digit.
func splitRangeSpec(spec string) (prefix, nums string) {
	i := len(spec)
	for i > 0 {
		c := spec[i-1]
		if (c >= '0' && c <= '9') || c == ',' || c == '-' {
			i--
			continue
		}
		break
	}
	for i < len(spec) && (spec[i] < '0' || spec[i] > '9') {
		i++
	}
	return spec[:i], spec[i:]
}

// ExpandInterfaceRange expands interface range notation
// "Ethernet1-4" -> ["Ethernet1", "Ethernet2", "Ethernet3", "Ethernet4"]
// "Ethernet1,4,8" -> ["Ethernet1", "Ethernet4", "Ethernet8"]
// "Ethernet1/1-2" -> ["Ethernet1/1", "Ethernet1/2"]
func ExpandInterfaceRange(spec string) ([]string, error) {
	prefix, numPart := splitRangeSpec(strings.TrimSpace(spec))
	if prefix == "" || strings.IndexFunc(prefix, isLetter) < 0 {
		return nil, fmt.Errorf("invalid interface range: %s (no prefix found)", spec)
	}
	if numPart == "" {
		return nil, fmt.Errorf("invalid interface range: %s (no number found)", spec)
	}

	nums, err := ExpandRange(numPart)
	if err != nil {
		return nil, fmt.Errorf("invalid interface range %s: %v", spec, err)
	}

	result := make([]string, len(nums))
	for i, n := range nums {
		result[i] = fmt.Sprintf("%s%d", prefix, n)
	}

	return result, nil
}

// ExpandInterfaceList expands a comma-separated list in which each element
// may carry its own prefix; bare numbers reuse the last prefix seen.
// "Ethernet1-2,5,Ethernet7/1" -> ["Ethernet1", "Ethernet2", "Ethernet5", "Ethernet7/1"]
// Order of first appearance is preserved and duplicates are dropped.
func ExpandInterfaceList(spec string) ([]string, error) {
	var (
		result []string
		prefix string
	)
	seen := make(map[string]bool)

	for _, part := range SplitCommaSeparated(spec) {
		if strings.IndexFunc(part, isLetter) >= 0 {
			p, _ := splitRangeSpec(part)
			prefix = p
		} else {
			if prefix == "" {
				return nil, fmt.Errorf("invalid interface list %s: %q has no prefix", spec, part)
			}
			part = prefix + part
		}

		names, err := ExpandInterfaceRange(part)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				result = append(result, n)
			}
		}
	}

	return result, nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// CompactInterfaceList is the inverse of ExpandInterfaceList.
// ["Ethernet5", "Ethernet1", "Ethernet2", "Loopback0"] -> "Ethernet1-2,5,Loopback0"
// Prefixes keep their order of first appearance.
func CompactInterfaceList(names []string) string {
	var prefixes []string
	nums := make(map[string][]int)
	for _, name := range names {
		prefix, num := splitRangeSpec(name)
		n, err := strconv.Atoi(num)
		if err != nil {
			prefix, n = name, -1
		}
		if _, ok := nums[prefix]; !ok {
			prefixes = append(prefixes, prefix)
		}
		if n >= 0 {
			nums[prefix] = append(nums[prefix], n)
		} else if nums[prefix] == nil {
			nums[prefix] = []int{}
		}
	}

	parts := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		parts = append(parts, prefix+CompactRange(nums[prefix]))
	}
	return strings.Join(parts, ",")
}
