package classify

import "strings"

const (
	minRadioEquivalent = 2
	maxRadioEquivalent = 4
)

// exclusiveSets are label sets that only make sense as a single choice
var exclusiveSets = [][]string{
	{"yes", "no"},
	{"yes", "no", "not applicable"},
	{"yes", "no", "decline"},
	{"yes", "no", "prefer not to answer"},
	{"yes", "no", "i prefer not to specify"},
	{"decline", "decline to answer"},
	{"decline to self-identify", "i prefer not to answer"},
	{"currently enrolled", "completed", "not applicable"},
	{"currently attending", "graduated", "did not attend"},
}

var exclusiveMarkers = []string{"yes", "no", "not applicable", "decline", "i prefer not"}

// IsRadioEquivalent reports whether a checkbox group with these labels is a
// mutually exclusive single choice. The group must have 2 to 4 options and
// either contain a known exclusive label set or have at least two labels that
// start with an exclusivity marker.
func IsRadioEquivalent(labels []string) bool {
	if len(labels) < minRadioEquivalent || len(labels) > maxRadioEquivalent {
		return false
	}

	set := make(map[string]bool, len(labels))
	markers := 0
	for _, label := range labels {
		l := strings.Join(strings.Fields(strings.ToLower(label)), " ")
		set[l] = true
		for _, marker := range exclusiveMarkers {
			if strings.HasPrefix(l, marker) {
				markers++
				break
			}
		}
	}
	if markers >= 2 {
		return true
	}

	for _, pattern := range exclusiveSets {
		if containsAll(set, pattern) {
			return true
		}
	}
	return false
}

func containsAll(set map[string]bool, pattern []string) bool {
	for _, p := range pattern {
		if !set[p] {
			return false
		}
	}
	return true
}
