package model

import (
	"strconv"
	"strings"
)

var romanNumerals = []string{"i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x"}

// GenerationIdentifier renders a generation ID the way the upstream API names
// it ("generation-iv").
func GenerationIdentifier(id int) string {
	if id < 1 || id > len(romanNumerals) {
		return "generation-" + strconv.Itoa(id)
	}
	return "generation-" + romanNumerals[id-1]
}

// ParseGeneration accepts "4", "iv" or "generation-iv". It returns 0 when
// the input names no generation.
func ParseGeneration(s string) int {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "generation-")
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	for i, r := range romanNumerals {
		if r == s {
			return i + 1
		}
	}
	return 0
}
