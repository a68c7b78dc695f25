package model

import (
	"fmt"
	"strings"
)

// VersionContext narrows data to one game release. Game determines
// VersionGroup which determines Generation; any of them may be missing and
// lookups degrade to the coarsest level that is known.
type VersionContext struct {
	Generation   int    `json:"generation,omitempty"`
	VersionGroup string `json:"versionGroup,omitempty"`
	Game         string `json:"game,omitempty"`
}

// Key is a stable string form used in cache keys.
func (vc VersionContext) Key() string {
	return fmt.Sprintf("%d/%s/%s", vc.Generation, vc.VersionGroup, vc.Game)
}

func (vc VersionContext) String() string {
	parts := make([]string, 0, 3)
	if vc.Game != "" {
		parts = append(parts, vc.Game)
	}
	if vc.VersionGroup != "" {
		parts = append(parts, vc.VersionGroup)
	}
	if vc.Generation != 0 {
		parts = append(parts, GenerationIdentifier(vc.Generation))
	}
	if len(parts) == 0 {
		return "latest"
	}
	return strings.Join(parts, " / ")
}
