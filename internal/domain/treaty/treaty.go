package treaty

import (
	"slices"

	"pnw_targets/internal/app"
)

// ProtectiveTypes are the treaty types that forbid attacking the other alliance's members
var ProtectiveTypes = []string{"MDP", "MDOAP", "ODP", "ODOAP", "NAP", "PIAT", "Protectorate"}

// IsProtective reports whether a treaty type is on the protective allow-list
func IsProtective(treatyType string) bool {
	return slices.Contains(ProtectiveTypes, treatyType)
}

// Protects reports whether mine holds a protective treaty with theirs.
// Only mine's treaty list is consulted; a treaty matches when theirs appears
// on either side of it. Either alliance being nil means no protection.
// Pure function: No I/O, deterministic output from input
func Protects(mine, theirs *app.Alliance) bool {
	if mine == nil || theirs == nil {
		return false
	}

	for _, t := range mine.Treaties {
		if t.Alliance1ID != theirs.ID && t.Alliance2ID != theirs.ID {
			continue
		}
		if IsProtective(t.TreatyType) {
			return true
		}
	}

	return false
}
