package repository

import "strings"

const (
	identityKey  = "identity"
	soloGoalsKey = "solo_goals"
	xpKey        = "xp"
)

// userKey namespaces a per-user blob: {prefix}:{userID}:{name}
func userKey(prefix, userID, name string) string {
	parts := []string{userID, name}
	if prefix != "" {
		parts = append([]string{prefix}, parts...)
	}
	return strings.Join(parts, ":")
}
