package config

import "strconv"

type Sessions struct{}

var _ SessionConfig = Sessions{}

func (Sessions) GetSessionTTLHours() int {
	raw := GetEnv("SESSION_TTL_HOURS", "24")
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 24
	}
	return hours
}

// GetAnonymousUserID returns the shared fallback identity for tokenless
// requests. Overridable so a deployment can swap in stricter per-session
// anonymous identities without touching the engine.
func (Sessions) GetAnonymousUserID() string {
	return GetEnv("ANONYMOUS_USER_ID", "demo_user")
}
