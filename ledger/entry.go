package ledger

import "time"

// Entry is one immutable record of a point-earning action. Entries are only
// ever appended; the cumulative total lives on the user record and is moved
// in the same atomic step as the append.
type Entry struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Action    string            `json:"action"`
	Points    int               `json:"points"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
