package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultSavingsGoal is assigned to every user created lazily through
	// identity resolution. Savings milestones are measured against it.
	DefaultSavingsGoal = 5000.0

	// DefaultPassword seeds the credential of lazily created users. It is a
	// demo-mode placeholder, not a security mechanism.
	DefaultPassword = "default_password"
)

// User is the per-identity record the gamification engine operates on.
// ProductivityScore is a cached total of the user's ledger entries and is
// mutated only through the points ledger. Streak fields are mutated only by
// the activity touch.
type User struct {
	ID                   string            `json:"id"`
	Username             string            `json:"username"`
	Email                string            `json:"email,omitempty"`
	PasswordHash         string            `json:"-"` // never serialized
	CreatedAt            time.Time         `json:"created_at"`
	LastActiveAt         time.Time         `json:"last_active"`
	TotalSessions        int               `json:"total_sessions"`
	ProductivityScore    int               `json:"productivity_score"`
	DailyStreak          int               `json:"daily_streak"`
	LastStreakDate       string            `json:"last_streak_date,omitempty"` // YYYY-MM-DD
	SavingsGoal          float64           `json:"savings_goal"`
	CurrentSavings       float64           `json:"current_savings"`
	AchievementsUnlocked int               `json:"achievements_unlocked"`
	PongHighScore        int               `json:"pong_high_score"`
	CommandsExecuted     int               `json:"commands_executed"`
	EasterEggsFound      int               `json:"easter_eggs_found"`
	Settings             map[string]string `json:"settings,omitempty"`
}

// Clone returns a deep copy, so stores can hand out users without aliasing
// their internal state.
func (u *User) Clone() *User {
	c := *u
	if u.Settings != nil {
		c.Settings = make(map[string]string, len(u.Settings))
		for k, v := range u.Settings {
			c.Settings[k] = v
		}
	}
	return &c
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
