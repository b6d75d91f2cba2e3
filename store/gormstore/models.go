package gormstore

import (
	"encoding/json"
	"time"

	"github.com/thriveremote/thrive-server/achievements"
	"github.com/thriveremote/thrive-server/jobs"
	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/sessions"
	"github.com/thriveremote/thrive-server/tasks"
	"github.com/thriveremote/thrive-server/users"
)

type sessionModel struct {
	Token      string    `gorm:"primaryKey;size:64"`
	UserID     string    `gorm:"index;size:64;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	LastUsedAt time.Time `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"index;not null"`
}

func (sessionModel) TableName() string { return "sessions" }

func toSessionModel(s *sessions.Session) *sessionModel {
	return &sessionModel{
		Token:      s.Token,
		UserID:     s.UserID,
		CreatedAt:  s.CreatedAt,
		LastUsedAt: s.LastUsedAt,
		ExpiresAt:  s.ExpiresAt,
	}
}

func (m *sessionModel) domain() *sessions.Session {
	return &sessions.Session{
		Token:      m.Token,
		UserID:     m.UserID,
		CreatedAt:  m.CreatedAt,
		LastUsedAt: m.LastUsedAt,
		ExpiresAt:  m.ExpiresAt,
	}
}

type userModel struct {
	ID                   string    `gorm:"primaryKey;size:64"`
	Username             string    `gorm:"size:128;not null"`
	Email                string    `gorm:"size:256"`
	PasswordHash         string    `gorm:"size:128;not null"`
	CreatedAt            time.Time `gorm:"not null"`
	LastActiveAt         time.Time `gorm:"not null"`
	TotalSessions        int       `gorm:"not null;default:0"`
	ProductivityScore    int       `gorm:"not null;default:0"`
	DailyStreak          int       `gorm:"not null;default:0"`
	LastStreakDate       string    `gorm:"size:10"`
	SavingsGoal          float64   `gorm:"not null;default:0"`
	CurrentSavings       float64   `gorm:"not null;default:0"`
	AchievementsUnlocked int       `gorm:"not null;default:0"`
	PongHighScore        int       `gorm:"not null;default:0"`
	CommandsExecuted     int       `gorm:"not null;default:0"`
	EasterEggsFound      int       `gorm:"not null;default:0"`
	Settings             string    // JSON object
}

func (userModel) TableName() string { return "users" }

func toUserModel(u *users.User) *userModel {
	settings := ""
	if len(u.Settings) > 0 {
		if raw, err := json.Marshal(u.Settings); err == nil {
			settings = string(raw)
		}
	}
	return &userModel{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		PasswordHash:         u.PasswordHash,
		CreatedAt:            u.CreatedAt,
		LastActiveAt:         u.LastActiveAt,
		TotalSessions:        u.TotalSessions,
		ProductivityScore:    u.ProductivityScore,
		DailyStreak:          u.DailyStreak,
		LastStreakDate:       u.LastStreakDate,
		SavingsGoal:          u.SavingsGoal,
		CurrentSavings:       u.CurrentSavings,
		AchievementsUnlocked: u.AchievementsUnlocked,
		PongHighScore:        u.PongHighScore,
		CommandsExecuted:     u.CommandsExecuted,
		EasterEggsFound:      u.EasterEggsFound,
		Settings:             settings,
	}
}

func (m *userModel) domain() *users.User {
	var settings map[string]string
	if m.Settings != "" {
		_ = json.Unmarshal([]byte(m.Settings), &settings)
	}
	return &users.User{
		ID:                   m.ID,
		Username:             m.Username,
		Email:                m.Email,
		PasswordHash:         m.PasswordHash,
		CreatedAt:            m.CreatedAt,
		LastActiveAt:         m.LastActiveAt,
		TotalSessions:        m.TotalSessions,
		ProductivityScore:    m.ProductivityScore,
		DailyStreak:          m.DailyStreak,
		LastStreakDate:       m.LastStreakDate,
		SavingsGoal:          m.SavingsGoal,
		CurrentSavings:       m.CurrentSavings,
		AchievementsUnlocked: m.AchievementsUnlocked,
		PongHighScore:        m.PongHighScore,
		CommandsExecuted:     m.CommandsExecuted,
		EasterEggsFound:      m.EasterEggsFound,
		Settings:             settings,
	}
}

type entryModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"index;size:64;not null"`
	Action    string    `gorm:"size:64;not null"`
	Points    int       `gorm:"not null"`
	Timestamp time.Time `gorm:"index;not null"`
	Metadata  string    // JSON object
}

func (entryModel) TableName() string { return "productivity_logs" }

func toEntryModel(e *ledger.Entry) *entryModel {
	metadata := ""
	if len(e.Metadata) > 0 {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = string(raw)
		}
	}
	return &entryModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    e.Action,
		Points:    e.Points,
		Timestamp: e.Timestamp,
		Metadata:  metadata,
	}
}

func (m *entryModel) domain() *ledger.Entry {
	var metadata map[string]string
	if m.Metadata != "" {
		_ = json.Unmarshal([]byte(m.Metadata), &metadata)
	}
	return &ledger.Entry{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		Points:    m.Points,
		Timestamp: m.Timestamp,
		Metadata:  metadata,
	}
}

type achievementModel struct {
	UserID        string `gorm:"primaryKey;size:64"`
	AchievementID string `gorm:"primaryKey;size:64"`
	Ord           int    `gorm:"not null"`
	Unlocked      bool   `gorm:"not null;default:false"`
	UnlockDate    *time.Time
}

func (achievementModel) TableName() string { return "achievement_states" }

func (m *achievementModel) domain() *achievements.State {
	return &achievements.State{
		AchievementID: m.AchievementID,
		UserID:        m.UserID,
		Ord:           m.Ord,
		Unlocked:      m.Unlocked,
		UnlockDate:    m.UnlockDate,
	}
}

type taskModel struct {
	ID          string    `gorm:"primaryKey;size:64"`
	UserID      string    `gorm:"index;size:64;not null"`
	Title       string    `gorm:"size:256;not null"`
	Description string
	Status      string    `gorm:"index;size:16;not null"`
	Priority    string    `gorm:"size:16;not null"`
	Category    string    `gorm:"size:64"`
	DueDate     string    `gorm:"size:10"`
	CreatedAt   time.Time `gorm:"index;not null"`
	CompletedAt *time.Time
}

func (taskModel) TableName() string { return "tasks" }

func toTaskModel(t *tasks.Task) *taskModel {
	return &taskModel{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Category:    t.Category,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func (m *taskModel) domain() *tasks.Task {
	return &tasks.Task{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Status:      m.Status,
		Priority:    m.Priority,
		Category:    m.Category,
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
		CompletedAt: m.CompletedAt,
	}
}

type applicationModel struct {
	ID              string    `gorm:"primaryKey;size:64"`
	UserID          string    `gorm:"index;size:64;not null"`
	OpportunityID   string    `gorm:"size:64"`
	FullName        string    `gorm:"size:256"`
	Email           string    `gorm:"size:256"`
	CurrentLocation string    `gorm:"size:256"`
	Motivation      string
	Status          string    `gorm:"size:32;not null"`
	SubmittedAt     time.Time `gorm:"not null"`
}

func (applicationModel) TableName() string { return "relocate_applications" }

func toApplicationModel(a *jobs.Application) *applicationModel {
	return &applicationModel{
		ID:              a.ID,
		UserID:          a.UserID,
		OpportunityID:   a.OpportunityID,
		FullName:        a.FullName,
		Email:           a.Email,
		CurrentLocation: a.CurrentLocation,
		Motivation:      a.Motivation,
		Status:          a.Status,
		SubmittedAt:     a.SubmittedAt,
	}
}

func (m *applicationModel) domain() *jobs.Application {
	return &jobs.Application{
		ID:              m.ID,
		UserID:          m.UserID,
		OpportunityID:   m.OpportunityID,
		FullName:        m.FullName,
		Email:           m.Email,
		CurrentLocation: m.CurrentLocation,
		Motivation:      m.Motivation,
		Status:          m.Status,
		SubmittedAt:     m.SubmittedAt,
	}
}
