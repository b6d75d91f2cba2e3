package tasks

import "time"

// Task statuses.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     string     `json:"due_date,omitempty"` // YYYY-MM-DD
	CreatedAt   time.Time  `json:"created_date"`
	CompletedAt *time.Time `json:"completed_date,omitempty"`
}

// Defaults returns the starter tasks seeded for a newly created user.
func Defaults(userID string, now time.Time) []*Task {
	return []*Task{
		{
			UserID:      userID,
			Title:       "Update Resume",
			Description: "Add latest skills and experience",
			Status:      StatusTodo,
			Priority:    PriorityHigh,
			Category:    "job_search",
			DueDate:     now.AddDate(0, 0, 7).Format("2006-01-02"),
			CreatedAt:   now,
		},
		{
			UserID:      userID,
			Title:       "Set Monthly Savings Goal",
			Description: "Define realistic monthly savings target",
			Status:      StatusInProgress,
			Priority:    PriorityMedium,
			Category:    "finance",
			CreatedAt:   now,
		},
		{
			UserID:      userID,
			Title:       "Explore ThriveRemote Features",
			Description: "Try the music player, desktop environment, and AI tools",
			Status:      StatusTodo,
			Priority:    PriorityLow,
			Category:    "platform",
			CreatedAt:   now,
		},
	}
}
