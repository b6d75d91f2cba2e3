package achievements

import "time"

// Definition is a catalog entry: a named milestone a user can unlock once.
type Definition struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// State is one user's unlock row for a catalog entry. Ord is the definition's
// position in the catalog, fixed at seed time so listings keep catalog order.
type State struct {
	AchievementID string     `json:"achievement_id"`
	UserID        string     `json:"user_id"`
	Ord           int        `json:"-"`
	Unlocked      bool       `json:"unlocked"`
	UnlockDate    *time.Time `json:"unlock_date,omitempty"`
}

// Threshold constants for the caller-evaluated unlock predicates.
const (
	TaskMasterCount    = 10
	TerminalNinjaCount = 50
	PongChampionScore  = 200
	EasterHunterCount  = 5
	StreakWeekDays     = 7
)

// Catalog achievement IDs.
const (
	FirstJobApply      = "first_job_apply"
	SavingsMilestone25 = "savings_milestone_25"
	SavingsMilestone50 = "savings_milestone_50"
	TaskMaster         = "task_master"
	TerminalNinja      = "terminal_ninja"
	PongChampion       = "pong_champion"
	EasterHunter       = "easter_hunter"
	StreakWeek         = "streak_week"
)

var catalog = []Definition{
	{ID: FirstJobApply, Category: "job_application", Title: "First Step", Description: "Applied to your first job", Icon: "🎯"},
	{ID: SavingsMilestone25, Category: "savings", Title: "Quarter Way There", Description: "Reached 25% of savings goal", Icon: "💰"},
	{ID: SavingsMilestone50, Category: "savings", Title: "Halfway Hero", Description: "Reached 50% of savings goal", Icon: "💎"},
	{ID: TaskMaster, Category: "tasks", Title: "Task Master", Description: "Completed 10 tasks", Icon: "✅"},
	{ID: TerminalNinja, Category: "terminal", Title: "Terminal Ninja", Description: "Executed 50 terminal commands", Icon: "⚡"},
	{ID: PongChampion, Category: "gaming", Title: "Pong Champion", Description: "Score 200 points in Pong", Icon: "🏆"},
	{ID: EasterHunter, Category: "easter_eggs", Title: "Easter Egg Hunter", Description: "Found 5 easter eggs", Icon: "🥚"},
	{ID: StreakWeek, Category: "streak", Title: "Weekly Warrior", Description: "Maintained 7-day streak", Icon: "🔥"},
}

// Catalog returns the fixed, ordered achievement definitions. The slice is a
// copy; the catalog itself is read-only process-wide state.
func Catalog() []Definition {
	defs := make([]Definition, len(catalog))
	copy(defs, catalog)
	return defs
}
