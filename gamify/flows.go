package gamify

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/thriveremote/thrive-server/achievements"
	"github.com/thriveremote/thrive-server/jobs"
	"github.com/thriveremote/thrive-server/tasks"
	"github.com/thriveremote/thrive-server/users"
)

// TaskInput carries the caller-supplied fields for a new task.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     string
}

// CreateTask stores a new task for the user and records the task_created
// action.
func (s *Service) CreateTask(ctx context.Context, userID string, input TaskInput) (*tasks.Task, error) {
	t := &tasks.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      tasks.StatusTodo,
		Priority:    input.Priority,
		Category:    input.Category,
		DueDate:     input.DueDate,
		CreatedAt:   s.nowTime(),
	}
	if t.Title == "" {
		t.Title = "New Task"
	}
	if t.Priority == "" {
		t.Priority = tasks.PriorityMedium
	}
	if t.Category == "" {
		t.Category = "general"
	}

	if err := s.repos.Tasks.Insert(ctx, t); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateTask] Tasks.Insert")
	}
	if _, err := s.points.Record(ctx, userID, ActionTaskCreated, PointsTaskCreated, map[string]string{
		"task_title": t.Title,
	}); err != nil {
		return nil, errors.Wrap(err, "[Service.CreateTask] ledger.Record")
	}
	return t, nil
}

// ListTasks returns the user's tasks, newest first.
func (s *Service) ListTasks(ctx context.Context, userID string) ([]*tasks.Task, error) {
	list, err := s.repos.Tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListTasks] Tasks.ListByUser")
	}
	return list, nil
}

// TaskCompletion reports the outcome of completing a task.
type TaskCompletion struct {
	Task           *tasks.Task `json:"task"`
	PointsEarned   int         `json:"points_earned"`
	TotalCompleted int         `json:"total_completed"`
	Unlocked       bool        `json:"achievement_unlocked"`
}

// CompleteTask marks the task completed, awards the completion points, and
// attempts the task_master unlock once the user's completed count reaches
// the threshold. Which unlock to attempt is decided here, not in the engine's
// transition primitive.
func (s *Service) CompleteTask(ctx context.Context, userID, taskID string) (*TaskCompletion, error) {
	t, err := s.repos.Tasks.MarkCompleted(ctx, userID, taskID, s.nowTime())
	if err != nil {
		return nil, err
	}
	if _, err := s.points.Record(ctx, userID, ActionTaskCompleted, PointsTaskCompleted, map[string]string{
		"task_title": t.Title,
	}); err != nil {
		return nil, errors.Wrap(err, "[Service.CompleteTask] ledger.Record")
	}

	completed, err := s.repos.Tasks.CountByStatus(ctx, userID, tasks.StatusCompleted)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.CompleteTask] CountByStatus")
	}

	result := &TaskCompletion{
		Task:           t,
		PointsEarned:   PointsTaskCompleted,
		TotalCompleted: completed,
	}
	if completed >= achievements.TaskMasterCount {
		unlocked, err := s.TryUnlock(ctx, userID, achievements.TaskMaster)
		if err != nil {
			return nil, errors.Wrap(err, "[Service.CompleteTask] TryUnlock task_master")
		}
		result.Unlocked = unlocked
	}
	return result, nil
}

// ApplicationInput carries the caller-supplied fields for a job application.
type ApplicationInput struct {
	OpportunityID   string
	FullName        string
	Email           string
	CurrentLocation string
	Motivation      string
}

// ApplyToJob stores the application, awards the application points, and
// attempts the first-application unlock.
func (s *Service) ApplyToJob(ctx context.Context, userID string, input ApplicationInput) (*jobs.Application, error) {
	a := &jobs.Application{
		ID:              uuid.New().String(),
		UserID:          userID,
		OpportunityID:   input.OpportunityID,
		FullName:        input.FullName,
		Email:           input.Email,
		CurrentLocation: input.CurrentLocation,
		Motivation:      input.Motivation,
		Status:          jobs.StatusSubmitted,
		SubmittedAt:     s.nowTime(),
	}
	if err := s.repos.Applications.Insert(ctx, a); err != nil {
		return nil, errors.Wrap(err, "[Service.ApplyToJob] Applications.Insert")
	}
	if _, err := s.points.Record(ctx, userID, ActionJobApplication, PointsJobApplication, map[string]string{
		"opportunity_id": a.OpportunityID,
		"application_id": a.ID,
	}); err != nil {
		return nil, errors.Wrap(err, "[Service.ApplyToJob] ledger.Record")
	}

	count, err := s.repos.Applications.CountByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ApplyToJob] CountByUser")
	}
	if count >= 1 {
		if _, err := s.TryUnlock(ctx, userID, achievements.FirstJobApply); err != nil {
			return nil, errors.Wrap(err, "[Service.ApplyToJob] TryUnlock first_job_apply")
		}
	}
	return a, nil
}

// UpdateSavings sets the user's current savings and attempts the milestone
// unlocks the new ratio has crossed.
func (s *Service) UpdateSavings(ctx context.Context, userID string, amount float64) (*users.User, error) {
	u, err := s.repos.Users.SetSavings(ctx, userID, amount)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.UpdateSavings] SetSavings")
	}
	if u.SavingsGoal <= 0 {
		return u, nil
	}

	ratio := u.CurrentSavings / u.SavingsGoal
	if ratio >= 0.25 {
		if _, err := s.TryUnlock(ctx, userID, achievements.SavingsMilestone25); err != nil {
			return nil, errors.Wrap(err, "[Service.UpdateSavings] TryUnlock 25")
		}
	}
	if ratio >= 0.5 {
		if _, err := s.TryUnlock(ctx, userID, achievements.SavingsMilestone50); err != nil {
			return nil, errors.Wrap(err, "[Service.UpdateSavings] TryUnlock 50")
		}
	}
	return u, nil
}

// ReportGameScore raises the user's Pong high score and attempts the champion
// unlock at the threshold. The stored high score is a monotonic max.
func (s *Service) ReportGameScore(ctx context.Context, userID string, score int) (int, error) {
	high, err := s.repos.Users.SetPongHighScore(ctx, userID, score)
	if err != nil {
		return 0, errors.Wrap(err, "[Service.ReportGameScore] SetPongHighScore")
	}
	if high >= achievements.PongChampionScore {
		if _, err := s.TryUnlock(ctx, userID, achievements.PongChampion); err != nil {
			return high, errors.Wrap(err, "[Service.ReportGameScore] TryUnlock pong_champion")
		}
	}
	return high, nil
}

// ReportCommand counts one executed terminal command and attempts the
// terminal_ninja unlock at the threshold.
func (s *Service) ReportCommand(ctx context.Context, userID string) (int, error) {
	count, err := s.repos.Users.IncCommands(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "[Service.ReportCommand] IncCommands")
	}
	if count >= achievements.TerminalNinjaCount {
		if _, err := s.TryUnlock(ctx, userID, achievements.TerminalNinja); err != nil {
			return count, errors.Wrap(err, "[Service.ReportCommand] TryUnlock terminal_ninja")
		}
	}
	return count, nil
}

// ReportEasterEgg counts one discovered easter egg and attempts the hunter
// unlock at the threshold.
func (s *Service) ReportEasterEgg(ctx context.Context, userID string) (int, error) {
	count, err := s.repos.Users.IncEasterEggs(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "[Service.ReportEasterEgg] IncEasterEggs")
	}
	if count >= achievements.EasterHunterCount {
		if _, err := s.TryUnlock(ctx, userID, achievements.EasterHunter); err != nil {
			return count, errors.Wrap(err, "[Service.ReportEasterEgg] TryUnlock easter_hunter")
		}
	}
	return count, nil
}

// DashboardStats aggregates the live view the dashboard renders.
type DashboardStats struct {
	TotalApplications    int     `json:"total_applications"`
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"tasks_completed"`
	CompletionRate       float64 `json:"completion_rate"`
	DailyStreak          int     `json:"daily_streak"`
	ProductivityScore    int     `json:"productivity_score"`
	AchievementsUnlocked int     `json:"achievements_unlocked"`
	PongHighScore        int     `json:"pong_high_score"`
	SavingsProgress      float64 `json:"savings_progress"`
	MonthlySavings       float64 `json:"monthly_savings"`
}

// Stats builds the dashboard aggregate for a user. Savings progress includes
// the streak bonus of 25 per streak day, capped at 100%.
func (s *Service) Stats(ctx context.Context, userID string) (*DashboardStats, error) {
	u, err := s.repos.Users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "[Service.Stats] Users.Get")
	}

	totalTasks, err := countAllTasks(ctx, s, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.repos.Tasks.CountByStatus(ctx, userID, tasks.StatusCompleted)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Stats] CountByStatus")
	}
	applications, err := s.repos.Applications.CountByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Stats] Applications.CountByUser")
	}
	unlocked, err := s.repos.Achievements.CountUnlocked(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Stats] CountUnlocked")
	}

	streakBonus := float64(u.DailyStreak) * 25
	totalSavings := u.CurrentSavings + streakBonus
	progress := 0.0
	if u.SavingsGoal > 0 {
		progress = totalSavings / u.SavingsGoal * 100
		if progress > 100 {
			progress = 100
		}
	}
	rate := 0.0
	if totalTasks > 0 {
		rate = float64(completed) / float64(totalTasks) * 100
	}

	return &DashboardStats{
		TotalApplications:    applications,
		TotalTasks:           totalTasks,
		CompletedTasks:       completed,
		CompletionRate:       rate,
		DailyStreak:          u.DailyStreak,
		ProductivityScore:    u.ProductivityScore,
		AchievementsUnlocked: unlocked,
		PongHighScore:        u.PongHighScore,
		SavingsProgress:      progress,
		MonthlySavings:       totalSavings,
	}, nil
}

func countAllTasks(ctx context.Context, s *Service, userID string) (int, error) {
	list, err := s.repos.Tasks.ListByUser(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "[Service.Stats] Tasks.ListByUser")
	}
	return len(list), nil
}
