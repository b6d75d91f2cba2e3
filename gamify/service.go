package gamify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/thriveremote/thrive-server/achievements"
	"github.com/thriveremote/thrive-server/jobs"
	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/sessions"
	"github.com/thriveremote/thrive-server/tasks"
	"github.com/thriveremote/thrive-server/users"
)

// DefaultAnonymousID is the shared fallback identity for requests without a
// valid session token. All unauthenticated traffic accumulates on this one
// user record; deployments wanting stricter isolation configure their own id
// per request through WithAnonymousID.
const DefaultAnonymousID = "demo_user"

// Points awarded per scored action.
const (
	PointsTaskCreated    = 5
	PointsTaskCompleted  = 20
	PointsJobApplication = 25
	PointsAchievement    = 50
)

// Action kinds recorded in the ledger.
const (
	ActionTaskCreated    = "task_created"
	ActionTaskCompleted  = "task_completed"
	ActionJobApplication = "relocate_application"
	ActionAchievement    = "achievement_unlocked"
)

// Repos holds all repository dependencies for the Service.
type Repos struct {
	Users        users.Repo
	Achievements achievements.Repo
	Tasks        tasks.Repo
	Applications jobs.Repo
}

// Service is the session and gamification engine: it resolves identities,
// stamps activity streaks, records scored actions through the points ledger,
// and drives the one-shot achievement unlock transitions.
type Service struct {
	repos     Repos
	tokens    *sessions.Store
	points    *ledger.Ledger
	anonymous string
	nowTime   func() time.Time // injectable for testing
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithAnonymousID overrides the fallback identity used for tokenless requests.
func WithAnonymousID(id string) ServiceOption {
	return func(s *Service) {
		s.anonymous = id
	}
}

// NewService initializes the engine with its required dependencies. Optional
// configuration can be provided via options.
func NewService(repos Repos, tokens *sessions.Store, points *ledger.Ledger, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Achievements == nil {
		return nil, errors.New("[NewService] Achievements repo is required")
	}
	if repos.Tasks == nil {
		return nil, errors.New("[NewService] Tasks repo is required")
	}
	if repos.Applications == nil {
		return nil, errors.New("[NewService] Applications repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token store is required")
	}
	if points == nil {
		return nil, errors.New("[NewService] ledger is required")
	}

	service := &Service{
		repos:     repos,
		tokens:    tokens,
		points:    points,
		anonymous: DefaultAnonymousID,
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// CurrentUser maps an inbound token to a user identity. A missing, unknown,
// or expired token falls back to the anonymous identity; this never fails and
// handlers lean on that.
func (s *Service) CurrentUser(ctx context.Context, token string) string {
	if token == "" {
		return s.anonymous
	}
	userID, ok := s.tokens.Resolve(ctx, token)
	if !ok {
		return s.anonymous
	}
	return userID
}

// ResolveOrCreateUser returns the user record for an identity, creating it
// with defaults and seeded achievement and task state on first touch. The
// returned flag distinguishes first-touch creation from a steady-state read;
// on the steady-state path one activity touch is applied.
func (s *Service) ResolveOrCreateUser(ctx context.Context, userID string) (*users.User, bool, error) {
	u, err := s.repos.Users.Get(ctx, userID)
	if err == nil {
		if err := s.touch(ctx, userID); err != nil {
			return nil, false, errors.Wrap(err, "[Service.ResolveOrCreateUser] touch")
		}
		u, err = s.repos.Users.Get(ctx, userID)
		if err != nil {
			return nil, false, errors.Wrap(err, "[Service.ResolveOrCreateUser] re-read")
		}
		return u, false, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, false, errors.Wrap(err, "[Service.ResolveOrCreateUser] Users.Get")
	}

	u, err = s.createUser(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrExists) {
			// Lost the creation race; the other caller seeded everything.
			existing, getErr := s.repos.Users.Get(ctx, userID)
			if getErr != nil {
				return nil, false, errors.Wrap(getErr, "[Service.ResolveOrCreateUser] Get after race")
			}
			return existing, false, nil
		}
		return nil, false, errors.Wrap(err, "[Service.ResolveOrCreateUser] create")
	}
	return u, true, nil
}

func (s *Service) createUser(ctx context.Context, userID string) (*users.User, error) {
	now := s.nowTime()

	passwordHash, err := users.HashPassword(users.DefaultPassword)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.createUser] HashPassword")
	}

	u := &users.User{
		ID:             userID,
		Username:       defaultUsername(userID),
		PasswordHash:   passwordHash,
		CreatedAt:      now,
		LastActiveAt:   now,
		TotalSessions:  1,
		DailyStreak:    1,
		LastStreakDate: users.DateKey(now),
		SavingsGoal:    users.DefaultSavingsGoal,
	}
	if err := s.repos.Users.Insert(ctx, u); err != nil {
		return nil, err
	}
	if err := s.repos.Achievements.Seed(ctx, userID, achievements.Catalog()); err != nil {
		return nil, errors.Wrap(err, "[Service.createUser] Achievements.Seed")
	}
	for _, t := range tasks.Defaults(userID, now) {
		t.ID = uuid.New().String()
		if err := s.repos.Tasks.Insert(ctx, t); err != nil {
			return nil, errors.Wrap(err, "[Service.createUser] Tasks.Insert")
		}
	}
	return u, nil
}

// defaultUsername derives a display name from the tail of the identity, the
// same way the platform has always labelled lazily created users.
func defaultUsername(userID string) string {
	tail := userID
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return "User_" + tail
}

// touch applies one activity stamp and attempts the weekly-streak unlock when
// the streak reaches seven days.
func (s *Service) touch(ctx context.Context, userID string) error {
	streak, err := s.repos.Users.Touch(ctx, userID, s.nowTime())
	if err != nil {
		return errors.Wrap(err, "[Service.touch] Users.Touch")
	}
	if streak >= achievements.StreakWeekDays {
		if _, err := s.TryUnlock(ctx, userID, achievements.StreakWeek); err != nil {
			return errors.Wrap(err, "[Service.touch] TryUnlock streak_week")
		}
	}
	return nil
}

// RecordAction appends a scored action to the points ledger and returns the
// user's new cumulative score.
func (s *Service) RecordAction(ctx context.Context, userID, action string, points int, metadata map[string]string) (int, error) {
	total, err := s.points.Record(ctx, userID, action, points, metadata)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// TotalScore returns the user's cached cumulative score.
func (s *Service) TotalScore(ctx context.Context, userID string) (int, error) {
	u, err := s.repos.Users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, errors.Wrap(err, "[Service.TotalScore] Users.Get")
	}
	return u.ProductivityScore, nil
}

// TryUnlock performs the one-shot unlock transition for an achievement.
// Exactly one caller observes true under a race; that caller's side effects
// are the achievement counter bump and the 50-point bonus ledger entry.
func (s *Service) TryUnlock(ctx context.Context, userID, achievementID string) (bool, error) {
	unlocked, err := s.repos.Achievements.TryUnlock(ctx, userID, achievementID, s.nowTime())
	if err != nil {
		if errors.Is(err, achievements.ErrNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "[Service.TryUnlock] Achievements.TryUnlock")
	}
	if !unlocked {
		return false, nil
	}

	if err := s.repos.Users.IncAchievements(ctx, userID); err != nil {
		return true, errors.Wrap(err, "[Service.TryUnlock] Users.IncAchievements")
	}
	if _, err := s.points.Record(ctx, userID, ActionAchievement, PointsAchievement, map[string]string{
		"achievement_id": achievementID,
	}); err != nil {
		return true, errors.Wrap(err, "[Service.TryUnlock] ledger.Record")
	}
	return true, nil
}

// ListAchievements returns the user's achievement rows, seeding them on
// demand, ordered unlocked-first then by catalog order.
func (s *Service) ListAchievements(ctx context.Context, userID string) ([]*achievements.State, error) {
	if err := s.repos.Achievements.Seed(ctx, userID, achievements.Catalog()); err != nil {
		return nil, errors.Wrap(err, "[Service.ListAchievements] Seed")
	}
	states, err := s.repos.Achievements.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListAchievements] ListByUser")
	}
	return states, nil
}

// History returns the user's most recent ledger entries, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]*ledger.Entry, error) {
	return s.points.History(ctx, userID, limit)
}

// Login verifies the user's credential and issues a fresh session token.
func (s *Service) Login(ctx context.Context, userID, password string) (string, error) {
	u, err := s.repos.Users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", errors.Wrap(err, "[Service.Login] Users.Get")
	}
	if !users.CheckPasswordHash(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(ctx, userID)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Login] tokens.Issue")
	}
	return token, nil
}

// Logout invalidates the session token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Invalidate(ctx, token)
}

// SweepSessions removes expired sessions and returns how many were dropped.
func (s *Service) SweepSessions(ctx context.Context) (int, error) {
	return s.tokens.Sweep(ctx)
}
