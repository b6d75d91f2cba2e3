package gamify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thriveremote/thrive-server/achievements"
	"github.com/thriveremote/thrive-server/gamify"
	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/sessions"
	"github.com/thriveremote/thrive-server/store/memstore"
	"github.com/thriveremote/thrive-server/users"
)

const (
	testUserID   = "user-1"
	testPassword = users.DefaultPassword
)

// testFixture holds all test dependencies
type testFixture struct {
	store   *memstore.Store
	tokens  *sessions.Store
	points  *ledger.Ledger
	service *gamify.Service
	now     time.Time
}

// setupTestFixture wires the engine over the in-memory store with an
// injected clock. Advance the clock through f.advance.
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		store: memstore.New(),
		now:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	nowFunc := func() time.Time { return f.now }

	tokens, err := sessions.NewStore(f.store.Sessions(), sessions.WithNowTime(nowFunc))
	require.NoError(t, err)
	points, err := ledger.New(f.store.Ledger(), ledger.WithNowTime(nowFunc))
	require.NoError(t, err)

	repos := gamify.Repos{
		Users:        f.store.Users(),
		Achievements: f.store.Achievements(),
		Tasks:        f.store.Tasks(),
		Applications: f.store.Applications(),
	}
	service, err := gamify.NewService(repos, tokens, points, gamify.WithNowTime(nowFunc))
	require.NoError(t, err)

	f.tokens = tokens
	f.points = points
	f.service = service
	return f
}

func (f *testFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// createUser resolves the identity once so the record and its seeded state
// exist.
func (f *testFixture) createUser(t *testing.T, id string) *users.User {
	t.Helper()
	u, created, err := f.service.ResolveOrCreateUser(context.Background(), id)
	require.NoError(t, err)
	require.True(t, created)
	return u
}

func TestCurrentUser_AnonymousFallback(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.Equal(t, gamify.DefaultAnonymousID, f.service.CurrentUser(ctx, ""))
	require.Equal(t, gamify.DefaultAnonymousID, f.service.CurrentUser(ctx, "no-such-token"))
}

func TestCurrentUser_ValidToken(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	token, err := f.service.Login(ctx, testUserID, testPassword)
	require.NoError(t, err)

	require.Equal(t, testUserID, f.service.CurrentUser(ctx, token))
}

func TestCurrentUser_ExpiredToken(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	token, err := f.service.Login(ctx, testUserID, testPassword)
	require.NoError(t, err)

	f.advance(sessions.DefaultTTL + time.Minute)
	require.Equal(t, gamify.DefaultAnonymousID, f.service.CurrentUser(ctx, token))
}

func TestResolveOrCreateUser_SeedsDefaults(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	u := f.createUser(t, testUserID)

	require.Equal(t, testUserID, u.ID)
	require.Equal(t, "User_user-1", u.Username)
	require.Equal(t, 0, u.ProductivityScore)
	require.Equal(t, 1, u.DailyStreak)
	require.Equal(t, 1, u.TotalSessions)
	require.Equal(t, users.DefaultSavingsGoal, u.SavingsGoal)
	require.Equal(t, users.DateKey(f.now), u.LastStreakDate)

	states, err := f.service.ListAchievements(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, states, len(achievements.Catalog()))
	for _, state := range states {
		require.False(t, state.Unlocked)
		require.Nil(t, state.UnlockDate)
	}

	list, err := f.service.ListTasks(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, list, 3)
}

func TestResolveOrCreateUser_SameDayIsNoOp(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	f.advance(3 * time.Hour)
	u, created, err := f.service.ResolveOrCreateUser(ctx, testUserID)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, 1, u.DailyStreak)
	require.Equal(t, 1, u.TotalSessions)
}

func TestStreak_ContinuesOnConsecutiveDays(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	f.advance(24 * time.Hour)
	u, _, err := f.service.ResolveOrCreateUser(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, 2, u.DailyStreak)
	require.Equal(t, 2, u.TotalSessions)
}

func TestStreak_ResetsAfterGap(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	f.advance(24 * time.Hour)
	_, _, err := f.service.ResolveOrCreateUser(ctx, testUserID)
	require.NoError(t, err)

	f.advance(48 * time.Hour)
	u, _, err := f.service.ResolveOrCreateUser(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, 1, u.DailyStreak)
}

func TestStreak_WeekUnlocksAchievement(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	for day := 2; day <= 7; day++ {
		f.advance(24 * time.Hour)
		u, _, err := f.service.ResolveOrCreateUser(ctx, testUserID)
		require.NoError(t, err)
		require.Equal(t, day, u.DailyStreak)
	}

	states, err := f.service.ListAchievements(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, achievements.StreakWeek, states[0].AchievementID)
	require.True(t, states[0].Unlocked)

	total, err := f.service.TotalScore(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, gamify.PointsAchievement, total)
}

func TestLogin_DefaultCredential(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	token, err := f.service.Login(ctx, testUserID, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	_, err := f.service.Login(ctx, testUserID, "wrong-password")
	require.ErrorIs(t, err, gamify.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Login(context.Background(), "nobody", testPassword)
	require.ErrorIs(t, err, gamify.ErrInvalidCredentials)
}

func TestLogout_Idempotent(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	token, err := f.service.Login(ctx, testUserID, testPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, token))
	require.NoError(t, f.service.Logout(ctx, token))
	require.NoError(t, f.service.Logout(ctx, "never-issued"))

	require.Equal(t, gamify.DefaultAnonymousID, f.service.CurrentUser(ctx, token))
}

func TestSweepSessions_KeepsUnexpired(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	stale, err := f.service.Login(ctx, testUserID, testPassword)
	require.NoError(t, err)

	f.advance(sessions.DefaultTTL + time.Minute)
	fresh, err := f.service.Login(ctx, testUserID, testPassword)
	require.NoError(t, err)

	removed, err := f.service.SweepSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	require.Equal(t, gamify.DefaultAnonymousID, f.service.CurrentUser(ctx, stale))
	require.Equal(t, testUserID, f.service.CurrentUser(ctx, fresh))
}

func TestRecordAction_AccumulatesScore(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	total, err := f.service.RecordAction(ctx, testUserID, gamify.ActionTaskCreated, gamify.PointsTaskCreated, nil)
	require.NoError(t, err)
	require.Equal(t, 5, total)

	total, err = f.service.RecordAction(ctx, testUserID, gamify.ActionTaskCompleted, gamify.PointsTaskCompleted, nil)
	require.NoError(t, err)
	require.Equal(t, 25, total)

	score, err := f.service.TotalScore(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, 25, score)
}

func TestRecordAction_RejectsEmptyAction(t *testing.T) {
	f := setupTestFixture(t)
	f.createUser(t, testUserID)

	_, err := f.service.RecordAction(context.Background(), testUserID, "", 5, nil)
	require.ErrorIs(t, err, ledger.ErrInvalidAction)
}

func TestRecordAction_ConcurrentScoreMatchesLedgerSum(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.RecordAction(ctx, testUserID, gamify.ActionTaskCompleted, gamify.PointsTaskCompleted, nil)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	score, err := f.service.TotalScore(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, workers*gamify.PointsTaskCompleted, score)

	sum, err := f.points.AuditSum(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, score, sum)
}

func TestTryUnlock_ExactlyOnceUnderConcurrency(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	const workers = 32
	var (
		wg   sync.WaitGroup
		lock sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlocked, err := f.service.TryUnlock(ctx, testUserID, achievements.PongChampion)
			require.NoError(t, err)
			if unlocked {
				lock.Lock()
				wins++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)

	score, err := f.service.TotalScore(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, gamify.PointsAchievement, score)

	history, err := f.service.History(ctx, testUserID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, gamify.ActionAchievement, history[0].Action)
	require.Equal(t, achievements.PongChampion, history[0].Metadata["achievement_id"])
}

func TestTryUnlock_SecondAttemptIsNoOp(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	unlocked, err := f.service.TryUnlock(ctx, testUserID, achievements.TaskMaster)
	require.NoError(t, err)
	require.True(t, unlocked)

	unlocked, err = f.service.TryUnlock(ctx, testUserID, achievements.TaskMaster)
	require.NoError(t, err)
	require.False(t, unlocked)

	score, err := f.service.TotalScore(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, gamify.PointsAchievement, score)
}

func TestTryUnlock_UnknownAchievement(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	unlocked, err := f.service.TryUnlock(ctx, testUserID, "not-in-catalog")
	require.NoError(t, err)
	require.False(t, unlocked)
}

func TestListAchievements_UnlockedFirstThenCatalogOrder(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.createUser(t, testUserID)

	_, err := f.service.TryUnlock(ctx, testUserID, achievements.TerminalNinja)
	require.NoError(t, err)

	states, err := f.service.ListAchievements(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, states, len(achievements.Catalog()))
	require.Equal(t, achievements.TerminalNinja, states[0].AchievementID)

	catalogOrder := make([]string, 0, len(states)-1)
	for _, state := range states[1:] {
		require.False(t, state.Unlocked)
		catalogOrder = append(catalogOrder, state.AchievementID)
	}
	expected := make([]string, 0, len(catalogOrder))
	for _, def := range achievements.Catalog() {
		if def.ID != achievements.TerminalNinja {
			expected = append(expected, def.ID)
		}
	}
	require.Equal(t, expected, catalogOrder)
}

func TestResolveOrCreateUser_ConcurrentCreateSingleWinner(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	const workers = 16
	var (
		wg      sync.WaitGroup
		lock    sync.Mutex
		creates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := f.service.ResolveOrCreateUser(ctx, "racer")
			require.NoError(t, err)
			if created {
				lock.Lock()
				creates++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, creates)

	list, err := f.service.ListTasks(ctx, "racer")
	require.NoError(t, err)
	require.Len(t, list, 3)
}
