package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thriveremote/thrive-server/achievements"
	"github.com/thriveremote/thrive-server/gamify"
	"github.com/thriveremote/thrive-server/internal/config"
	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/server"
	"github.com/thriveremote/thrive-server/sessions"
	"github.com/thriveremote/thrive-server/store/memstore"
)

func setupServer(t *testing.T) *server.Server {
	t.Helper()

	store := memstore.New()
	tokens, err := sessions.NewStore(store.Sessions())
	require.NoError(t, err)
	points, err := ledger.New(store.Ledger())
	require.NoError(t, err)

	engine, err := gamify.NewService(gamify.Repos{
		Users:        store.Users(),
		Achievements: store.Achievements(),
		Tasks:        store.Tasks(),
		Applications: store.Applications(),
	}, tokens, points)
	require.NoError(t, err)

	srv, err := server.New(config.New(), engine)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *server.Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestCurrentUser_NoTokenReturnsAnonymous(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/user/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decode(t, rec, &body)
	require.Equal(t, gamify.DefaultAnonymousID, body["id"])
	require.NotContains(t, rec.Body.String(), "password")
}

func TestCurrentUser_GarbageTokenFallsBack(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/user/current?session_token=bogus", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decode(t, rec, &body)
	require.Equal(t, gamify.DefaultAnonymousID, body["id"])
}

func TestLoginAndLogoutFlow(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/session/login", map[string]string{
		"user_id":  gamify.DefaultAnonymousID,
		"password": "default_password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login map[string]string
	decode(t, rec, &login)
	require.NotEmpty(t, login["session_token"])
	require.Equal(t, gamify.DefaultAnonymousID, login["user_id"])

	// The token resolves through the header.
	req := httptest.NewRequest(http.MethodGet, "/api/user/current", nil)
	req.Header.Set(server.SessionTokenHeader, login["session_token"])
	res := httptest.NewRecorder()
	srv.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/session?session_token="+login["session_token"], nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Logging out twice is still fine.
	rec = doJSON(t, srv, http.MethodDelete, "/api/session?session_token="+login["session_token"], nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/session/login", map[string]string{
		"user_id":  gamify.DefaultAnonymousID,
		"password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_InvalidBody(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/session/login", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAchievements_ListsFullCatalog(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/achievements", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Achievements []struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Icon     string `json:"icon"`
			Unlocked bool   `json:"unlocked"`
		} `json:"achievements"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Achievements, len(achievements.Catalog()))
	for _, a := range body.Achievements {
		require.False(t, a.Unlocked)
		require.NotEmpty(t, a.Title)
		require.NotEmpty(t, a.Icon)
	}
}

func TestTasks_CreateListComplete(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]string{
		"title":    "Write report",
		"priority": "high",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
	}
	decode(t, rec, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Write report", created.Title)
	require.Equal(t, "todo", created.Status)

	rec = doJSON(t, srv, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Tasks []struct {
			ID string `json:"id"`
		} `json:"tasks"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Tasks, 4) // three seeded defaults plus the new one

	rec = doJSON(t, srv, http.MethodPut, "/api/tasks/"+created.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var completion struct {
		PointsEarned   int  `json:"points_earned"`
		TotalCompleted int  `json:"total_completed"`
		Unlocked       bool `json:"achievement_unlocked"`
	}
	decode(t, rec, &completion)
	require.Equal(t, gamify.PointsTaskCompleted, completion.PointsEarned)
	require.Equal(t, 1, completion.TotalCompleted)
}

func TestTasks_CompleteUnknown(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/tasks/no-such-task/complete", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobApply_AwardsPoints(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/jobs/apply", map[string]string{
		"opportunity_id": "opp-1",
		"full_name":      "Jordan Tester",
		"email":          "jordan@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var app struct {
		Status string `json:"status"`
	}
	decode(t, rec, &app)
	require.Equal(t, "submitted", app.Status)

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		TotalApplications    int `json:"total_applications"`
		ProductivityScore    int `json:"productivity_score"`
		AchievementsUnlocked int `json:"achievements_unlocked"`
	}
	decode(t, rec, &stats)
	require.Equal(t, 1, stats.TotalApplications)
	require.Equal(t, gamify.PointsJobApplication+gamify.PointsAchievement, stats.ProductivityScore)
	require.Equal(t, 1, stats.AchievementsUnlocked)
}

func TestSavings_Update(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/savings", map[string]float64{
		"current_savings": 1250,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var u struct {
		CurrentSavings float64 `json:"current_savings"`
	}
	decode(t, rec, &u)
	require.Equal(t, 1250.0, u.CurrentSavings)
}

func TestPongScore_ReportsHighScore(t *testing.T) {
	srv := setupServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/game/pong-score", map[string]int{"score": 120})
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int
	decode(t, rec, &body)
	require.Equal(t, 120, body["pong_high_score"])

	rec = doJSON(t, srv, http.MethodPost, "/api/game/pong-score", map[string]int{"score": 60})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	require.Equal(t, 120, body["pong_high_score"])
}

func TestTerminalCommand_Counts(t *testing.T) {
	srv := setupServer(t)

	var body map[string]int
	for i := 1; i <= 3; i++ {
		rec := doJSON(t, srv, http.MethodPost, "/api/terminal/command", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &body)
		require.Equal(t, i, body["commands_executed"])
	}
}

func TestScoreHistory_NewestFirst(t *testing.T) {
	srv := setupServer(t)

	for _, title := range []string{"first", "second"} {
		rec := doJSON(t, srv, http.MethodPost, "/api/tasks", map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/score/history?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		History []struct {
			Action string `json:"action"`
			Points int    `json:"points"`
		} `json:"history"`
		ProductivityScore int `json:"productivity_score"`
	}
	decode(t, rec, &body)
	require.Len(t, body.History, 1)
	require.Equal(t, gamify.ActionTaskCreated, body.History[0].Action)
	require.Equal(t, gamify.PointsTaskCreated, body.History[0].Points)
	require.Equal(t, 2*gamify.PointsTaskCreated, body.ProductivityScore)
}

func TestCors_PreflightAllowsWildcard(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
