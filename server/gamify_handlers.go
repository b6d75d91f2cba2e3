package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/thriveremote/thrive-server/achievements"
)

// achievementView joins a catalog definition with the user's unlock state for
// the wire format.
type achievementView struct {
	ID          string     `json:"id"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockDate  *time.Time `json:"unlock_date,omitempty"`
}

// AchievementsHandler lists the user's achievements, unlocked first, then in
// catalog order.
func (s *Server) AchievementsHandler() http.HandlerFunc {
	defs := make(map[string]achievements.Definition)
	for _, def := range achievements.Catalog() {
		defs[def.ID] = def
	}

	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		states, err := s.engine.ListAchievements(r.Context(), u.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		views := make([]achievementView, 0, len(states))
		for _, state := range states {
			def := defs[state.AchievementID]
			views = append(views, achievementView{
				ID:          state.AchievementID,
				Category:    def.Category,
				Title:       def.Title,
				Description: def.Description,
				Icon:        def.Icon,
				Unlocked:    state.Unlocked,
				UnlockDate:  state.UnlockDate,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"achievements": views})
	}
}

// DashboardStatsHandler returns the aggregate dashboard view.
func (s *Server) DashboardStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		stats, err := s.engine.Stats(r.Context(), u.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// ScoreHistoryHandler returns recent ledger entries, newest first. The limit
// query parameter caps the page, defaulting to 50.
func (s *Server) ScoreHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		entries, err := s.engine.History(r.Context(), u.ID, limit)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"history":            entries,
			"productivity_score": u.ProductivityScore,
		})
	}
}
