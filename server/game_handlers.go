package server

import "net/http"

// PongScoreHandler reports a Pong game result. The stored high score is a
// monotonic max.
func (s *Server) PongScoreHandler() http.HandlerFunc {
	type scoreRequest struct {
		Score int `json:"score"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if !readJSON(w, r, &req) {
			return
		}
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		high, err := s.engine.ReportGameScore(r.Context(), u.ID, req.Score)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"pong_high_score": high})
	}
}

// TerminalCommandHandler counts one executed terminal command.
func (s *Server) TerminalCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		count, err := s.engine.ReportCommand(r.Context(), u.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"commands_executed": count})
	}
}

// EasterEggHandler counts one discovered easter egg.
func (s *Server) EasterEggHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		count, err := s.engine.ReportEasterEgg(r.Context(), u.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"easter_eggs_found": count})
	}
}
