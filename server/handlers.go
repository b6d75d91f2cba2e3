package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/thriveremote/thrive-server/gamify"
	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/tasks"
	"github.com/thriveremote/thrive-server/users"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"

	// SessionTokenHeader is the header alternative to the session_token
	// query parameter.
	SessionTokenHeader = "X-Session-Token"
)

// sessionToken pulls the token from the query parameter, falling back to the
// header. Empty means anonymous.
func sessionToken(r *http.Request) string {
	if token := r.URL.Query().Get("session_token"); token != "" {
		return token
	}
	return r.Header.Get(SessionTokenHeader)
}

// resolveUser maps the request to a user record, creating it on first touch.
// Requests without a usable token land on the anonymous identity.
func (s *Server) resolveUser(r *http.Request) (*users.User, error) {
	ctx := r.Context()
	userID := s.engine.CurrentUser(ctx, sessionToken(r))
	u, _, err := s.engine.ResolveOrCreateUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode response body")
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps domain errors to status codes; anything unclassified is a
// logged 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tasks.ErrNotFound), errors.Is(err, gamify.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, gamify.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, ledger.ErrInvalidAction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		if s.env == "DEV" {
			logError(r.Method, r.URL.Path, err.Error())
		}
		log.Err(err).Str("path", r.URL.Path).Msg("Request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// PreflightHandler backs the OPTIONS routes. The CORS middleware answers
// preflight requests before this runs; it only sees same-origin OPTIONS.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// CurrentUserHandler returns the user the request's token resolves to,
// creating the record on first sight. Tokenless requests get the anonymous
// user, never an error.
func (s *Server) CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// LoginHandler exchanges credentials for a session token.
func (s *Server) LoginHandler() http.HandlerFunc {
	type loginRequest struct {
		UserID   string `json:"user_id"`
		Password string `json:"password"`
	}
	type loginResponse struct {
		SessionToken string `json:"session_token"`
		UserID       string `json:"user_id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !readJSON(w, r, &req) {
			return
		}
		token, err := s.engine.Login(r.Context(), req.UserID, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{SessionToken: token, UserID: req.UserID})
	}
}

// LogoutHandler invalidates the request's session token. Idempotent: an
// unknown or absent token still returns 200.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.engine.Logout(r.Context(), sessionToken(r)); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "session invalidated"})
	}
}
