package server

import (
	"net/http"

	"github.com/thriveremote/thrive-server/gamify"
)

// ListTasksHandler returns the user's tasks, newest first.
func (s *Server) ListTasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		list, err := s.engine.ListTasks(r.Context(), u.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tasks": list})
	}
}

// CreateTaskHandler stores a new task and awards the creation points.
func (s *Server) CreateTaskHandler() http.HandlerFunc {
	type createTaskRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		Category    string `json:"category"`
		DueDate     string `json:"due_date"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req createTaskRequest
		if !readJSON(w, r, &req) {
			return
		}
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		t, err := s.engine.CreateTask(r.Context(), u.ID, gamify.TaskInput{
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			Category:    req.Category,
			DueDate:     req.DueDate,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

// CompleteTaskHandler marks the task completed and reports points and any
// unlock that resulted.
func (s *Server) CompleteTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		result, err := s.engine.CompleteTask(r.Context(), u.ID, r.PathValue("id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// JobApplyHandler stores a job application and awards the application points.
func (s *Server) JobApplyHandler() http.HandlerFunc {
	type applyRequest struct {
		OpportunityID   string `json:"opportunity_id"`
		FullName        string `json:"full_name"`
		Email           string `json:"email"`
		CurrentLocation string `json:"current_location"`
		Motivation      string `json:"motivation"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req applyRequest
		if !readJSON(w, r, &req) {
			return
		}
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		a, err := s.engine.ApplyToJob(r.Context(), u.ID, gamify.ApplicationInput{
			OpportunityID:   req.OpportunityID,
			FullName:        req.FullName,
			Email:           req.Email,
			CurrentLocation: req.CurrentLocation,
			Motivation:      req.Motivation,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// SavingsHandler sets the user's current savings.
func (s *Server) SavingsHandler() http.HandlerFunc {
	type savingsRequest struct {
		CurrentSavings float64 `json:"current_savings"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req savingsRequest
		if !readJSON(w, r, &req) {
			return
		}
		u, err := s.resolveUser(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		updated, err := s.engine.UpdateSavings(r.Context(), u.ID, req.CurrentSavings)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
