package jobs

import (
	"context"
	"time"
)

// Application records one job application a user submitted.
type Application struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	OpportunityID   string    `json:"opportunity_id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	CurrentLocation string    `json:"current_location"`
	Motivation      string    `json:"motivation"`
	Status          string    `json:"status"`
	SubmittedAt     time.Time `json:"submitted_date"`
}

// StatusSubmitted is the initial state of every stored application.
const StatusSubmitted = "submitted"

// Repo defines storage for job applications.
type Repo interface {
	Insert(ctx context.Context, a *Application) error
	CountByUser(ctx context.Context, userID string) (int, error)
	ListByUser(ctx context.Context, userID string) ([]*Application, error)
}
