package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/thriveremote/thrive-server/internal/utils"
	"github.com/thriveremote/thrive-server/jobs"
	"github.com/thriveremote/thrive-server/tasks"
)

var (
	_ tasks.Repo = taskRepo{}
	_ jobs.Repo  = applicationRepo{}
)

type taskRepo struct {
	s *Store
}

func (r taskRepo) Insert(_ context.Context, t *tasks.Task) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	clone := *t
	r.s.tasks[t.ID] = &clone
	return nil
}

func (r taskRepo) Get(_ context.Context, userID, taskID string) (*tasks.Task, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	t, ok := r.s.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, tasks.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r taskRepo) ListByUser(_ context.Context, userID string) ([]*tasks.Task, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	out := make([]*tasks.Task, 0)
	for _, t := range r.s.tasks {
		if t.UserID != userID {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r taskRepo) MarkCompleted(_ context.Context, userID, taskID string, now time.Time) (*tasks.Task, error) {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	t, ok := r.s.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, tasks.ErrNotFound
	}
	t.Status = tasks.StatusCompleted
	t.CompletedAt = utils.Ptr(now)
	clone := *t
	return &clone, nil
}

func (r taskRepo) CountByStatus(_ context.Context, userID, status string) (int, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	count := 0
	for _, t := range r.s.tasks {
		if t.UserID == userID && t.Status == status {
			count++
		}
	}
	return count, nil
}

type applicationRepo struct {
	s *Store
}

func (r applicationRepo) Insert(_ context.Context, a *jobs.Application) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	clone := *a
	r.s.applications[a.UserID] = append(r.s.applications[a.UserID], &clone)
	return nil
}

func (r applicationRepo) CountByUser(_ context.Context, userID string) (int, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	return len(r.s.applications[userID]), nil
}

func (r applicationRepo) ListByUser(_ context.Context, userID string) ([]*jobs.Application, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	out := make([]*jobs.Application, 0, len(r.s.applications[userID]))
	for _, a := range r.s.applications[userID] {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}
