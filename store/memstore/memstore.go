// Package memstore is an in-memory implementation of every repository
// interface, backed by maps under one lock. It is the default backend in demo
// mode and the fixture backend in tests; the shared lock gives every repo
// method the atomicity its contract requires.
package memstore

import (
	"sync"

	"github.com/thriveremote/thrive-server/achievements"
	"github.com/thriveremote/thrive-server/jobs"
	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/sessions"
	"github.com/thriveremote/thrive-server/tasks"
	"github.com/thriveremote/thrive-server/users"
)

// Store holds every collection behind one RWMutex. Individual repositories
// are exposed as views sharing the lock, so cross-collection operations (a
// ledger append that also moves the cached user score) stay atomic.
type Store struct {
	lock         sync.RWMutex
	sessions     map[string]*sessions.Session
	users        map[string]*users.User
	entries      map[string][]*ledger.Entry                // userID -> append order
	achievements map[string]map[string]*achievements.State // userID -> achievementID
	tasks        map[string]*tasks.Task                    // taskID
	applications map[string][]*jobs.Application            // userID
}

func New() *Store {
	return &Store{
		sessions:     make(map[string]*sessions.Session),
		users:        make(map[string]*users.User),
		entries:      make(map[string][]*ledger.Entry),
		achievements: make(map[string]map[string]*achievements.State),
		tasks:        make(map[string]*tasks.Task),
		applications: make(map[string][]*jobs.Application),
	}
}

func (s *Store) Sessions() sessions.Repo { return sessionRepo{s} }

func (s *Store) Users() users.Repo { return userRepo{s} }

func (s *Store) Ledger() ledger.Repo { return ledgerRepo{s} }

func (s *Store) Achievements() achievements.Repo { return achievementRepo{s} }

func (s *Store) Tasks() tasks.Repo { return taskRepo{s} }

func (s *Store) Applications() jobs.Repo { return applicationRepo{s} }
