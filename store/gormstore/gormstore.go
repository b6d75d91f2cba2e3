// Package gormstore implements the repository interfaces on a relational
// database through GORM: Postgres in deployments, SQLite in tests. Every
// atomicity contract is met with conditional UPDATEs or transactions rather
// than read-then-write sequences.
package gormstore

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thriveremote/thrive-server/achievements"
	"github.com/thriveremote/thrive-server/jobs"
	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/sessions"
	"github.com/thriveremote/thrive-server/tasks"
	"github.com/thriveremote/thrive-server/users"
)

type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "[gormstore.Open] gorm.Open")
	}
	return newStore(db)
}

// OpenSQLite opens a SQLite database (":memory:" for tests) and migrates the
// schema.
func OpenSQLite(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "[gormstore.OpenSQLite] gorm.Open")
	}
	return newStore(db)
}

func newStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&sessionModel{},
		&userModel{},
		&entryModel{},
		&achievementModel{},
		&taskModel{},
		&applicationModel{},
	); err != nil {
		return nil, errors.Wrap(err, "[gormstore.newStore] AutoMigrate")
	}
	return &Store{db: db}, nil
}

func (s *Store) Sessions() sessions.Repo { return sessionRepo{s.db} }

func (s *Store) Users() users.Repo { return userRepo{s.db} }

func (s *Store) Ledger() ledger.Repo { return ledgerRepo{s.db} }

func (s *Store) Achievements() achievements.Repo { return achievementRepo{s.db} }

func (s *Store) Tasks() tasks.Repo { return taskRepo{s.db} }

func (s *Store) Applications() jobs.Repo { return applicationRepo{s.db} }
