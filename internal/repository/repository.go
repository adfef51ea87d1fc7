package repository

import (
	"database/sql"
	"time"

	"moviehub/internal/config"
	"moviehub/internal/db/migrations"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

// Repository provides access to the users and movies tables. It owns the
// database handle for the process lifetime; callers must Close it at shutdown.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType
}

// NewRepository opens the SQLite database configured in cfg.
func NewRepository(cfg *config.Config) (*Repository, error) {
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	// Single interactive session, single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{
		DB:      db,
		Cache:   cache.New(5*time.Minute, 10*time.Minute),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close releases the database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}

// EnsureSchemaBootstrapped applies any pending migrations. It is safe to call
// on every process start and never touches existing rows.
func (s *Repository) EnsureSchemaBootstrapped() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(s.DB, ".")
}
