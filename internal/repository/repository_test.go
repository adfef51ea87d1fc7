package repository

import (
	"path/filepath"
	"testing"

	"moviehub/internal/config"
	"moviehub/internal/db/migrations"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func applyTestMigrations(t *testing.T, repo *Repository) {
	t.Helper()
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(repo.DB, "."); err != nil {
		t.Fatalf("Failed to apply test migrations: %v", err)
	}
}

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Path: filepath.Join(t.TempDir(), "test_moviehub.db"),
		},
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		t.Fatalf("Failed to create new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	applyTestMigrations(t, repo)
	return repo
}

func TestNewRepository(t *testing.T) {
	repo := setupTestDB(t)

	tables := []string{"users", "movies"}
	for _, table := range tables {
		var name string
		err := repo.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table '%s' was not created: %v", table, err)
		}
	}
}

func TestEnsureSchemaBootstrappedIsIdempotent(t *testing.T) {
	repo := setupTestDB(t)

	// Seed a row, bootstrap again, and check the data survived.
	user, err := repo.CreateUser("Keeper")
	require.NoError(t, err)
	_, err = repo.AddMovie(user.ID, "Heat", 1995, 8.3, "")
	require.NoError(t, err)

	require.NoError(t, repo.EnsureSchemaBootstrapped())

	list, err := repo.GetMovies(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
