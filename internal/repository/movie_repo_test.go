package repository

import (
	"testing"

	"moviehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, repo *Repository, name string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(name)
	require.NoError(t, err)
	return user
}

func TestAddMovieRoundTrip(t *testing.T) {
	repo := setupTestDB(t)
	user := createTestUser(t, repo, "Alice")

	added, err := repo.AddMovie(user.ID, "Inception", 2010, 8.8, "http://x/p.jpg")
	require.NoError(t, err)
	assert.NotZero(t, added.ID)

	list, err := repo.GetMovies(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	m, ok := list["Inception"]
	require.True(t, ok)
	assert.Equal(t, "Inception", m.Title)
	assert.Equal(t, 2010, m.Year)
	assert.Equal(t, 8.8, m.Rating)
	assert.Equal(t, "http://x/p.jpg", m.PosterURL)
	assert.Equal(t, user.ID, m.UserID)
}

func TestAddMovieDuplicateKeepsFirstRow(t *testing.T) {
	repo := setupTestDB(t)
	user := createTestUser(t, repo, "Alice")

	_, err := repo.AddMovie(user.ID, "Inception", 2010, 8.8, "")
	require.NoError(t, err)

	_, err = repo.AddMovie(user.ID, "Inception", 2010, 2.0, "")
	assert.ErrorIs(t, err, ErrMovieExists)

	list, err := repo.GetMovies(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 8.8, list["Inception"].Rating)
}

func TestAddMovieUserIsolation(t *testing.T) {
	repo := setupTestDB(t)
	alice := createTestUser(t, repo, "Alice")
	bob := createTestUser(t, repo, "Bob")

	_, err := repo.AddMovie(alice.ID, "Inception", 2010, 8.8, "")
	require.NoError(t, err)

	// The same title is fine on another user's list.
	_, err = repo.AddMovie(bob.ID, "Inception", 2010, 7.0, "")
	require.NoError(t, err)

	aliceList, err := repo.GetMovies(alice.ID)
	require.NoError(t, err)
	bobList, err := repo.GetMovies(bob.ID)
	require.NoError(t, err)

	assert.Equal(t, 8.8, aliceList["Inception"].Rating)
	assert.Equal(t, 7.0, bobList["Inception"].Rating)
}

func TestAddMovieWithoutPoster(t *testing.T) {
	repo := setupTestDB(t)
	user := createTestUser(t, repo, "Alice")

	_, err := repo.AddMovie(user.ID, "Stalker", 1979, 8.1, "")
	require.NoError(t, err)

	list, err := repo.GetMovies(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "", list["Stalker"].PosterURL)
}

func TestUpdateMovieRating(t *testing.T) {
	repo := setupTestDB(t)
	user := createTestUser(t, repo, "Alice")

	_, err := repo.AddMovie(user.ID, "Inception", 2010, 8.8, "")
	require.NoError(t, err)

	updated, err := repo.UpdateMovieRating(user.ID, "Inception", 9.0)
	require.NoError(t, err)
	assert.True(t, updated)

	list, err := repo.GetMovies(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, list["Inception"].Rating)

	// Absent row reports not-found, no error.
	updated, err = repo.UpdateMovieRating(user.ID, "Nope", 5.0)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestDeleteMovie(t *testing.T) {
	repo := setupTestDB(t)
	user := createTestUser(t, repo, "Alice")

	_, err := repo.AddMovie(user.ID, "Inception", 2010, 8.8, "")
	require.NoError(t, err)

	deleted, err := repo.DeleteMovie(user.ID, "Inception")
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting again reports not-found and leaves the table unchanged.
	deleted, err = repo.DeleteMovie(user.ID, "Inception")
	require.NoError(t, err)
	assert.False(t, deleted)

	list, err := repo.GetMovies(user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteMoviesByUser(t *testing.T) {
	repo := setupTestDB(t)
	alice := createTestUser(t, repo, "Alice")
	bob := createTestUser(t, repo, "Bob")

	for _, title := range []string{"Heat", "Ronin", "Thief"} {
		_, err := repo.AddMovie(alice.ID, title, 1995, 8.0, "")
		require.NoError(t, err)
	}
	_, err := repo.AddMovie(bob.ID, "Heat", 1995, 8.0, "")
	require.NoError(t, err)

	count, err := repo.DeleteMoviesByUser(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	bobList, err := repo.GetMovies(bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobList, 1)
}
