package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	repo := setupTestDB(t)

	alice, err := repo.CreateUser("Alice")
	require.NoError(t, err)
	assert.NotZero(t, alice.ID)
	assert.Equal(t, "Alice", alice.Name)

	// Second create with the same name must fail and leave a single row.
	_, err = repo.CreateUser("Alice")
	assert.ErrorIs(t, err, ErrUserExists)

	users, err := repo.GetUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestGetUserByName(t *testing.T) {
	repo := setupTestDB(t)

	created, err := repo.CreateUser("Bob")
	require.NoError(t, err)

	found, err := repo.GetUserByName("Bob")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// Case-sensitive exact match.
	_, err = repo.GetUserByName("bob")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Second lookup is served from cache and must agree with the first.
	cached, err := repo.GetUserByName("Bob")
	require.NoError(t, err)
	assert.Equal(t, found, cached)
}

func TestGetUsersEmptyStore(t *testing.T) {
	repo := setupTestDB(t)

	users, err := repo.GetUsers()
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestGetUsersOrdered(t *testing.T) {
	repo := setupTestDB(t)

	for _, name := range []string{"Zoe", "Adam", "Mia"} {
		_, err := repo.CreateUser(name)
		require.NoError(t, err)
	}

	users, err := repo.GetUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Zoe", users[0].Name)
	assert.Equal(t, "Adam", users[1].Name)
	assert.Equal(t, "Mia", users[2].Name)
}

func TestDeleteUserCascades(t *testing.T) {
	repo := setupTestDB(t)

	user, err := repo.CreateUser("Carol")
	require.NoError(t, err)
	other, err := repo.CreateUser("Dan")
	require.NoError(t, err)

	_, err = repo.AddMovie(user.ID, "Alien", 1979, 8.5, "")
	require.NoError(t, err)
	_, err = repo.AddMovie(user.ID, "Aliens", 1986, 8.4, "")
	require.NoError(t, err)
	_, err = repo.AddMovie(other.ID, "Alien", 1979, 8.5, "")
	require.NoError(t, err)

	moviesDeleted, err := repo.DeleteUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), moviesDeleted)

	_, err = repo.GetUserByName("Carol")
	assert.ErrorIs(t, err, ErrUserNotFound)

	list, err := repo.GetMovies(user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The other user's list is untouched.
	otherList, err := repo.GetMovies(other.ID)
	require.NoError(t, err)
	assert.Len(t, otherList, 1)
}

func TestDeleteUserNotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.DeleteUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
