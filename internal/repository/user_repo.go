package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"moviehub/internal/logging"
	"moviehub/internal/models"
)

// ErrUserExists is returned when trying to create a user that already exists.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned when a lookup or delete matches no user row.
var ErrUserNotFound = errors.New("user not found")

// GetUserByName retrieves a user by exact name, using a cache for performance.
// The match is case-sensitive.
func (s *Repository) GetUserByName(name string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_name_%s", name)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	logging.Log.Debugf("GetUserByName: CACHE MISS for '%s'. Querying DB.", name)
	query := "SELECT id, name FROM users WHERE name = ?"
	row := s.DB.QueryRow(query, name)

	var user models.User
	if err := row.Scan(&user.ID, &user.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.Cache.Set(cacheKey, &user, 5*time.Minute)
	s.Cache.Set(fmt.Sprintf("user_by_id_%d", user.ID), &user, 5*time.Minute)

	return &user, nil
}

// GetUserByID retrieves a user by their ID, using a cache for performance.
func (s *Repository) GetUserByID(id int64) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_id_%d", id)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	logging.Log.Debugf("GetUserByID: CACHE MISS for ID %d. Querying DB.", id)
	query := "SELECT id, name FROM users WHERE id = ?"
	row := s.DB.QueryRow(query, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.Cache.Set(cacheKey, &user, 5*time.Minute)
	s.Cache.Set(fmt.Sprintf("user_by_name_%s", user.Name), &user, 5*time.Minute)

	return &user, nil
}

// UserExists checks if a user with the given name exists.
func (s *Repository) UserExists(name string) (bool, error) {
	_, err := s.GetUserByName(name)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateUser creates a new user and returns it with the generated ID.
func (s *Repository) CreateUser(name string) (*models.User, error) {
	result, err := s.DB.Exec("INSERT INTO users (name) VALUES (?)", name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.name") {
			return nil, ErrUserExists
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	logging.Log.Debugf("CreateUser: User '%s' created with ID %d", name, id)
	return &models.User{ID: id, Name: name}, nil
}

// GetUsers retrieves all users ordered by ID. An empty store yields an empty
// slice, not an error.
func (s *Repository) GetUsers() ([]models.User, error) {
	rows, err := s.DB.Query("SELECT id, name FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// DeleteUser removes a user and every movie they own in one transaction.
// The movies go first so the users row never dangles references. It returns
// the number of movies removed alongside the user row.
func (s *Repository) DeleteUser(id int64) (int64, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return 0, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM movies WHERE user_id = ?", id)
	if err != nil {
		return 0, err
	}
	moviesDeleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	res, err = tx.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, err
	} else if n == 0 {
		return 0, ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	logging.Log.Debugf("DeleteUser: Invalidating cache for user '%s' (ID: %d)", user.Name, user.ID)
	s.Cache.Delete(fmt.Sprintf("user_by_name_%s", user.Name))
	s.Cache.Delete(fmt.Sprintf("user_by_id_%d", id))

	return moviesDeleted, nil
}
