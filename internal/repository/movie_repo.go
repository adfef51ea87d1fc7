package repository

import (
	"database/sql"
	"errors"
	"strings"

	"moviehub/internal/logging"
	"moviehub/internal/models"

	"github.com/Masterminds/squirrel"
)

// ErrMovieExists is returned when a title is added twice to the same user's
// list. The existing row is left untouched.
var ErrMovieExists = errors.New("movie already exists")

// GetMovies retrieves all movies owned by one user, keyed by title. The
// result carries no meaningful order; callers needing order sort explicitly.
func (s *Repository) GetMovies(userID int64) (map[string]models.Movie, error) {
	query := s.Builder.
		Select("id", "title", "year", "rating", "poster_url").
		From("movies").
		Where(squirrel.Eq{"user_id": userID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make(map[string]models.Movie)
	for rows.Next() {
		var m models.Movie
		var poster sql.NullString
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Rating, &poster); err != nil {
			return nil, err
		}
		m.PosterURL = poster.String
		m.UserID = userID
		movies[m.Title] = m
	}

	return movies, rows.Err()
}

// AddMovie inserts a new movie into a user's list and returns it with the
// generated ID. A duplicate title within the same user's list yields
// ErrMovieExists; another user's identical title is unaffected.
func (s *Repository) AddMovie(userID int64, title string, year int, rating float64, posterURL string) (*models.Movie, error) {
	var poster interface{}
	if posterURL != "" {
		poster = posterURL
	}

	query := "INSERT INTO movies (title, year, rating, poster_url, user_id) VALUES (?, ?, ?, ?, ?)"
	result, err := s.DB.Exec(query, title, year, rating, poster, userID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: movies.title, movies.user_id") {
			return nil, ErrMovieExists
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	logging.Log.Debugf("AddMovie: '%s' (%d) added for user %d with ID %d", title, year, userID, id)
	return &models.Movie{
		ID:        id,
		Title:     title,
		Year:      year,
		Rating:    rating,
		PosterURL: posterURL,
		UserID:    userID,
	}, nil
}

// UpdateMovieRating sets a new rating on one movie in a user's list. It
// reports false when no matching row exists.
func (s *Repository) UpdateMovieRating(userID int64, title string, rating float64) (bool, error) {
	query := "UPDATE movies SET rating = ? WHERE title = ? AND user_id = ?"
	result, err := s.DB.Exec(query, rating, title, userID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteMovie removes one movie from a user's list. It reports false when no
// matching row exists.
func (s *Repository) DeleteMovie(userID int64, title string) (bool, error) {
	query := "DELETE FROM movies WHERE title = ? AND user_id = ?"
	result, err := s.DB.Exec(query, title, userID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteMoviesByUser removes every movie owned by a user and returns the
// count. Used during account deletion, before the user row itself goes.
func (s *Repository) DeleteMoviesByUser(userID int64) (int64, error) {
	query := s.Builder.Delete("movies").Where(squirrel.Eq{"user_id": userID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	result, err := s.DB.Exec(sqlQuery, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
