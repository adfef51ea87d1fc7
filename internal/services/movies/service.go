// Package movies holds the session-level movie logic that runs on top of the
// repository: statistics, random pick, search and the two sorted views.
package movies

import (
	"math/rand"
	"sort"
	"strings"

	"moviehub/internal/models"
	"moviehub/internal/repository"
)

// Service wraps the repository for per-user movie queries.
type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// ListForUser returns the user's movies keyed by title.
func (s *Service) ListForUser(userID int64) (map[string]models.Movie, error) {
	return s.repo.GetMovies(userID)
}

// Stats summarizes the ratings of one user's list. Best and Worst hold every
// title tied at the extreme rating.
type Stats struct {
	Average     float64
	Median      float64
	Best        []string
	Worst       []string
	BestRating  float64
	WorstRating float64
}

// ComputeStats derives rating statistics from a movie map. The second return
// is false for an empty list.
func ComputeStats(movies map[string]models.Movie) (Stats, bool) {
	if len(movies) == 0 {
		return Stats{}, false
	}

	ratings := make([]float64, 0, len(movies))
	for _, m := range movies {
		ratings = append(ratings, m.Rating)
	}
	sort.Float64s(ratings)

	var sum float64
	for _, r := range ratings {
		sum += r
	}

	n := len(ratings)
	var median float64
	if n%2 == 1 {
		median = ratings[n/2]
	} else {
		median = (ratings[n/2-1] + ratings[n/2]) / 2
	}

	stats := Stats{
		Average:     sum / float64(n),
		Median:      median,
		BestRating:  ratings[n-1],
		WorstRating: ratings[0],
	}

	for title, m := range movies {
		if m.Rating == stats.BestRating {
			stats.Best = append(stats.Best, title)
		}
		if m.Rating == stats.WorstRating {
			stats.Worst = append(stats.Worst, title)
		}
	}
	sort.Strings(stats.Best)
	sort.Strings(stats.Worst)

	return stats, true
}

// RandomPick returns a uniformly chosen movie. The second return is false for
// an empty list.
func RandomPick(movies map[string]models.Movie) (models.Movie, bool) {
	if len(movies) == 0 {
		return models.Movie{}, false
	}

	titles := make([]string, 0, len(movies))
	for title := range movies {
		titles = append(titles, title)
	}
	return movies[titles[rand.Intn(len(titles))]], true
}

// Search returns every movie whose title contains the query,
// case-insensitively, ordered by title.
func Search(movies map[string]models.Movie, query string) []models.Movie {
	query = strings.ToLower(query)

	found := make([]models.Movie, 0)
	for title, m := range movies {
		if strings.Contains(strings.ToLower(title), query) {
			found = append(found, m)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Title < found[j].Title })
	return found
}

// SortedByRating returns the movies ordered by rating, descending unless asc
// is set. Ties keep their relative order; there is no secondary key.
func SortedByRating(movies map[string]models.Movie, asc bool) []models.Movie {
	out := collect(movies)
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return out[i].Rating < out[j].Rating
		}
		return out[i].Rating > out[j].Rating
	})
	return out
}

// SortedByYear returns the movies ordered by year, descending unless asc is
// set. Ties keep their relative order; there is no secondary key.
func SortedByYear(movies map[string]models.Movie, asc bool) []models.Movie {
	out := collect(movies)
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return out[i].Year < out[j].Year
		}
		return out[i].Year > out[j].Year
	})
	return out
}

func collect(movies map[string]models.Movie) []models.Movie {
	out := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		out = append(out, m)
	}
	return out
}
