package models

// User is an account owning an independent movie list.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie is a single film in one user's list. Title is unique within the
// owning user's scope, not globally.
type Movie struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Rating    float64 `json:"rating"`
	PosterURL string  `json:"poster_url,omitempty"`
	UserID    int64   `json:"user_id"`
}

// HasPoster reports whether the movie carries a usable poster reference.
// OMDb returns the literal string "N/A" when no poster exists.
func (m Movie) HasPoster() bool {
	return m.PosterURL != "" && m.PosterURL != "N/A"
}
