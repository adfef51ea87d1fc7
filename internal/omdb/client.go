// Package omdb is a minimal client for the OMDb movie metadata API
// (http://www.omdbapi.com/). Only title lookup is supported.
package omdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when OMDb knows no movie under the given title.
// Transport failures are returned as ordinary errors and are distinguishable
// from ErrNotFound via errors.Is.
var ErrNotFound = errors.New("movie not found")

// Result holds the canonical movie fields supplied by OMDb.
type Result struct {
	Title     string
	Year      int
	Rating    float64
	PosterURL string
}

// Client talks to OMDb over HTTP with a bounded timeout.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewClient builds a client. timeout bounds every Fetch call end to end.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// omdbResponse mirrors the subset of the OMDb JSON payload we consume.
type omdbResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	ImdbRating string `json:"imdbRating"`
	Poster     string `json:"Poster"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Fetch looks up a movie by title.
func (c *Client) Fetch(title string) (*Result, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid OMDb base URL: %w", err)
	}
	q := u.Query()
	q.Set("apikey", c.APIKey)
	q.Set("t", title)
	u.RawQuery = q.Encode()

	resp, err := c.HTTP.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("omdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb returned status %d", resp.StatusCode)
	}

	var payload omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("omdb response decode failed: %w", err)
	}

	// OMDb signals "no such title" inside a 200 response.
	if payload.Response == "False" {
		return nil, ErrNotFound
	}

	return &Result{
		Title:     payload.Title,
		Year:      parseYear(payload.Year),
		Rating:    parseRating(payload.ImdbRating),
		PosterURL: payload.Poster,
	}, nil
}

// parseYear extracts the leading year from OMDb's Year field, which is not
// necessarily a plain number (series report ranges like "2008-2013").
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return year
}

// parseRating converts OMDb's imdbRating string; "N/A" and garbage map to 0.
func parseRating(s string) float64 {
	rating, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return rating
}
