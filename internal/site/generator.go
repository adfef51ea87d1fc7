// Package site renders a user's movie list into a static HTML page by
// substituting two placeholder tokens in an HTML template.
package site

import (
	_ "embed"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"moviehub/internal/models"
)

const (
	titleToken = "__TEMPLATE_TITLE__"
	gridToken  = "__TEMPLATE_MOVIE_GRID__"
)

//go:embed index_template.html
var defaultTemplate string

// Generator writes the exported page. An empty TemplatePath selects the
// embedded default template.
type Generator struct {
	TemplatePath string
	OutputDir    string
}

func NewGenerator(templatePath, outputDir string) *Generator {
	return &Generator{TemplatePath: templatePath, OutputDir: outputDir}
}

// Generate renders userName's movies and writes <name>_movies.html into the
// output directory, returning the written path. Failures (missing override
// template, unwritable output) are returned for the caller to report; they
// must not terminate the session.
func (g *Generator) Generate(userName string, movies map[string]models.Movie) (string, error) {
	tmpl := defaultTemplate
	if g.TemplatePath != "" {
		raw, err := os.ReadFile(g.TemplatePath)
		if err != nil {
			return "", fmt.Errorf("failed to read template %s: %w", g.TemplatePath, err)
		}
		tmpl = string(raw)
	}

	page := strings.ReplaceAll(tmpl, titleToken, html.EscapeString(userName+"'s Movie App"))
	page = strings.ReplaceAll(page, gridToken, buildMovieGrid(movies))

	filename := strings.ReplaceAll(userName, " ", "_") + "_movies.html"
	outPath := filepath.Join(g.OutputDir, filename)
	if err := os.WriteFile(outPath, []byte(page), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return outPath, nil
}

// buildMovieGrid renders one <li> tile per movie, ordered by title so the
// exported page is stable across runs.
func buildMovieGrid(movies map[string]models.Movie) string {
	titles := make([]string, 0, len(movies))
	for title := range movies {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	var sb strings.Builder
	for _, title := range titles {
		m := movies[title]

		poster := ""
		if m.HasPoster() {
			poster = m.PosterURL
		}

		sb.WriteString("        <li>\n")
		sb.WriteString("            <div class=\"movie\">\n")
		fmt.Fprintf(&sb, "                <img class=\"movie-poster\" src=%q alt=\"%s - Rating: %.1f\">\n",
			poster, html.EscapeString(title), m.Rating)
		fmt.Fprintf(&sb, "                <div class=\"movie-title\">%s</div>\n", html.EscapeString(title))
		fmt.Fprintf(&sb, "                <div class=\"movie-year\">(%d)</div>\n", m.Year)
		sb.WriteString("            </div>\n")
		sb.WriteString("        </li>\n")
	}
	return sb.String()
}
