package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"moviehub/internal/logging"
	"moviehub/internal/models"
	"moviehub/internal/omdb"
	"moviehub/internal/repository"
	"moviehub/internal/services/movies"
	"moviehub/internal/site"
)

// session drives the interactive menu over the repositories. One session
// serves one terminal at a time.
type session struct {
	prompter
	repo    *repository.Repository
	svc     *movies.Service
	fetcher *omdb.Client // nil when no API key is configured
	gen     *site.Generator
}

func newSession(repo *repository.Repository, svc *movies.Service, fetcher *omdb.Client, gen *site.Generator, in io.Reader, out io.Writer) *session {
	return &session{
		prompter: prompter{in: bufio.NewReader(in), out: out},
		repo:     repo,
		svc:      svc,
		fetcher:  fetcher,
		gen:      gen,
	}
}

// run is the outer loop: pick a user, serve their menu, repeat on switch.
// Closing stdin ends the session cleanly.
func (s *session) run() error {
	fmt.Fprintln(s.out, "********** My Movies Database **********")

	for {
		user, err := s.selectUser()
		if err != nil {
			return exitErr(err)
		}

		switchUser, err := s.runUserMenu(user)
		if err != nil {
			return exitErr(err)
		}
		if !switchUser {
			return nil
		}
	}
}

func exitErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// selectUser shows existing users, allows creating a new one, and returns
// the chosen account.
func (s *session) selectUser() (*models.User, error) {
	for {
		users, err := s.repo.GetUsers()
		if err != nil {
			return nil, err
		}

		fmt.Fprintln(s.out, "\nSelect a user:")
		for i, u := range users {
			fmt.Fprintf(s.out, "%d. %s\n", i+1, u.Name)
		}
		createOption := len(users) + 1
		fmt.Fprintf(s.out, "%d. Create new user\n", createOption)

		line, err := s.readLine()
		if err != nil {
			return nil, err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || choice < 1 || choice > createOption {
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
			continue
		}

		if choice <= len(users) {
			user := users[choice-1]
			fmt.Fprintf(s.out, "\nWelcome back, %s!\n", user.Name)
			return &user, nil
		}

		name, err := s.nonEmpty("Enter new username: ")
		if err != nil {
			return nil, err
		}
		user, err := s.repo.CreateUser(name)
		if err != nil {
			if errors.Is(err, repository.ErrUserExists) {
				fmt.Fprintf(s.out, "User '%s' already exists. Please choose another name.\n", name)
				continue
			}
			return nil, err
		}
		fmt.Fprintf(s.out, "User '%s' created!\n", name)
		return user, nil
	}
}

func (s *session) printMenu(userName string) {
	fmt.Fprintf(s.out, "\n--- Active User: %s ---\n", userName)
	fmt.Fprintln(s.out, "Menu:")
	fmt.Fprintln(s.out, "0. Exit")
	fmt.Fprintln(s.out, "1. List movies")
	fmt.Fprintln(s.out, "2. Add movie")
	fmt.Fprintln(s.out, "3. Delete movie")
	fmt.Fprintln(s.out, "4. Update movie")
	fmt.Fprintln(s.out, "5. Stats")
	fmt.Fprintln(s.out, "6. Random movie")
	fmt.Fprintln(s.out, "7. Search movie")
	fmt.Fprintln(s.out, "8. Movies sorted by rating")
	fmt.Fprintln(s.out, "9. Movies sorted by year")
	fmt.Fprintln(s.out, "10. Generate website")
	fmt.Fprintln(s.out, "11. Switch user")
	fmt.Fprintln(s.out, "12. Delete user")
}

// runUserMenu serves one user's menu until exit, switch or account deletion.
// It returns true when control should go back to user selection.
func (s *session) runUserMenu(user *models.User) (bool, error) {
	for {
		s.printMenu(user.Name)
		fmt.Fprint(s.out, "Enter choice (0-12): ")
		choice, err := s.readLine()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out)

		switch strings.TrimSpace(choice) {
		case "0":
			fmt.Fprintf(s.out, "Bye, %s!\n", user.Name)
			return false, nil
		case "11":
			fmt.Fprintf(s.out, "Switching user from %s...\n", user.Name)
			return true, nil
		case "12":
			deleted, err := s.deleteActiveUser(user)
			if err != nil {
				return false, err
			}
			if deleted {
				return true, nil
			}
		default:
			// A failed action is reported and the menu continues; only
			// input stream errors end the session.
			if err := s.dispatch(choice, user); err != nil {
				if errors.Is(err, io.EOF) {
					return false, err
				}
				logging.Log.Errorf("Menu action %q failed: %v", choice, err)
				fmt.Fprintf(s.out, "Oops! Something went wrong: %v\n", err)
			}
		}

		fmt.Fprintln(s.out)
		if err := s.waitForEnter(); err != nil {
			return false, err
		}
	}
}

func (s *session) dispatch(choice string, user *models.User) error {
	switch strings.TrimSpace(choice) {
	case "1":
		return s.listMovies(user)
	case "2":
		return s.addMovie(user)
	case "3":
		return s.deleteMovie(user)
	case "4":
		return s.updateMovie(user)
	case "5":
		return s.stats(user)
	case "6":
		return s.randomMovie(user)
	case "7":
		return s.searchMovies(user)
	case "8":
		return s.sortedByRating(user)
	case "9":
		return s.sortedByYear(user)
	case "10":
		return s.generateWebsite(user)
	default:
		fmt.Fprintln(s.out, "Invalid choice. Please enter a number from 0-12.")
		return nil
	}
}

func (s *session) printMovie(m models.Movie) {
	fmt.Fprintf(s.out, "%s (%d): %.1f\n", m.Title, m.Year, m.Rating)
}

func (s *session) listMovies(user *models.User) error {
	list, err := s.svc.ListForUser(user.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No movies in the database.")
		return nil
	}

	fmt.Fprintf(s.out, "%d movies in total\n", len(list))
	for _, m := range movies.SortedByRating(list, false) {
		s.printMovie(m)
		if m.HasPoster() {
			fmt.Fprintf(s.out, "   Poster: %s\n", m.PosterURL)
		}
	}
	return nil
}

func (s *session) addMovie(user *models.User) error {
	title, err := s.nonEmpty("Enter movie name: ")
	if err != nil {
		return err
	}

	list, err := s.svc.ListForUser(user.ID)
	if err != nil {
		return err
	}
	if _, exists := list[title]; exists {
		fmt.Fprintf(s.out, "Movie %s already exists!\n", title)
		return nil
	}

	var added *models.Movie
	if s.fetcher != nil {
		fmt.Fprintf(s.out, "Searching OMDb for '%s'...\n", title)
		data, err := s.fetcher.Fetch(title)
		if errors.Is(err, omdb.ErrNotFound) {
			fmt.Fprintf(s.out, "Movie '%s' not found in OMDb. Please try another title.\n", title)
			return nil
		}
		if err != nil {
			// Connectivity problems abort only this add.
			logging.Log.Warnf("OMDb fetch for %q failed: %v", title, err)
			fmt.Fprintln(s.out, "Error: Could not reach the OMDb API. Please check your internet connection.")
			return nil
		}
		added, err = s.repo.AddMovie(user.ID, data.Title, data.Year, data.Rating, data.PosterURL)
		if errors.Is(err, repository.ErrMovieExists) {
			fmt.Fprintf(s.out, "Movie %s already exists!\n", data.Title)
			return nil
		}
		if err != nil {
			return err
		}
	} else {
		rating, err := s.float("Enter rating (1-10): ")
		if err != nil {
			return err
		}
		year, err := s.integer("Enter the year: ")
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, "Enter poster URL (optional): ")
		poster, err := s.readLine()
		if err != nil {
			return err
		}
		added, err = s.repo.AddMovie(user.ID, title, year, rating, strings.TrimSpace(poster))
		if errors.Is(err, repository.ErrMovieExists) {
			fmt.Fprintf(s.out, "Movie %s already exists!\n", title)
			return nil
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(s.out, "Movie %s successfully added\n", added.Title)
	return nil
}

func (s *session) deleteMovie(user *models.User) error {
	title, err := s.nonEmpty("Enter movie name to delete: ")
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteMovie(user.ID, title)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(s.out, "Movie %s successfully deleted\n", title)
	} else {
		fmt.Fprintf(s.out, "Movie %s doesn't exist\n", title)
	}
	return nil
}

func (s *session) updateMovie(user *models.User) error {
	title, err := s.nonEmpty("Enter movie name: ")
	if err != nil {
		return err
	}

	rating, err := s.float("Enter new movie rating (1-10): ")
	if err != nil {
		return err
	}

	updated, err := s.repo.UpdateMovieRating(user.ID, title, rating)
	if err != nil {
		return err
	}
	if updated {
		fmt.Fprintf(s.out, "Movie %s successfully updated\n", title)
	} else {
		fmt.Fprintf(s.out, "Movie %s doesn't exist\n", title)
	}
	return nil
}

func (s *session) stats(user *models.User) error {
	list, err := s.svc.ListForUser(user.ID)
	if err != nil {
		return err
	}

	stats, ok := movies.ComputeStats(list)
	if !ok {
		fmt.Fprintln(s.out, "No movies in the database.")
		return nil
	}

	fmt.Fprintf(s.out, "Average rating: %.1f\n", stats.Average)
	fmt.Fprintf(s.out, "Median rating: %.1f\n", stats.Median)
	fmt.Fprintf(s.out, "Best movie(s) (%.1f): %s\n", stats.BestRating, strings.Join(stats.Best, ", "))
	fmt.Fprintf(s.out, "Worst movie(s) (%.1f): %s\n", stats.WorstRating, strings.Join(stats.Worst, ", "))
	return nil
}

func (s *session) randomMovie(user *models.User) error {
	list, err := s.svc.ListForUser(user.ID)
	if err != nil {
		return err
	}

	m, ok := movies.RandomPick(list)
	if !ok {
		fmt.Fprintln(s.out, "No movies in the database.")
		return nil
	}

	fmt.Fprintf(s.out, "Your movie for tonight: %s (%d), rated %.1f\n", m.Title, m.Year, m.Rating)
	return nil
}

func (s *session) searchMovies(user *models.User) error {
	list, err := s.svc.ListForUser(user.ID)
	if err != nil {
		return err
	}

	query, err := s.nonEmpty("Enter part of the movie name: ")
	if err != nil {
		return err
	}

	found := movies.Search(list, query)
	if len(found) == 0 {
		fmt.Fprintln(s.out, "No matching movies found.")
		return nil
	}
	for _, m := range found {
		s.printMovie(m)
	}
	return nil
}

func (s *session) sortedByRating(user *models.User) error {
	list, err := s.svc.ListForUser(user.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No movies in the database to sort.")
		return nil
	}

	fmt.Fprintln(s.out, "Movies sorted by rating (highest to lowest):")
	for _, m := range movies.SortedByRating(list, false) {
		s.printMovie(m)
	}
	return nil
}

func (s *session) sortedByYear(user *models.User) error {
	list, err := s.svc.ListForUser(user.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No movies in the database to sort.")
		return nil
	}

	latestFirst, err := s.yesNo("Show latest movies first? (y/n): ")
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Movies sorted by year:")
	for _, m := range movies.SortedByYear(list, !latestFirst) {
		s.printMovie(m)
	}
	return nil
}

func (s *session) generateWebsite(user *models.User) error {
	list, err := s.svc.ListForUser(user.ID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "Cannot generate website: your movie list is empty.")
		return nil
	}

	path, err := s.gen.Generate(user.Name, list)
	if err != nil {
		// Missing template or unwritable output aborts only this action.
		logging.Log.Warnf("Website generation for %q failed: %v", user.Name, err)
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return nil
	}

	fmt.Fprintf(s.out, "Website was successfully generated to %s.\n", path)
	return nil
}

// deleteActiveUser removes the signed-in account and all owned movies after
// a typed confirmation. It reports whether the deletion happened.
func (s *session) deleteActiveUser(user *models.User) (bool, error) {
	fmt.Fprintf(s.out, "WARNING: You are about to delete user '%s' and ALL their movies.\n", user.Name)
	fmt.Fprint(s.out, "Type 'DELETE' to confirm this action: ")
	confirmation, err := s.readLine()
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(confirmation) != "DELETE" {
		fmt.Fprintln(s.out, "User deletion cancelled.")
		return false, nil
	}

	moviesDeleted, err := s.repo.DeleteUser(user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			fmt.Fprintf(s.out, "Error: Could not delete user '%s'.\n", user.Name)
			return false, nil
		}
		return false, err
	}

	fmt.Fprintf(s.out, "User '%s' and %d movie(s) successfully deleted.\n", user.Name, moviesDeleted)
	return true, nil
}
