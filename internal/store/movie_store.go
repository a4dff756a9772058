package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"cinefil_back_end/internal/database"
	"cinefil_back_end/internal/models"
)

// ErrNotFound : aucune ligne pour la clé demandée.
var ErrNotFound = errors.New("introuvable")

// MovieStore porte toutes les lectures/écritures du catalogue.
// La session est résolue à chaque appel (le manager la recrée si besoin)
// et chaque opération passe par la politique de retry injectée.
type MovieStore struct {
	Session func() (*gocql.Session, error)
	Retry   RetryPolicy
}

func NewMovieStore() *MovieStore {
	return &MovieStore{
		Session: database.GetMoviesSession,
		Retry:   DefaultRetryPolicy(),
	}
}

const movieColumns = `movie_id, title, genre, description, release_date, year,
	poster_url, director, imdb_rating, runtime, language, country, created_at`

func scanMovie(scanner gocql.Scanner) (models.Movie, error) {
	var m models.Movie
	var releaseDate time.Time
	err := scanner.Scan(&m.ID, &m.Title, &m.Genre, &m.Description, &releaseDate, &m.Year,
		&m.PosterURL, &m.Director, &m.ImdbRating, &m.Runtime, &m.Language, &m.Country, &m.CreatedAt)
	if err != nil {
		return m, err
	}
	if !releaseDate.IsZero() {
		m.ReleaseDate = &releaseDate
	}
	return m, nil
}

// All retourne le catalogue complet dans l'ordre de scan de la table.
func (s *MovieStore) All(ctx context.Context) ([]models.Movie, error) {
	session, err := s.Session()
	if err != nil {
		return nil, err
	}

	var movies []models.Movie
	err = s.Retry.Do(func() error {
		movies = movies[:0]
		scanner := session.Query("SELECT "+movieColumns+" FROM movies").
			WithContext(ctx).Iter().Scanner()
		for scanner.Next() {
			m, err := scanMovie(scanner)
			if err != nil {
				return err
			}
			movies = append(movies, m)
		}
		return scanner.Err()
	})
	return movies, err
}

// Count retourne le nombre de films du catalogue.
func (s *MovieStore) Count(ctx context.Context) (int, error) {
	session, err := s.Session()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.Retry.Do(func() error {
		return session.Query("SELECT COUNT(*) FROM movies").
			WithContext(ctx).Scan(&count)
	})
	return count, err
}

// ByID retourne un film par identifiant, ErrNotFound sinon.
func (s *MovieStore) ByID(ctx context.Context, id gocql.UUID) (models.Movie, error) {
	session, err := s.Session()
	if err != nil {
		return models.Movie{}, err
	}

	var movie models.Movie
	err = s.Retry.Do(func() error {
		scanner := session.Query("SELECT "+movieColumns+" FROM movies WHERE movie_id = ?", id).
			WithContext(ctx).Iter().Scanner()
		if !scanner.Next() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return ErrNotFound
		}
		m, err := scanMovie(scanner)
		if err != nil {
			return err
		}
		movie = m
		return scanner.Err()
	})
	return movie, err
}

// ByTitle retourne un film par titre exact (insensible à la casse),
// via la table de correspondance movies_by_title.
func (s *MovieStore) ByTitle(ctx context.Context, title string) (models.Movie, error) {
	session, err := s.Session()
	if err != nil {
		return models.Movie{}, err
	}

	var movieID gocql.UUID
	err = s.Retry.Do(func() error {
		return session.Query("SELECT movie_id FROM movies_by_title WHERE title_lower = ?",
			strings.ToLower(strings.TrimSpace(title))).
			WithContext(ctx).Scan(&movieID)
	})
	if errors.Is(err, gocql.ErrNotFound) {
		return models.Movie{}, ErrNotFound
	}
	if err != nil {
		return models.Movie{}, err
	}
	return s.ByID(ctx, movieID)
}

// Insert écrit le film dans movies et dans la table de correspondance par
// titre (double écriture, pattern table-par-requête).
func (s *MovieStore) Insert(ctx context.Context, movie models.Movie) error {
	session, err := s.Session()
	if err != nil {
		return err
	}

	var releaseDate time.Time
	if movie.ReleaseDate != nil {
		releaseDate = *movie.ReleaseDate
	}

	err = s.Retry.Do(func() error {
		return session.Query(`INSERT INTO movies (`+movieColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			movie.ID, movie.Title, movie.Genre, movie.Description, releaseDate, movie.Year,
			movie.PosterURL, movie.Director, movie.ImdbRating, movie.Runtime,
			movie.Language, movie.Country, movie.CreatedAt).
			WithContext(ctx).Exec()
	})
	if err != nil {
		return err
	}

	return s.Retry.Do(func() error {
		return session.Query(`INSERT INTO movies_by_title (title_lower, movie_id, title)
			VALUES (?, ?, ?)`,
			strings.ToLower(strings.TrimSpace(movie.Title)), movie.ID, movie.Title).
			WithContext(ctx).Exec()
	})
}

// NewMovieID génère l'identifiant d'un nouveau film.
func NewMovieID() gocql.UUID {
	return gocql.UUID(uuid.New())
}
