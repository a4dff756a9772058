package store

import (
	"context"

	"github.com/gocql/gocql"

	"cinefil_back_end/internal/database"
	"cinefil_back_end/internal/models"
)

// RatingStore gère les notes. L'unicité par (user_id, movie_id) est
// garantie par la clé primaire : un INSERT Scylla est un upsert atomique,
// noter deux fois le même film écrase la ligne, jamais de doublon même
// sous soumissions concurrentes.
type RatingStore struct {
	Session func() (*gocql.Session, error)
	Retry   RetryPolicy
}

func NewRatingStore() *RatingStore {
	return &RatingStore{
		Session: database.GetMoviesSession,
		Retry:   DefaultRetryPolicy(),
	}
}

// Upsert écrit la note dans ratings_by_user et son miroir ratings_by_movie.
func (s *RatingStore) Upsert(ctx context.Context, rating models.Rating) error {
	session, err := s.Session()
	if err != nil {
		return err
	}

	err = s.Retry.Do(func() error {
		return session.Query(`INSERT INTO ratings_by_user (user_id, movie_id, score, created_at)
			VALUES (?, ?, ?, ?)`,
			rating.UserID, rating.MovieID, rating.Score, rating.CreatedAt).
			WithContext(ctx).Exec()
	})
	if err != nil {
		return err
	}

	return s.Retry.Do(func() error {
		return session.Query(`INSERT INTO ratings_by_movie (movie_id, user_id, score, created_at)
			VALUES (?, ?, ?, ?)`,
			rating.MovieID, rating.UserID, rating.Score, rating.CreatedAt).
			WithContext(ctx).Exec()
	})
}

// ByUser retourne les notes d'un utilisateur dans l'ordre de clustering.
func (s *RatingStore) ByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	session, err := s.Session()
	if err != nil {
		return nil, err
	}

	var ratings []models.Rating
	err = s.Retry.Do(func() error {
		ratings = ratings[:0]
		scanner := session.Query(`SELECT user_id, movie_id, score, created_at
			FROM ratings_by_user WHERE user_id = ?`, userID).
			WithContext(ctx).Iter().Scanner()
		for scanner.Next() {
			var r models.Rating
			if err := scanner.Scan(&r.UserID, &r.MovieID, &r.Score, &r.CreatedAt); err != nil {
				return err
			}
			ratings = append(ratings, r)
		}
		return scanner.Err()
	})
	return ratings, err
}

// All retourne toutes les notes du système (entrée du collaboratif).
func (s *RatingStore) All(ctx context.Context) ([]models.Rating, error) {
	session, err := s.Session()
	if err != nil {
		return nil, err
	}

	var ratings []models.Rating
	err = s.Retry.Do(func() error {
		ratings = ratings[:0]
		scanner := session.Query(`SELECT user_id, movie_id, score, created_at
			FROM ratings_by_user`).
			WithContext(ctx).Iter().Scanner()
		for scanner.Next() {
			var r models.Rating
			if err := scanner.Scan(&r.UserID, &r.MovieID, &r.Score, &r.CreatedAt); err != nil {
				return err
			}
			ratings = append(ratings, r)
		}
		return scanner.Err()
	})
	return ratings, err
}
