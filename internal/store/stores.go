package store

import (
	"context"

	"cinefil_back_end/internal/models"
)

// Stores regroupe les contrats de lecture/écriture persistants.
// Le moteur de recommandation ne voit jamais ScyllaDB : il consomme
// les sorties de ces contrats.
type Stores struct {
	Movies  *MovieStore
	Ratings *RatingStore
	Users   *UserStore
}

func New() *Stores {
	return &Stores{
		Movies:  NewMovieStore(),
		Ratings: NewRatingStore(),
		Users:   NewUserStore(),
	}
}

// RatedMoviesByUser joint les notes d'un utilisateur avec les films du
// catalogue (contrat "ratings-with-movie"). Les notes orphelines (film
// supprimé du catalogue) sont écartées.
func (s *Stores) RatedMoviesByUser(ctx context.Context, userID string) ([]models.RatedMovie, error) {
	ratings, err := s.Ratings.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, nil
	}

	catalog, err := s.Movies.All(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Movie, len(catalog))
	for _, m := range catalog {
		byID[m.ID.String()] = m
	}

	rated := make([]models.RatedMovie, 0, len(ratings))
	for _, r := range ratings {
		movie, ok := byID[r.MovieID.String()]
		if !ok {
			continue
		}
		rated = append(rated, models.RatedMovie{Rating: r, Movie: movie})
	}
	return rated, nil
}
