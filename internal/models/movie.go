package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Movie struct {
	ID          gocql.UUID `json:"id" db:"movie_id"`
	Title       string     `json:"title" db:"title"`
	Genre       string     `json:"genre" db:"genre"`
	Description string     `json:"description" db:"description"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty" db:"release_date"`
	Year        int        `json:"year,omitempty" db:"year"`
	PosterURL   string     `json:"posterUrl,omitempty" db:"poster_url"`
	Director    string     `json:"director,omitempty" db:"director"`
	ImdbRating  float64    `json:"imdbRating,omitempty" db:"imdb_rating"`
	Runtime     int        `json:"runtime,omitempty" db:"runtime"`
	Language    string     `json:"language,omitempty" db:"language"`
	Country     string     `json:"country,omitempty" db:"country"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// MovieWithUserRating enrichit un film avec la note de l'utilisateur courant
// pour le listing paginé.
type MovieWithUserRating struct {
	Movie
	UserRating *int `json:"userRating"`
}
