package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Rating struct {
	UserID    string     `json:"user_id" db:"user_id"`
	MovieID   gocql.UUID `json:"movie_id" db:"movie_id"`
	Score     int        `json:"score" db:"score"` // 1-5
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// RatedMovie joint une note avec le film correspondant (contrat de lecture
// "ratings-with-movie" consommé par le moteur de recommandation).
type RatedMovie struct {
	Rating
	Movie Movie `json:"movie"`
}
