package services

import (
	"testing"
)

func TestOmdbToMovie(t *testing.T) {
	payload := &OmdbMovie{
		Title:      "Inception",
		Year:       "2010",
		Released:   "16 Jul 2010",
		Runtime:    "148 min",
		Genre:      "Action, Adventure, Sci-Fi",
		Director:   "Christopher Nolan",
		Plot:       "A thief who steals corporate secrets…",
		Language:   "English, Japanese, French",
		Country:    "United States, United Kingdom",
		Poster:     "https://example.com/inception.jpg",
		ImdbRating: "8.8",
		Response:   "True",
	}

	movie := payload.ToMovie()
	if movie.Title != "Inception" {
		t.Fatalf("titre = %s", movie.Title)
	}
	if movie.Genre != "Action" {
		t.Fatalf("genre = %s, attendu le premier de la liste OMDb", movie.Genre)
	}
	if movie.Year != 2010 {
		t.Fatalf("année = %d", movie.Year)
	}
	if movie.Runtime != 148 {
		t.Fatalf("durée = %d, attendu 148", movie.Runtime)
	}
	if movie.ImdbRating != 8.8 {
		t.Fatalf("note imdb = %f", movie.ImdbRating)
	}
	if movie.ReleaseDate == nil || movie.ReleaseDate.Year() != 2010 || movie.ReleaseDate.Month() != 7 {
		t.Fatalf("date de sortie = %v", movie.ReleaseDate)
	}
	if movie.ID.String() == "" {
		t.Fatal("identifiant manquant")
	}
}

func TestOmdbToMovieHandlesNA(t *testing.T) {
	payload := &OmdbMovie{
		Title:      "Obscur",
		Year:       "N/A",
		Released:   "N/A",
		Runtime:    "N/A",
		Genre:      "N/A",
		Director:   "N/A",
		Plot:       "N/A",
		Poster:     "N/A",
		ImdbRating: "N/A",
		Response:   "True",
	}

	movie := payload.ToMovie()
	if movie.Genre != "" || movie.Director != "" || movie.PosterURL != "" {
		t.Fatalf("les champs N/A devraient être vides: %+v", movie)
	}
	if movie.Year != 0 || movie.Runtime != 0 || movie.ImdbRating != 0 {
		t.Fatalf("les champs numériques N/A devraient être à zéro: %+v", movie)
	}
	if movie.ReleaseDate != nil {
		t.Fatalf("date de sortie N/A devrait rester nil, reçu %v", movie.ReleaseDate)
	}
}
