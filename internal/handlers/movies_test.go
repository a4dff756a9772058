package handlers

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"cinefil_back_end/internal/models"
)

func searchMovie(title string) models.Movie {
	return models.Movie{ID: gocql.UUID(uuid.New()), Title: title}
}

func TestFilterMoviesByTitle(t *testing.T) {
	catalog := []models.Movie{
		searchMovie("The Matrix"),
		searchMovie("The Matrix Reloaded"),
		searchMovie("Inception"),
		searchMovie("matrix revolutions"),
	}

	results := FilterMoviesByTitle(catalog, "matrix", MaxSearchResults)
	if len(results) != 3 {
		t.Fatalf("%d résultats, attendu 3: %+v", len(results), results)
	}
	// L'ordre du catalogue est conservé
	if results[0].Title != "The Matrix" || results[2].Title != "matrix revolutions" {
		t.Fatalf("ordre inattendu: %+v", results)
	}
}

func TestFilterMoviesByTitleCaseInsensitive(t *testing.T) {
	catalog := []models.Movie{searchMovie("INTERSTELLAR")}
	if got := FilterMoviesByTitle(catalog, "interstellar", MaxSearchResults); len(got) != 1 {
		t.Fatalf("recherche insensible à la casse en échec: %+v", got)
	}
}

func TestFilterMoviesByTitleCap(t *testing.T) {
	var catalog []models.Movie
	for i := 0; i < 80; i++ {
		catalog = append(catalog, searchMovie("Matrix clone"))
	}
	if got := FilterMoviesByTitle(catalog, "matrix", MaxSearchResults); len(got) != MaxSearchResults {
		t.Fatalf("%d résultats, plafond attendu %d", len(got), MaxSearchResults)
	}
}

func TestFilterMoviesByTitleNoMatch(t *testing.T) {
	catalog := []models.Movie{searchMovie("Inception")}
	if got := FilterMoviesByTitle(catalog, "matrix", MaxSearchResults); len(got) != 0 {
		t.Fatalf("aucun résultat attendu, reçu %+v", got)
	}
}
