package recommend

import (
	"math"
	"strings"
	"testing"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"cinefil_back_end/internal/models"
)

func newMovie(title, genre string) models.Movie {
	return models.Movie{
		ID:    gocql.UUID(uuid.New()),
		Title: title,
		Genre: genre,
	}
}

func ratedMovie(userID string, movie models.Movie, score int) models.RatedMovie {
	return models.RatedMovie{
		Rating: models.Rating{UserID: userID, MovieID: movie.ID, Score: score},
		Movie:  movie,
	}
}

func TestLikedGenresFirstOccurrenceOrder(t *testing.T) {
	scifi1 := newMovie("The Matrix", "Sci-Fi")
	drama := newMovie("The Godfather", "Drama")
	scifi2 := newMovie("Inception", "Sci-Fi")
	horror := newMovie("Alien", "Horror")

	rated := []models.RatedMovie{
		ratedMovie("me", scifi1, 5),
		ratedMovie("me", drama, 4),
		ratedMovie("me", scifi2, 5), // Sci-Fi déjà vu : pas de doublon
		ratedMovie("me", horror, 2), // sous le seuil : ignoré
	}

	got := LikedGenres(rated)
	want := []string{"Sci-Fi", "Drama"}
	if len(got) != len(want) {
		t.Fatalf("genres = %v, attendu %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("genres = %v, attendu %v", got, want)
		}
	}
}

// Exemple du cahier des charges : A=5, puis B notée 5 puis écrasée à 1.
// Le store ne conservant que la dernière note, B compte comme 1 et seul
// Sci-Fi reste un genre aimé.
func TestContentBasedLikedGenreExample(t *testing.T) {
	movieA := newMovie("The Matrix", "Sci-Fi")
	movieB := newMovie("The Godfather", "Drama")
	candidate := newMovie("Blade Runner", "Sci-Fi")
	dramaCandidate := newMovie("Casablanca", "Drama")

	rated := []models.RatedMovie{
		ratedMovie("me", movieA, 5),
		ratedMovie("me", movieB, 1),
	}
	catalog := []models.Movie{movieA, movieB, candidate, dramaCandidate}

	recs := ContentBased(rated, catalog, MaxRecommendations, ContentConfidence)
	if len(recs) != 1 {
		t.Fatalf("%d recommandations, attendu 1: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.Movie.Title != "Blade Runner" {
		t.Fatalf("film = %s, attendu Blade Runner", rec.Movie.Title)
	}
	if rec.Score != 0.8 || rec.Confidence != 0.8 {
		t.Fatalf("score/confiance = %f/%f, attendu 0.8/0.8", rec.Score, rec.Confidence)
	}
	if rec.Algorithm != models.AlgoContentBased {
		t.Fatalf("algorithme = %s", rec.Algorithm)
	}
	if !strings.Contains(rec.Reason, "Sci-Fi") {
		t.Fatalf("la raison devrait citer le genre: %q", rec.Reason)
	}
}

func TestContentBasedNeverRecommendsRatedMovies(t *testing.T) {
	liked := newMovie("Interstellar", "Sci-Fi")
	alsoRated := newMovie("Dune", "Sci-Fi")
	fresh := newMovie("Arrival", "Sci-Fi")

	rated := []models.RatedMovie{
		ratedMovie("me", liked, 5),
		ratedMovie("me", alsoRated, 3),
	}
	catalog := []models.Movie{liked, alsoRated, fresh}

	recs := ContentBased(rated, catalog, MaxRecommendations, ContentConfidence)
	for _, rec := range recs {
		if rec.Movie.ID == liked.ID || rec.Movie.ID == alsoRated.ID {
			t.Fatalf("film déjà noté recommandé: %s", rec.Movie.Title)
		}
	}
	if len(recs) != 1 || recs[0].Movie.ID != fresh.ID {
		t.Fatalf("attendu uniquement %s, reçu %+v", fresh.Title, recs)
	}
}

func TestContentBasedCapAndCatalogOrder(t *testing.T) {
	seen := newMovie("Seed", "Sci-Fi")
	rated := []models.RatedMovie{ratedMovie("me", seen, 5)}

	catalog := []models.Movie{seen}
	titles := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for _, title := range titles {
		catalog = append(catalog, newMovie(title, "Sci-Fi"))
	}

	recs := ContentBased(rated, catalog, MaxRecommendations, ContentConfidence)
	if len(recs) != MaxRecommendations {
		t.Fatalf("%d recommandations, attendu %d", len(recs), MaxRecommendations)
	}
	// L'ordre du catalogue doit être conservé
	for i, rec := range recs {
		if rec.Movie.Title != titles[i] {
			t.Fatalf("position %d: %s, attendu %s", i, rec.Movie.Title, titles[i])
		}
	}
}

func collabFixture() (all []Rating, movies map[string]models.Movie, byTitle map[string]models.Movie) {
	shared1 := newMovie("Shared One", "Sci-Fi")
	shared2 := newMovie("Shared Two", "Sci-Fi")
	gemA := newMovie("Gem A", "Drama")
	gemB := newMovie("Gem B", "Horror")

	movies = map[string]models.Movie{
		shared1.ID.String(): shared1,
		shared2.ID.String(): shared2,
		gemA.ID.String():    gemA,
		gemB.ID.String():    gemB,
	}
	byTitle = map[string]models.Movie{
		"Shared One": shared1, "Shared Two": shared2, "Gem A": gemA, "Gem B": gemB,
	}

	// Le demandeur a vu les deux films communs
	all = append(all,
		Rating{UserID: "me", MovieID: shared1.ID.String(), Score: 5},
		Rating{UserID: "me", MovieID: shared2.ID.String(), Score: 5},
	)
	// "best" : similarité 1.0, adore Gem A
	all = append(all,
		Rating{UserID: "best", MovieID: shared1.ID.String(), Score: 5},
		Rating{UserID: "best", MovieID: shared2.ID.String(), Score: 5},
		Rating{UserID: "best", MovieID: gemA.ID.String(), Score: 5},
	)
	// "good" : similarité 0.9, adore Gem A (doublon) et Gem B
	all = append(all,
		Rating{UserID: "good", MovieID: shared1.ID.String(), Score: 5},
		Rating{UserID: "good", MovieID: shared2.ID.String(), Score: 4},
		Rating{UserID: "good", MovieID: gemA.ID.String(), Score: 4},
		Rating{UserID: "good", MovieID: gemB.ID.String(), Score: 5},
	)
	return all, movies, byTitle
}

func TestCollaborativeFirstContributorWins(t *testing.T) {
	all, movies, byTitle := collabFixture()

	recs := Collaborative(all, "me", movies)
	if len(recs) != 2 {
		t.Fatalf("%d recommandations, attendu 2: %+v", len(recs), recs)
	}

	// Gem A vient de "best" (sim 1.0), pas de "good"
	if recs[0].Movie.ID != byTitle["Gem A"].ID {
		t.Fatalf("première recommandation: %s, attendu Gem A", recs[0].Movie.Title)
	}
	if recs[0].Score != 1.0 {
		t.Fatalf("score Gem A = %f, attendu 1.0 (similarité du premier contributeur)", recs[0].Score)
	}
	if !strings.Contains(recs[0].Reason, "100%") {
		t.Fatalf("raison sans pourcentage arrondi: %q", recs[0].Reason)
	}

	// Gem B vient de "good" (sim 0.9)
	if recs[1].Movie.ID != byTitle["Gem B"].ID {
		t.Fatalf("seconde recommandation: %s, attendu Gem B", recs[1].Movie.Title)
	}
	if math.Abs(recs[1].Score-0.9) > 1e-9 {
		t.Fatalf("score Gem B = %f, attendu 0.9", recs[1].Score)
	}
}

func TestCollaborativeExcludesDissimilarUsers(t *testing.T) {
	shared1 := newMovie("Shared One", "Sci-Fi")
	shared2 := newMovie("Shared Two", "Sci-Fi")
	gem := newMovie("Gem", "Drama")
	movies := map[string]models.Movie{
		shared1.ID.String(): shared1,
		shared2.ID.String(): shared2,
		gem.ID.String():     gem,
	}

	all := []Rating{
		{UserID: "me", MovieID: shared1.ID.String(), Score: 5},
		{UserID: "me", MovieID: shared2.ID.String(), Score: 5},
		// Goûts opposés : sim 0.2, sous le seuil 0.6
		{UserID: "hater", MovieID: shared1.ID.String(), Score: 1},
		{UserID: "hater", MovieID: shared2.ID.String(), Score: 1},
		{UserID: "hater", MovieID: gem.ID.String(), Score: 5},
	}

	if recs := Collaborative(all, "me", movies); len(recs) != 0 {
		t.Fatalf("aucune recommandation attendue, reçu %+v", recs)
	}
}

func TestHybridOrderDedupAndCap(t *testing.T) {
	all, movies, byTitle := collabFixture()

	// Le demandeur aime le Sci-Fi → Gem A (Drama) ne sort que du collaboratif,
	// les films Sci-Fi non vus sortent du content-based.
	var catalog []models.Movie
	var rated []models.RatedMovie
	for _, r := range all {
		if r.UserID == "me" {
			rated = append(rated, models.RatedMovie{
				Rating: models.Rating{UserID: "me", MovieID: movies[r.MovieID].ID, Score: r.Score},
				Movie:  movies[r.MovieID],
			})
		}
	}
	freshSciFi := newMovie("Fresh Sci-Fi", "Sci-Fi")
	catalog = append(catalog, byTitle["Shared One"], byTitle["Shared Two"], freshSciFi,
		byTitle["Gem A"], byTitle["Gem B"])
	movies[freshSciFi.ID.String()] = freshSciFi

	recs := Hybrid(rated, all, catalog, "me")

	if len(recs) > MaxRecommendations {
		t.Fatalf("%d recommandations, plafond %d", len(recs), MaxRecommendations)
	}
	seen := map[string]bool{}
	for _, rec := range recs {
		id := rec.Movie.ID.String()
		if seen[id] {
			t.Fatalf("doublon dans la sortie hybride: %s", rec.Movie.Title)
		}
		seen[id] = true
		if rec.Algorithm != models.AlgoHybrid {
			t.Fatalf("algorithme = %s, attendu %s", rec.Algorithm, models.AlgoHybrid)
		}
	}

	// Content-based d'abord (score fixe 0.7), collaboratif ensuite
	if recs[0].Movie.ID != freshSciFi.ID {
		t.Fatalf("première recommandation: %s, attendu Fresh Sci-Fi", recs[0].Movie.Title)
	}
	if recs[0].Score != HybridContentScore {
		t.Fatalf("score content en hybride = %f, attendu %f", recs[0].Score, HybridContentScore)
	}
	var sawCollab bool
	for _, rec := range recs[1:] {
		if rec.Movie.ID == byTitle["Gem A"].ID {
			sawCollab = true
			// score = similarité (1.0) × 0.8
			if math.Abs(rec.Score-HybridCollabWeight) > 1e-9 {
				t.Fatalf("score collaboratif en hybride = %f, attendu %f", rec.Score, HybridCollabWeight)
			}
		}
	}
	if !sawCollab {
		t.Fatal("la passe collaborative n'a rien apporté à la sortie hybride")
	}
}

func TestPreferences(t *testing.T) {
	scifi := newMovie("The Matrix", "Sci-Fi")
	drama := newMovie("The Godfather", "Drama")
	horror := newMovie("Alien", "Horror")

	rated := []models.RatedMovie{
		ratedMovie("me", scifi, 5),
		ratedMovie("me", drama, 4),
		ratedMovie("me", horror, 1),
	}

	prefs := Preferences(rated)
	if prefs.LikedCount != 2 || prefs.DislikedCount != 1 || prefs.TotalRatings != 3 {
		t.Fatalf("compteurs inattendus: %+v", prefs)
	}
	if math.Abs(prefs.AverageScore-3.33) > 1e-9 {
		t.Fatalf("moyenne = %f, attendu 3.33", prefs.AverageScore)
	}
	if len(prefs.LikedGenres) != 2 || prefs.LikedGenres[0] != "Sci-Fi" || prefs.LikedGenres[1] != "Drama" {
		t.Fatalf("genres aimés = %v", prefs.LikedGenres)
	}
}

func TestPreferencesEmpty(t *testing.T) {
	prefs := Preferences(nil)
	if prefs.TotalRatings != 0 || prefs.AverageScore != 0 {
		t.Fatalf("profil vide inattendu: %+v", prefs)
	}
	if prefs.LikedGenres == nil || len(prefs.LikedGenres) != 0 {
		t.Fatalf("liked_genres devrait être une liste vide, reçu %v", prefs.LikedGenres)
	}
}

func TestOrderedSet(t *testing.T) {
	s := newOrderedSet()
	if !s.Add("a") || !s.Add("b") {
		t.Fatal("premières insertions refusées")
	}
	if s.Add("a") {
		t.Fatal("doublon accepté")
	}
	if !s.Has("b") || s.Has("c") {
		t.Fatal("appartenance incohérente")
	}
	got := s.Values()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("ordre d'insertion perdu: %v", got)
	}
}
