package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"cinefil_back_end/internal/models"
	"cinefil_back_end/internal/store"
	"cinefil_back_end/internal/utils"
)

const omdbBaseURL = "http://www.omdbapi.com/"

var omdbClient = &http.Client{Timeout: 15 * time.Second}

// OmdbMovie est la réponse brute de l'API OMDb.
type OmdbMovie struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// LookupOmdb interroge OMDb par titre exact. Retourne une erreur NotFound
// quand OMDb ne connaît pas le titre, Upstream sur tout le reste.
func LookupOmdb(ctx context.Context, title string) (*OmdbMovie, error) {
	apiKey := os.Getenv("OMDB_API_KEY")
	if apiKey == "" {
		return nil, utils.Upstream("Import indisponible", fmt.Errorf("OMDB_API_KEY non configurée"))
	}

	endpoint := fmt.Sprintf("%s?t=%s&apikey=%s", omdbBaseURL, url.QueryEscape(title), apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, utils.Upstream("Import indisponible", err)
	}

	resp, err := omdbClient.Do(req)
	if err != nil {
		return nil, utils.Upstream("OMDb injoignable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.Upstream("OMDb injoignable", fmt.Errorf("statut %d", resp.StatusCode))
	}

	var payload OmdbMovie
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, utils.Upstream("Réponse OMDb illisible", err)
	}
	if payload.Response != "True" {
		return nil, utils.NotFound("Film introuvable sur OMDb")
	}
	return &payload, nil
}

// ToMovie convertit la réponse OMDb en film du catalogue. Les champs
// "N/A" d'OMDb deviennent des zéros/vides.
func (o *OmdbMovie) ToMovie() models.Movie {
	movie := models.Movie{
		ID:          store.NewMovieID(),
		Title:       strings.TrimSpace(o.Title),
		Genre:       firstGenre(o.Genre),
		Description: omdbString(o.Plot),
		PosterURL:   omdbString(o.Poster),
		Director:    omdbString(o.Director),
		Language:    omdbString(o.Language),
		Country:     omdbString(o.Country),
		CreatedAt:   time.Now(),
	}

	if year, err := strconv.Atoi(omdbString(o.Year)); err == nil {
		movie.Year = year
	}
	if rating, err := strconv.ParseFloat(omdbString(o.ImdbRating), 64); err == nil {
		movie.ImdbRating = rating
	}
	// Runtime arrive sous la forme "148 min"
	if fields := strings.Fields(omdbString(o.Runtime)); len(fields) > 0 {
		if minutes, err := strconv.Atoi(fields[0]); err == nil {
			movie.Runtime = minutes
		}
	}
	// Released arrive sous la forme "16 Jul 2010"
	if released, err := time.Parse("2 Jan 2006", omdbString(o.Released)); err == nil {
		movie.ReleaseDate = &released
	}
	return movie
}

// firstGenre garde le premier genre de la liste OMDb ("Action, Sci-Fi"
// → "Action") : le moteur content-based matche sur un genre unique.
func firstGenre(genre string) string {
	genre = omdbString(genre)
	if i := strings.Index(genre, ","); i >= 0 {
		genre = genre[:i]
	}
	return strings.TrimSpace(genre)
}

func omdbString(value string) string {
	value = strings.TrimSpace(value)
	if value == "N/A" {
		return ""
	}
	return value
}
