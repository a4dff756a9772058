package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"cinefil_back_end/internal/models"
	"cinefil_back_end/internal/services"
	"cinefil_back_end/internal/store"
	"cinefil_back_end/internal/utils"
)

// MaxSearchResults : plafond de la recherche par titre.
const MaxSearchResults = 50

// ListMovies retourne le catalogue paginé, chaque film portant la note de
// l'utilisateur courant. Le catalogue et le compteur sont lus en parallèle.
func ListMovies(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var (
		wg       sync.WaitGroup
		catalog  []models.Movie
		total    int
		errList  error
		errCount error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		catalog, errList = stores.Movies.All(ctx)
	}()
	go func() {
		defer wg.Done()
		total, errCount = stores.Movies.Count(ctx)
	}()
	wg.Wait()

	if errList != nil {
		utils.RespondError(c, utils.Upstream("Catalogue indisponible", errList))
		return
	}
	if errCount != nil {
		utils.RespondError(c, utils.Upstream("Catalogue indisponible", errCount))
		return
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(catalog) {
		start = len(catalog)
	}
	if end > len(catalog) {
		end = len(catalog)
	}
	pageMovies := catalog[start:end]

	ratings, err := stores.Ratings.ByUser(ctx, userID)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Catalogue indisponible", err))
		return
	}
	scoreByMovie := make(map[string]int, len(ratings))
	for _, r := range ratings {
		scoreByMovie[r.MovieID.String()] = r.Score
	}

	result := make([]models.MovieWithUserRating, 0, len(pageMovies))
	for _, m := range pageMovies {
		entry := models.MovieWithUserRating{Movie: m}
		if score, ok := scoreByMovie[m.ID.String()]; ok {
			s := score
			entry.UserRating = &s
		}
		result = append(result, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"movies":   result,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// RateMovie enregistre (ou écrase) la note de l'utilisateur pour un film.
// L'unicité par (user, film) est portée par la clé primaire du store.
func RateMovie(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		MovieID string `json:"movieId"`
		Score   *int   `json:"score"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.Validation("Corps de requête invalide"))
		return
	}
	if input.MovieID == "" {
		utils.RespondError(c, utils.Validation("Le champ movieId est requis"))
		return
	}
	if input.Score == nil {
		utils.RespondError(c, utils.Validation("Le champ score est requis"))
		return
	}
	if *input.Score < 1 || *input.Score > 5 {
		utils.RespondError(c, utils.Validation("Le score doit être entre 1 et 5"))
		return
	}

	movieUUID, err := uuid.Parse(input.MovieID)
	if err != nil {
		utils.RespondError(c, utils.Validation("Le champ movieId est invalide"))
		return
	}

	ctx := c.Request.Context()
	if _, err := stores.Movies.ByID(ctx, gocql.UUID(movieUUID)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(c, utils.NotFound("Film introuvable"))
			return
		}
		utils.RespondError(c, utils.Upstream("Notation impossible", err))
		return
	}

	rating := models.Rating{
		UserID:    userID,
		MovieID:   gocql.UUID(movieUUID),
		Score:     *input.Score,
		CreatedAt: time.Now(),
	}
	if err := stores.Ratings.Upsert(ctx, rating); err != nil {
		utils.RespondError(c, utils.Upstream("Notation impossible", err))
		return
	}

	log.Printf("⭐ Note enregistrée: %s → %s (%d/5)", userID, input.MovieID, *input.Score)
	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}

// AddMovie ajoute un film à la main (route historique de test/admin).
func AddMovie(c *gin.Context) {
	var input struct {
		Title       string `json:"title"`
		Genre       string `json:"genre"`
		Description string `json:"description"`
		ReleaseDate string `json:"releaseDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.Validation("Corps de requête invalide"))
		return
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Genre) == "" {
		utils.RespondError(c, utils.Validation("Les champs title et genre sont requis"))
		return
	}

	ctx := c.Request.Context()
	if _, err := stores.Movies.ByTitle(ctx, input.Title); err == nil {
		utils.RespondError(c, utils.Conflict("Ce film existe déjà dans le catalogue"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		utils.RespondError(c, utils.Upstream("Ajout impossible", err))
		return
	}

	movie := models.Movie{
		ID:          store.NewMovieID(),
		Title:       strings.TrimSpace(input.Title),
		Genre:       strings.TrimSpace(input.Genre),
		Description: input.Description,
		CreatedAt:   time.Now(),
	}
	if input.ReleaseDate != "" {
		if released, err := time.Parse("2006-01-02", input.ReleaseDate); err == nil {
			movie.ReleaseDate = &released
			movie.Year = released.Year()
		}
	}

	if err := stores.Movies.Insert(ctx, movie); err != nil {
		utils.RespondError(c, utils.Upstream("Ajout impossible", err))
		return
	}
	services.IndexMovie(movie)

	c.JSON(http.StatusCreated, gin.H{"message": "Film ajouté avec succès", "movie": movie})
}

// SearchMovies : recherche par sous-chaîne de titre, insensible à la
// casse, plafonnée à 50 résultats. Elasticsearch d'abord, scan ScyllaDB
// en repli. Une requête vide retourne une liste vide (total 0).
func SearchMovies(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"movies": []models.Movie{}, "total": 0})
		return
	}

	ctx := c.Request.Context()
	catalog, err := stores.Movies.All(ctx)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recherche indisponible", err))
		return
	}

	var results []models.Movie
	if ids, err := services.SearchMovieIDs(ctx, query, MaxSearchResults); err == nil {
		byID := make(map[string]models.Movie, len(catalog))
		for _, m := range catalog {
			byID[m.ID.String()] = m
		}
		for _, id := range ids {
			if m, ok := byID[id]; ok {
				results = append(results, m)
			}
		}
	} else {
		log.Println("⚠️ Recherche Elastic en échec, repli sur le scan:", err)
		results = FilterMoviesByTitle(catalog, query, MaxSearchResults)
	}

	if results == nil {
		results = []models.Movie{}
	}
	c.JSON(http.StatusOK, gin.H{"movies": results, "total": len(results)})
}

// FilterMoviesByTitle filtre le catalogue par sous-chaîne de titre
// (insensible à la casse), dans l'ordre du catalogue, plafonné à max.
func FilterMoviesByTitle(catalog []models.Movie, query string, max int) []models.Movie {
	queryLower := strings.ToLower(query)
	var results []models.Movie
	for _, m := range catalog {
		if len(results) >= max {
			break
		}
		if strings.Contains(strings.ToLower(m.Title), queryLower) {
			results = append(results, m)
		}
	}
	return results
}

// ImportFromOmdb importe les métadonnées d'un film depuis OMDb.
// 404 si OMDb ne connaît pas le titre, 400 si le film est déjà présent.
func ImportFromOmdb(c *gin.Context) {
	var input struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Title) == "" {
		utils.RespondError(c, utils.Validation("Le champ title est requis"))
		return
	}

	ctx := c.Request.Context()
	if _, err := stores.Movies.ByTitle(ctx, input.Title); err == nil {
		utils.RespondError(c, utils.Conflict("Ce film est déjà dans le catalogue"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		utils.RespondError(c, utils.Upstream("Import impossible", err))
		return
	}

	payload, err := services.LookupOmdb(ctx, input.Title)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	movie := payload.ToMovie()

	// OMDb normalise les titres : revérifier avec le titre canonique
	if !strings.EqualFold(movie.Title, input.Title) {
		if _, err := stores.Movies.ByTitle(ctx, movie.Title); err == nil {
			utils.RespondError(c, utils.Conflict("Ce film est déjà dans le catalogue"))
			return
		}
	}

	// Copier l'affiche dans MinIO (best effort)
	movie.PosterURL = services.StorePoster(ctx, movie.ID.String(), movie.PosterURL)

	if err := stores.Movies.Insert(ctx, movie); err != nil {
		utils.RespondError(c, utils.Upstream("Import impossible", err))
		return
	}
	services.IndexMovie(movie)

	log.Printf("🎬 Film importé depuis OMDb: %s", movie.Title)
	c.JSON(http.StatusCreated, gin.H{"message": "Film importé avec succès", "movie": movie})
}
