package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cinefil_back_end/internal/models"
	"cinefil_back_end/internal/recommend"
	"cinefil_back_end/internal/services"
	"cinefil_back_end/internal/utils"
)

// Les stratégies sont sans état : chaque requête recalcule tout depuis
// le contenu courant des stores, aucune mise en cache des sorties.

func respondRecommendations(c *gin.Context, algorithm string, recs []models.Recommendation) {
	if recs == nil {
		recs = []models.Recommendation{}
	}
	c.JSON(http.StatusOK, gin.H{
		"algorithm":       algorithm,
		"recommendations": recs,
	})
}

func toEngineRatings(ratings []models.Rating) []recommend.Rating {
	out := make([]recommend.Rating, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, recommend.Rating{
			UserID:  r.UserID,
			MovieID: r.MovieID.String(),
			Score:   r.Score,
		})
	}
	return out
}

// ContentBasedRecommendations : affinité de genre sur les propres notes
// du demandeur.
func ContentBasedRecommendations(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	rated, err := stores.RatedMoviesByUser(ctx, userID)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recommandations indisponibles", err))
		return
	}
	catalog, err := stores.Movies.All(ctx)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recommandations indisponibles", err))
		return
	}

	recs := recommend.ContentBased(rated, catalog, recommend.MaxRecommendations, recommend.ContentConfidence)
	respondRecommendations(c, models.AlgoContentBased, recs)
}

// CollaborativeRecommendations : films plébiscités par les utilisateurs
// aux goûts proches.
func CollaborativeRecommendations(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	all, err := stores.Ratings.All(ctx)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recommandations indisponibles", err))
		return
	}
	catalog, err := stores.Movies.All(ctx)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recommandations indisponibles", err))
		return
	}
	byID := make(map[string]models.Movie, len(catalog))
	for _, m := range catalog {
		byID[m.ID.String()] = m
	}

	recs := recommend.Collaborative(toEngineRatings(all), userID, byID)
	respondRecommendations(c, models.AlgoCollaborative, recs)
}

// HybridRecommendations : concaténation content-based puis collaboratif,
// dédupliquée, sans re-classement.
func HybridRecommendations(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	rated, err := stores.RatedMoviesByUser(ctx, userID)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recommandations indisponibles", err))
		return
	}
	all, err := stores.Ratings.All(ctx)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recommandations indisponibles", err))
		return
	}
	catalog, err := stores.Movies.All(ctx)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recommandations indisponibles", err))
		return
	}

	recs := recommend.Hybrid(rated, toEngineRatings(all), catalog, userID)
	respondRecommendations(c, models.AlgoHybrid, recs)
}

// SimilarUsersList : les utilisateurs similaires (> 0.6, tri décroissant)
// avec leur nombre de films communs.
func SimilarUsersList(c *gin.Context) {
	userID := c.GetString("user_id")

	all, err := stores.Ratings.All(c.Request.Context())
	if err != nil {
		utils.RespondError(c, utils.Upstream("Utilisateurs similaires indisponibles", err))
		return
	}

	similar := recommend.SimilarUsers(toEngineRatings(all), userID, recommend.SimilarUserThreshold, 0)
	if similar == nil {
		similar = []models.UserSimilarity{}
	}
	c.JSON(http.StatusOK, gin.H{"similar_users": similar})
}

// AIRecommendations : stratégie déléguée au modèle génératif externe.
// Tout échec d'appel ou de parsing est terminal pour la requête.
func AIRecommendations(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	rated, err := stores.RatedMoviesByUser(ctx, userID)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recommandations indisponibles", err))
		return
	}
	catalog, err := stores.Movies.All(ctx)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Recommandations indisponibles", err))
		return
	}

	recs, err := services.AIRecommendations(ctx, rated, catalog)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respondRecommendations(c, models.AlgoAI, recs)
}

// PreferencesProfile : le profil de goûts du demandeur (genres aimés,
// compteurs, moyenne).
func PreferencesProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	rated, err := stores.RatedMoviesByUser(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Préférences indisponibles", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": recommend.Preferences(rated)})
}
