package recommend

import (
	"fmt"
	"math"

	"cinefil_back_end/internal/models"
)

// LikedGenres extrait les genres "aimés" du demandeur : genre de tout film
// noté >= 4, dédupliqué, ordre de première occurrence conservé.
func LikedGenres(rated []models.RatedMovie) []string {
	genres := newOrderedSet()
	for _, rm := range rated {
		if rm.Score >= LikedScore && rm.Movie.Genre != "" {
			genres.Add(rm.Movie.Genre)
		}
	}
	return genres.Values()
}

// ContentBased recommande les films du catalogue dont le genre fait partie
// des genres aimés et que le demandeur n'a pas encore notés. L'ordre du
// catalogue est conservé, la liste est plafonnée à max entrées et chaque
// entrée porte le score donné et une confiance fixe de 0.8.
func ContentBased(rated []models.RatedMovie, catalog []models.Movie, max int, score float64) []models.Recommendation {
	liked := newOrderedSet()
	for _, g := range LikedGenres(rated) {
		liked.Add(g)
	}

	alreadyRated := make(map[string]struct{}, len(rated))
	for _, rm := range rated {
		alreadyRated[rm.MovieID.String()] = struct{}{}
	}

	var recs []models.Recommendation
	for _, movie := range catalog {
		if len(recs) >= max {
			break
		}
		if !liked.Has(movie.Genre) {
			continue
		}
		if _, ok := alreadyRated[movie.ID.String()]; ok {
			continue
		}
		recs = append(recs, models.Recommendation{
			Movie:      movie,
			Score:      score,
			Reason:     fmt.Sprintf("Parce que vous avez aimé des films %s", movie.Genre),
			Algorithm:  models.AlgoContentBased,
			Confidence: ContentConfidence,
		})
	}
	return recs
}

// Collaborative recommande les films plébiscités (note >= 4) par les
// utilisateurs similaires (similarité > 0.6, top 5). Un film n'est ajouté
// qu'une fois : le premier contributeur fixe le score et la confiance
// (sa similarité), pas un agrégat. Plafonné à 10.
func Collaborative(all []Rating, userID string, movies map[string]models.Movie) []models.Recommendation {
	similar := SimilarUsers(all, userID, SimilarUserThreshold, MaxSimilarUsers)
	if len(similar) == 0 {
		return nil
	}
	return collectFromSimilar(all, userID, similar, movies, MaxRecommendations, models.AlgoCollaborative, 1.0)
}

// collectFromSimilar parcourt les utilisateurs similaires dans l'ordre du
// tri et ramasse leurs films bien notés que le demandeur n'a pas vus.
// scoreWeight pondère la similarité du contributeur (0.8 en hybride).
// max <= 0 signifie sans plafond (le plafond est appliqué à la fusion).
func collectFromSimilar(all []Rating, userID string, similar []models.UserSimilarity,
	movies map[string]models.Movie, max int, algorithm string, scoreWeight float64) []models.Recommendation {

	p := partitionByUser(all)
	alreadyRated := make(map[string]struct{})
	for _, r := range p.ratings[userID] {
		alreadyRated[r.MovieID] = struct{}{}
	}

	picked := newOrderedSet()
	var recs []models.Recommendation
	for _, su := range similar {
		for _, r := range p.ratings[su.UserID] {
			if max > 0 && len(recs) >= max {
				return recs
			}
			if r.Score < LikedScore {
				continue
			}
			if _, ok := alreadyRated[r.MovieID]; ok {
				continue
			}
			movie, known := movies[r.MovieID]
			if !known {
				continue
			}
			// Première occurrence gagne : un utilisateur similaire
			// suivant ne ré-ajoute pas le film.
			if !picked.Add(r.MovieID) {
				continue
			}
			recs = append(recs, models.Recommendation{
				Movie:      movie,
				Score:      su.Similarity * scoreWeight,
				Reason:     fmt.Sprintf("Les utilisateurs avec des goûts proches (%d%% de similarité) ont adoré ce film", int(math.Round(su.Similarity*100))),
				Algorithm:  algorithm,
				Confidence: su.Similarity,
			})
		}
	}
	return recs
}

// Hybrid concatène les candidats content-based (plafond 15, score fixe 0.7)
// puis une passe collaborative simplifiée (seuil abaissé à 0.5, score =
// similarité × 0.8), déduplique par film en gardant la première occurrence
// et plafonne à 10. Aucun re-classement par score combiné : l'ordre est
// strictement "content-based d'abord, puis les nouveautés collaboratives".
func Hybrid(rated []models.RatedMovie, all []Rating, catalog []models.Movie, userID string) []models.Recommendation {
	content := ContentBased(rated, catalog, MaxContentForHybrid, HybridContentScore)

	movies := make(map[string]models.Movie, len(catalog))
	for _, m := range catalog {
		movies[m.ID.String()] = m
	}
	similar := SimilarUsers(all, userID, HybridSimThreshold, 0)
	collab := collectFromSimilar(all, userID, similar, movies, 0, models.AlgoHybrid, HybridCollabWeight)

	merged := newOrderedSet()
	var recs []models.Recommendation
	for _, rec := range append(content, collab...) {
		if len(recs) >= MaxRecommendations {
			break
		}
		if !merged.Add(rec.Movie.ID.String()) {
			continue
		}
		rec.Algorithm = models.AlgoHybrid
		recs = append(recs, rec)
	}
	return recs
}

// Preferences résume le profil de goûts du demandeur.
func Preferences(rated []models.RatedMovie) models.UserPreferences {
	prefs := models.UserPreferences{
		LikedGenres:  LikedGenres(rated),
		TotalRatings: len(rated),
	}
	if prefs.LikedGenres == nil {
		prefs.LikedGenres = []string{}
	}

	var total int
	for _, rm := range rated {
		total += rm.Score
		switch {
		case rm.Score >= LikedScore:
			prefs.LikedCount++
		case rm.Score <= DislikedScore:
			prefs.DislikedCount++
		}
	}
	if len(rated) > 0 {
		prefs.AverageScore = math.Round(float64(total)/float64(len(rated))*100) / 100
	}
	return prefs
}
