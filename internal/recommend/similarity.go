package recommend

import (
	"sort"

	"cinefil_back_end/internal/models"
)

// Seuils et plafonds du moteur de recommandation.
const (
	// MinCommonMovies : en-dessous de 2 films communs la similarité
	// n'est pas définie et l'utilisateur est écarté.
	MinCommonMovies = 2

	// SimilarUserThreshold : seuil de similarité pour le collaboratif.
	SimilarUserThreshold = 0.6

	// HybridSimThreshold : seuil abaissé pour la passe collaborative
	// du mode hybride.
	HybridSimThreshold = 0.5

	// MaxSimilarUsers : nombre d'utilisateurs similaires retenus.
	MaxSimilarUsers = 5

	// LikedScore : note à partir de laquelle un film compte comme "aimé".
	LikedScore = 4

	// DislikedScore : note en-dessous de laquelle un film compte
	// comme "pas aimé" (prompt IA, profil de préférences).
	DislikedScore = 2

	// MaxRecommendations : taille maximale d'une liste de recommandations.
	MaxRecommendations = 10

	// MaxContentForHybrid : plafond de la part content-based du mode hybride.
	MaxContentForHybrid = 15

	// ContentConfidence : confiance fixe des recommandations par genre.
	ContentConfidence = 0.8

	// HybridContentScore : score fixe des candidats content-based en hybride.
	HybridContentScore = 0.7

	// HybridCollabWeight : pondération de la similarité en hybride.
	HybridCollabWeight = 0.8
)

// Rating est l'entrée minimale du moteur, indépendante du stockage.
// Le store garantit l'unicité par (UserID, MovieID) : la dernière note
// écrase la précédente.
type Rating struct {
	UserID  string
	MovieID string
	Score   int
}

// Similarity calcule la similarité entre deux utilisateurs à partir de
// leurs notes (movieID → score). Pour chaque film commun la proximité
// vaut (5 − |Δscore|) / 5 ; la similarité est la moyenne arithmétique
// des proximités. ok vaut false avec moins de 2 films communs.
func Similarity(a, b map[string]int) (sim float64, common int, ok bool) {
	var total float64
	for movieID, scoreA := range a {
		scoreB, shared := b[movieID]
		if !shared {
			continue
		}
		common++
		diff := scoreA - scoreB
		if diff < 0 {
			diff = -diff
		}
		total += float64(5-diff) / 5.0
	}

	if common < MinCommonMovies {
		return 0, common, false
	}
	return total / float64(common), common, true
}

// userPartition partitionne les notes par utilisateur en conservant
// l'ordre de découverte (nécessaire au tri stable exigé par le moteur).
type userPartition struct {
	order   []string
	ratings map[string][]Rating
}

func partitionByUser(all []Rating) *userPartition {
	p := &userPartition{ratings: make(map[string][]Rating)}
	for _, r := range all {
		if _, ok := p.ratings[r.UserID]; !ok {
			p.order = append(p.order, r.UserID)
		}
		p.ratings[r.UserID] = append(p.ratings[r.UserID], r)
	}
	return p
}

// scoresOf aplatit les notes d'un utilisateur en movieID → score.
func scoresOf(ratings []Rating) map[string]int {
	scores := make(map[string]int, len(ratings))
	for _, r := range ratings {
		scores[r.MovieID] = r.Score
	}
	return scores
}

// SimilarUsers retourne les utilisateurs dont la similarité avec userID
// dépasse strictement threshold, triés par similarité décroissante
// (tri stable : à égalité l'ordre de découverte est conservé), plafonnés
// à limit (0 = sans plafond).
func SimilarUsers(all []Rating, userID string, threshold float64, limit int) []models.UserSimilarity {
	p := partitionByUser(all)
	mine, ok := p.ratings[userID]
	if !ok {
		return nil
	}
	myScores := scoresOf(mine)

	var similar []models.UserSimilarity
	for _, otherID := range p.order {
		if otherID == userID {
			continue
		}
		sim, common, defined := Similarity(myScores, scoresOf(p.ratings[otherID]))
		if !defined || sim <= threshold {
			continue
		}
		similar = append(similar, models.UserSimilarity{
			UserID:           otherID,
			Similarity:       sim,
			CommonMovieCount: common,
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Similarity > similar[j].Similarity
	})

	if limit > 0 && len(similar) > limit {
		similar = similar[:limit]
	}
	return similar
}
