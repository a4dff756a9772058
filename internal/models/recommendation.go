package models

// Algorithmes de recommandation exposés par l'API.
const (
	AlgoContentBased  = "content-based"
	AlgoCollaborative = "collaborative"
	AlgoHybrid        = "hybrid"
	AlgoAI            = "ai"
)

// Recommendation est dérivée à chaque requête, jamais persistée.
type Recommendation struct {
	Movie      Movie   `json:"movie"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason"`
	Algorithm  string  `json:"algorithm"`
	Confidence float64 `json:"confidence"`
}

// UserSimilarity est dérivée à chaque requête, jamais persistée.
// Similarity n'est définie que si CommonMovieCount >= 2.
type UserSimilarity struct {
	UserID           string  `json:"user_id"`
	Similarity       float64 `json:"similarity"` // 0..1
	CommonMovieCount int     `json:"common_movie_count"`
}

// UserPreferences résume le profil de goûts du demandeur
// (endpoint /recommendations/preferences).
type UserPreferences struct {
	LikedGenres   []string `json:"liked_genres"`
	LikedCount    int      `json:"liked_count"`
	DislikedCount int      `json:"disliked_count"`
	TotalRatings  int      `json:"total_ratings"`
	AverageScore  float64  `json:"average_score"`
}
