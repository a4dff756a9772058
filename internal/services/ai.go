package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"cinefil_back_end/internal/models"
	"cinefil_back_end/internal/recommend"
	"cinefil_back_end/internal/utils"
)

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

	// MaxPromptCatalogTitles : nombre maximum de titres du catalogue
	// envoyés dans le prompt.
	MaxPromptCatalogTitles = 50

	// aiConfidence : confiance fixe des suggestions IA.
	aiConfidence = 0.9
)

// 60s : les appels au modèle sont lents ; au-delà on remonte un échec
// amont que l'appelant peut retenter.
var geminiClient = &http.Client{Timeout: 60 * time.Second}

// BuildAIPrompt construit le prompt en langage naturel : films aimés,
// films pas aimés, extrait du catalogue, et la consigne de répondre par
// un tableau JSON de titres.
func BuildAIPrompt(rated []models.RatedMovie, catalog []models.Movie) string {
	var liked, disliked []string
	for _, rm := range rated {
		switch {
		case rm.Score >= recommend.LikedScore:
			liked = append(liked, rm.Movie.Title)
		case rm.Score <= recommend.DislikedScore:
			disliked = append(disliked, rm.Movie.Title)
		}
	}

	var titles []string
	for _, m := range catalog {
		if len(titles) >= MaxPromptCatalogTitles {
			break
		}
		titles = append(titles, m.Title)
	}

	var b strings.Builder
	b.WriteString("Tu es un système de recommandation de films.\n")
	if len(liked) > 0 {
		b.WriteString("L'utilisateur a aimé : " + strings.Join(liked, ", ") + ".\n")
	}
	if len(disliked) > 0 {
		b.WriteString("L'utilisateur n'a pas aimé : " + strings.Join(disliked, ", ") + ".\n")
	}
	b.WriteString("Catalogue disponible : " + strings.Join(titles, ", ") + ".\n")
	b.WriteString("Réponds uniquement avec un tableau JSON des titres recommandés, ")
	b.WriteString(`par exemple ["Titre 1", "Titre 2"]. Ne recommande que des titres du catalogue.`)
	return b.String()
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateText envoie le prompt au modèle et retourne le texte brut de la
// première réponse.
func GenerateText(ctx context.Context, prompt string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", utils.Upstream("Recommandations IA indisponibles", fmt.Errorf("GEMINI_API_KEY non configurée"))
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", utils.Upstream("Recommandations IA indisponibles", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		geminiEndpoint+"?key="+apiKey, bytes.NewReader(payload))
	if err != nil {
		return "", utils.Upstream("Recommandations IA indisponibles", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := geminiClient.Do(req)
	if err != nil {
		// Timeout compris : échec amont, l'appelant peut retenter
		return "", utils.Upstream("Le modèle IA ne répond pas", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", utils.Upstream("Le modèle IA a renvoyé une erreur", fmt.Errorf("statut %d", resp.StatusCode))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", utils.Upstream("Réponse IA illisible", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", utils.Upstream("Réponse IA vide", errors.New("aucun candidat"))
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractTitlesArray repère le premier tableau JSON équilibré dans le
// texte libre du modèle (scan par appariement de crochets, en ignorant
// ceux à l'intérieur des chaînes) et le parse. Tout échec est terminal
// pour la requête : pas de repli sur une autre stratégie.
func ExtractTitlesArray(text string) ([]string, error) {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return nil, errors.New("aucun tableau JSON dans la réponse")
	}

	depth := 0
	inString := false
	escaped := false
	end := -1
scan:
	for i := start; i < len(text); i++ {
		ch := text[i]
		switch {
		case escaped:
			escaped = false
		case inString && ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
			// les crochets dans une chaîne ne comptent pas
		case ch == '[':
			depth++
		case ch == ']':
			depth--
			if depth == 0 {
				end = i
				break scan
			}
		}
	}
	if end < 0 {
		return nil, errors.New("tableau JSON non fermé dans la réponse")
	}

	var titles []string
	if err := json.Unmarshal([]byte(text[start:end+1]), &titles); err != nil {
		return nil, fmt.Errorf("tableau JSON malformé: %w", err)
	}
	return titles, nil
}

// AIRecommendations orchestre la stratégie IA : prompt, appel, extraction
// puis correspondance exacte des titres avec le catalogue (dédupliquée).
func AIRecommendations(ctx context.Context, rated []models.RatedMovie, catalog []models.Movie) ([]models.Recommendation, error) {
	prompt := BuildAIPrompt(rated, catalog)

	text, err := GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	titles, err := ExtractTitlesArray(text)
	if err != nil {
		return nil, utils.Upstream("Réponse IA inexploitable", err)
	}

	return MapTitlesToMovies(titles, catalog), nil
}

// MapTitlesToMovies fait correspondre les titres retournés par le modèle
// aux films du catalogue (titre exact, premier match, dédupliqué).
func MapTitlesToMovies(titles []string, catalog []models.Movie) []models.Recommendation {
	byTitle := make(map[string]models.Movie, len(catalog))
	for _, m := range catalog {
		if _, ok := byTitle[m.Title]; !ok {
			byTitle[m.Title] = m
		}
	}

	seen := make(map[string]struct{})
	recs := make([]models.Recommendation, 0, len(titles))
	for _, title := range titles {
		movie, ok := byTitle[title]
		if !ok {
			continue
		}
		if _, dup := seen[movie.ID.String()]; dup {
			continue
		}
		seen[movie.ID.String()] = struct{}{}
		recs = append(recs, models.Recommendation{
			Movie:      movie,
			Score:      aiConfidence,
			Reason:     "Suggéré par l'IA d'après vos goûts",
			Algorithm:  models.AlgoAI,
			Confidence: aiConfidence,
		})
	}
	return recs
}
