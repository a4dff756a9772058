package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"cinefil_back_end/internal/database"
	"cinefil_back_end/internal/models"
)

const movieIndex = "movies"

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// IndexMovie indexe un film dans Elasticsearch (appelé après chaque ajout
// ou import ; best effort, le film vit déjà dans ScyllaDB).
func IndexMovie(m models.Movie) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic non initialisé, impossible d'indexer:", m.Title)
		return
	}

	data, _ := json.Marshal(m)
	req := esapi.IndexRequest{
		Index:      movieIndex,
		DocumentID: m.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true", // rend la donnée immédiatement visible
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", m.Title, res.String())
	} else {
		log.Printf("✅ Film indexé dans Elasticsearch: %s", m.Title)
	}
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// SearchMovieIDs cherche les films dont le titre contient la sous-chaîne
// (insensible à la casse) et retourne leurs identifiants, plafonnés à max.
func SearchMovieIDs(ctx context.Context, query string, max int) ([]string, error) {
	if database.Elastic == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"size": max,
		"query": map[string]interface{}{
			"wildcard": map[string]interface{}{
				"title.keyword": map[string]interface{}{
					"value":            fmt.Sprintf("*%s*", query),
					"case_insensitive": true,
				},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{movieIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elastic a renvoyé une erreur: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("erreur décodage réponse Elastic: %v", err)
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
