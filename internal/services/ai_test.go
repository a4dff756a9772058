package services

import (
	"strings"
	"testing"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"cinefil_back_end/internal/models"
)

func TestExtractTitlesArray(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{
			name: "tableau noyé dans du texte libre",
			text: "Voici mes suggestions :\n[\"The Matrix\", \"Inception\"]\nBon visionnage !",
			want: []string{"The Matrix", "Inception"},
		},
		{
			name: "crochets à l'intérieur d'un titre",
			text: `Je propose ["Kill Bill [Vol. 1]", "Alien"] pour vous`,
			want: []string{"Kill Bill [Vol. 1]", "Alien"},
		},
		{
			name: "guillemet échappé dans un titre",
			text: `["L'\"Odyssée\"", "Dune"]`,
			want: []string{`L'"Odyssée"`, "Dune"},
		},
		{
			name:    "aucun tableau",
			text:    "Désolé, je ne peux pas répondre.",
			wantErr: true,
		},
		{
			name:    "tableau jamais fermé",
			text:    `Voici : ["The Matrix", "Inception"`,
			wantErr: true,
		},
		{
			name:    "tableau malformé",
			text:    `[The Matrix, Inception]`,
			wantErr: true,
		},
		{
			name: "tableau vide",
			text: "Rien à recommander : []",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTitlesArray(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("erreur attendue, reçu %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("erreur inattendue: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("titres = %v, attendu %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("titres = %v, attendu %v", got, tt.want)
				}
			}
		})
	}
}

func aiMovie(title string) models.Movie {
	return models.Movie{ID: gocql.UUID(uuid.New()), Title: title, Genre: "Sci-Fi"}
}

func TestMapTitlesToMovies(t *testing.T) {
	matrix := aiMovie("The Matrix")
	dune := aiMovie("Dune")
	catalog := []models.Movie{matrix, dune}

	recs := MapTitlesToMovies([]string{
		"The Matrix",
		"Inconnu au catalogue", // ignoré
		"The Matrix",           // doublon ignoré
		"Dune",
	}, catalog)

	if len(recs) != 2 {
		t.Fatalf("%d recommandations, attendu 2: %+v", len(recs), recs)
	}
	if recs[0].Movie.ID != matrix.ID || recs[1].Movie.ID != dune.ID {
		t.Fatalf("correspondance inattendue: %+v", recs)
	}
	for _, rec := range recs {
		if rec.Algorithm != models.AlgoAI {
			t.Fatalf("algorithme = %s, attendu %s", rec.Algorithm, models.AlgoAI)
		}
	}
}

func TestBuildAIPrompt(t *testing.T) {
	liked := aiMovie("The Matrix")
	hated := aiMovie("Titanic")
	rated := []models.RatedMovie{
		{Rating: models.Rating{Score: 5}, Movie: liked},
		{Rating: models.Rating{Score: 1}, Movie: hated},
		{Rating: models.Rating{Score: 3}, Movie: aiMovie("Neutre")}, // ni aimé ni détesté
	}

	var catalog []models.Movie
	for i := 0; i < 60; i++ {
		catalog = append(catalog, aiMovie("Film "+string(rune('A'+i%26))))
	}

	prompt := BuildAIPrompt(rated, catalog)
	if !strings.Contains(prompt, "The Matrix") {
		t.Fatal("le prompt devrait citer les films aimés")
	}
	if !strings.Contains(prompt, "Titanic") {
		t.Fatal("le prompt devrait citer les films pas aimés")
	}
	if strings.Contains(prompt, "Neutre") {
		t.Fatal("un film noté 3 ne devrait apparaître ni en aimé ni en détesté")
	}
	// Plafond de 50 titres du catalogue
	if got := strings.Count(prompt, "Film "); got != MaxPromptCatalogTitles {
		t.Fatalf("%d titres du catalogue dans le prompt, attendu %d", got, MaxPromptCatalogTitles)
	}
}
