package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/minio/minio-go/v7"

	"cinefil_back_end/internal/database"
)

// StorePoster télécharge l'affiche depuis son URL d'origine (OMDb) et la
// copie dans le bucket MinIO. Retourne l'URL servie par MinIO, ou l'URL
// d'origine si le stockage échoue : l'import ne doit pas casser pour une
// affiche.
func StorePoster(ctx context.Context, movieID, posterURL string) string {
	if database.MinIO == nil || posterURL == "" || posterURL == "N/A" {
		return posterURL
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "posters"
	}

	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, posterURL, nil)
	if err != nil {
		return posterURL
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Println("⚠️ Téléchargement affiche impossible:", err)
		return posterURL
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Println("⚠️ Affiche indisponible, statut:", resp.StatusCode)
		return posterURL
	}

	objectName := movieID + ".jpg"
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err = database.MinIO.PutObject(ctx, bucket, objectName, resp.Body, resp.ContentLength,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.Println("⚠️ Erreur stockage affiche MinIO:", err)
		return posterURL
	}

	log.Printf("🪣 Affiche stockée dans MinIO: %s", objectName)
	return fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
}
