package cache

import (
	"context"
	"encoding/json"
	"time"

	"cinefil_back_end/internal/database"
	"cinefil_back_end/internal/models"
	"cinefil_back_end/internal/store"
)

const (
	UserCacheTTL = 5 * time.Minute
)

// GetUserFromCache récupère un utilisateur depuis Redis, ou depuis
// ScyllaDB avec mise en cache. Chaque requête authentifiée touche le
// profil : ce cache évite un aller-retour Scylla par appel.
func GetUserFromCache(ctx context.Context, users *store.UserStore, userID string) (*models.User, error) {
	key := "user:" + userID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	user, err := users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return &user, nil
}
