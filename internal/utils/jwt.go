package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cinefil_back_end/internal/models"
)

// tokenTTL: durée de vie des tokens émis. Pas de refresh token,
// le front redemande un login à l'expiration.
const tokenTTL = 24 * time.Hour

// GenerateJWT émet un token HS256 portant l'identité de l'utilisateur.
// Le secret est vérifié au démarrage du serveur, son absence ici est
// une erreur de configuration.
func GenerateJWT(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET non configuré")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
