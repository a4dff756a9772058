package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"cinefil_back_end/internal/cache"
	"cinefil_back_end/internal/models"
	"cinefil_back_end/internal/store"
	"cinefil_back_end/internal/utils"
)

var stores = store.New()

// ================== AUTH LOCALE ==================

func Register(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.Validation("Corps de requête invalide"))
		return
	}

	switch {
	case strings.TrimSpace(input.Username) == "":
		utils.RespondError(c, utils.Validation("Le champ username est requis"))
		return
	case strings.TrimSpace(input.Email) == "":
		utils.RespondError(c, utils.Validation("Le champ email est requis"))
		return
	case input.Password == "":
		utils.RespondError(c, utils.Validation("Le champ password est requis"))
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Inscription impossible", err))
		return
	}

	user := models.User{
		ID:       store.NewUserID(),
		Username: strings.TrimSpace(input.Username),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: hashedPassword,
		Provider: "local",
	}

	if err := stores.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			utils.RespondError(c, utils.Conflict("Un compte avec cet email existe déjà"))
			return
		}
		utils.RespondError(c, utils.Upstream("Inscription impossible", err))
		return
	}

	// Email de bienvenue en tâche de fond, l'inscription n'attend pas le SMTP
	go func(email, username string) {
		if err := utils.SendWelcomeEmail(email, username); err != nil {
			log.Println("⚠️ Email de bienvenue non envoyé:", err)
		}
	}(user.Email, user.Username)

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Inscription impossible", err))
		return
	}

	log.Printf("✅ Nouvel utilisateur inscrit: %s", user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"userId":   user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.Validation("Corps de requête invalide"))
		return
	}

	user, err := stores.Users.ByEmail(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(c, utils.Auth("Identifiants invalides"))
			return
		}
		utils.RespondError(c, utils.Upstream("Connexion impossible", err))
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		utils.RespondError(c, utils.Auth("Identifiants invalides"))
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Connexion impossible", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me retourne le profil de l'utilisateur authentifié (servi par le cache
// Redis, ScyllaDB en repli).
func Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := cache.GetUserFromCache(c.Request.Context(), stores.Users, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(c, utils.NotFound("Utilisateur introuvable"))
			return
		}
		utils.RespondError(c, utils.Upstream("Profil indisponible", err))
		return
	}

	c.JSON(http.StatusOK, user)
}

// ================== OAUTH (Google / Facebook) ==================

type ctxKey string

const ProviderKey ctxKey = "provider"

func BeginOAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		utils.RespondError(c, utils.Validation("Aucun provider spécifié"))
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// OAuthCallback termine le flux gothic puis rattache (ou crée) le compte
// local et redirige vers le front avec notre JWT.
func OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		utils.RespondError(c, utils.Validation("Aucun provider spécifié"))
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Échec de l'authentification externe", err))
		return
	}

	user, err := findOrCreateOAuthUser(c, provider, gothUser.UserID, gothUser.Name, gothUser.Email)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Connexion impossible", err))
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Connexion impossible", err))
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		c.JSON(http.StatusOK, gin.H{"token": token})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, frontend+"/auth/callback?token="+url.QueryEscape(token))
}

// findOrCreateOAuthUser rattache l'identité externe à un compte local,
// créé à la volée au premier passage. Un Create perdant la course LWT
// sur l'email n'est pas une erreur: le compte existe déjà.
func findOrCreateOAuthUser(c *gin.Context, provider, providerID, name, email string) (models.User, error) {
	user, err := stores.Users.ByEmail(c.Request.Context(), email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	user = models.User{
		ID:         store.NewUserID(),
		Username:   name,
		Email:      strings.ToLower(email),
		Provider:   provider,
		ProviderID: providerID,
	}
	if err := stores.Users.Create(c.Request.Context(), user); err != nil &&
		!errors.Is(err, store.ErrEmailTaken) {
		return models.User{}, err
	}
	return user, nil
}
