package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"cinefil_back_end/internal/auth"
	"cinefil_back_end/internal/utils"
)

// Providers: configs oauth2 brutes pour le flux mobile. Le flux web
// (redirections navigateur) passe par gothic, voir auth.go.
var Providers = map[string]*auth.OAuthProvider{}

func InitProviders() {
	Providers["google"] = &auth.OAuthProvider{
		Name: "google",
		Config: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}

	Providers["facebook"] = &auth.OAuthProvider{
		Name: "facebook",
		Config: &oauth2.Config{
			ClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
			ClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("FACEBOOK_REDIRECT_URL"),
			Scopes:       []string{"email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://www.facebook.com/v15.0/dialog/oauth",
				TokenURL: "https://graph.facebook.com/v15.0/oauth/access_token",
			},
		},
		UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
	}
}

// MobileAuthURL retourne l'URL d'autorisation à ouvrir dans le webview
// mobile. Le state est généré côté app et revérifié par elle au retour.
func MobileAuthURL(c *gin.Context) {
	provider, ok := Providers[c.Param("provider")]
	if !ok {
		utils.RespondError(c, utils.Validation("Provider inconnu"))
		return
	}

	state := c.Query("state")
	if state == "" {
		utils.RespondError(c, utils.Validation("Le paramètre state est requis"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": provider.GetAuthURL(state)})
}

// MobileOAuth échange un code d'autorisation obtenu côté app mobile
// contre notre JWT. Pas de session ni de redirection ici.
func MobileOAuth(c *gin.Context) {
	provider, ok := Providers[c.Param("provider")]
	if !ok {
		utils.RespondError(c, utils.Validation("Provider inconnu"))
		return
	}

	var input struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Code == "" {
		utils.RespondError(c, utils.Validation("Le champ code est requis"))
		return
	}

	token, err := provider.Exchange(c.Request.Context(), input.Code)
	if err != nil {
		utils.RespondError(c, utils.Auth("Code OAuth invalide ou expiré"))
		return
	}

	info, err := provider.FetchUser(c.Request.Context(), token)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Échec de l'authentification externe", err))
		return
	}

	user, err := findOrCreateOAuthUser(c, provider.Name, info.ID, info.Name, info.Email)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Connexion impossible", err))
		return
	}

	jwt, err := utils.GenerateJWT(user)
	if err != nil {
		utils.RespondError(c, utils.Upstream("Connexion impossible", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": jwt})
}
