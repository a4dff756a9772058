package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// OAuthProvider enveloppe la config oauth2 d'un fournisseur externe,
// utilisée par le flux mobile (échange de code hors gothic).
type OAuthProvider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
}

// UserInfo porte le strict nécessaire pour rattacher un compte local.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (p *OAuthProvider) GetAuthURL(state string) string {
	return p.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.Config.Exchange(ctx, code)
}

// FetchUser interroge l'endpoint userinfo du fournisseur avec le token obtenu.
func (p *OAuthProvider) FetchUser(ctx context.Context, token *oauth2.Token) (UserInfo, error) {
	var info UserInfo

	resp, err := p.Config.Client(ctx, token).Get(p.UserInfoURL)
	if err != nil {
		return info, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("userinfo %s: statut %d", p.Name, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, err
	}
	if info.Email == "" {
		return info, fmt.Errorf("userinfo %s: email absent de la réponse", p.Name)
	}
	return info, nil
}
