package models

type User struct {
	ID         string `json:"user_id"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email"`
	Password   string `json:"-"`
	Provider   string `json:"provider,omitempty"`
	ProviderID string `json:"-"`
}
