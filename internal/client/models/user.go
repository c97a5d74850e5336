// Package models defines the data the client exchanges with the API and
// keeps in durable storage.
package models

// User is the authenticated account as returned by the API. Identity is ID;
// Name, Email and AvatarURL change through profile and avatar updates.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Provider is a barber listed on the dashboard.
type Provider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}
