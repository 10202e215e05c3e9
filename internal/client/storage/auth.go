package storage

import "context"

// TokenStorage defines the durable client-side cache for the bearer
// token pair. It is pure key/value: no network access, no token
// inspection. Everything above it reads tokens only through the gateway.
type TokenStorage interface {
	// SaveAuth stores the token pair, replacing any previous one
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the stored token pair.
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the stored token pair (logout)
	DeleteAuth(ctx context.Context) error
}

// ClientIDStorage keeps the install-unique client identifier that the
// gateway attaches to outgoing requests.
type ClientIDStorage interface {
	// SaveClientID persists the generated client ID
	SaveClientID(ctx context.Context, id string) error

	// GetClientID returns the stored client ID, or "" when none exists yet
	GetClientID(ctx context.Context) (string, error)
}

// AuthData represents the persisted session credentials. Tokens are
// stored as-is: they are opaque bearer strings whose expiry lives inside
// the access token itself.
type AuthData struct {
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
