package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/shelfctl/internal/client/auth"
	"github.com/iudanet/shelfctl/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	authData, err := c.tokens.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'shelfctl login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	c.io.Println("Status: Authenticated (locally)")
	c.io.Printf("Username: %s\n", authData.Username)

	// Срок действия access token — только для отображения,
	// gateway сам обновит токен при первом 401
	if expiresAt := auth.ExpiresAt(authData.AccessToken); !expiresAt.IsZero() {
		c.io.Printf("Access token expires: %s\n", expiresAt.Format(time.RFC3339))
		if auth.IsExpired(authData.AccessToken) {
			c.io.Println("Access token has expired; it will be refreshed silently on the next call.")
		} else {
			c.io.Printf("Time remaining: %s\n", time.Until(expiresAt).Round(time.Second))
		}
	} else {
		c.io.Println("Access token is not decodable.")
	}

	// Проверяем сессию на сервере
	if err := c.session.FetchUser(ctx); err != nil {
		c.io.Println()
		c.io.Printf("Warning: profile fetch failed: %v\n", err)
		return nil
	}

	if user := c.session.CurrentUser(); user != nil {
		c.io.Println()
		c.io.Printf("Server session: OK (%s %s, role %s)\n", user.FirstName, user.LastName, user.Role)
	}

	return nil
}
