package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/shelfctl/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	req := api.RegisterRequest{}

	var err error
	if req.Username, err = c.io.ReadInput("Username: "); err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if req.Email, err = c.io.ReadInput("Email: "); err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if req.FirstName, err = c.io.ReadInput("First name: "); err != nil {
		return fmt.Errorf("failed to read first name: %w", err)
	}
	if req.LastName, err = c.io.ReadInput("Last name: "); err != nil {
		return fmt.Errorf("failed to read last name: %w", err)
	}
	if req.PhoneNumber, err = c.io.ReadInput("Phone number (optional): "); err != nil {
		return fmt.Errorf("failed to read phone number: %w", err)
	}
	if req.Address, err = c.io.ReadInput("Address (optional): "); err != nil {
		return fmt.Errorf("failed to read address: %w", err)
	}

	if req.Password, err = c.io.ReadPassword("Password (min 8 chars): "); err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if req.Password2, err = c.io.ReadPassword("Confirm password: "); err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	c.io.Println()
	c.io.Println("Registering user...")

	resp, err := c.authSvc.Register(ctx, req)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Username: %s\n", resp.User.Username)
	if resp.Message != "" {
		c.io.Println(resp.Message)
	}
	c.io.Println()
	c.io.Println("Please run 'shelfctl login' to start using the library.")

	return nil
}
