package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/shelfctl/pkg/api"
)

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "update" {
		return c.runProfileUpdate(ctx)
	}

	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Profile ===")
	c.io.Printf("Username:  %s\n", user.Username)
	c.io.Printf("Name:      %s %s\n", user.FirstName, user.LastName)
	c.io.Printf("Email:     %s\n", user.Email)
	if user.PhoneNumber != "" {
		c.io.Printf("Phone:     %s\n", user.PhoneNumber)
	}
	if user.Address != "" {
		c.io.Printf("Address:   %s\n", user.Address)
	}
	c.io.Printf("Role:      %s\n", user.Role)
	c.io.Printf("Joined:    %s\n", user.DateJoined)

	return nil
}

func (c *Cli) runProfileUpdate(ctx context.Context) error {
	if _, err := c.requireUser(ctx); err != nil {
		return err
	}

	c.io.Println("=== Update Profile ===")
	c.io.Println("Leave a field empty to keep its current value.")
	c.io.Println()

	update := api.ProfileUpdate{}

	var err error
	if update.Email, err = c.io.ReadInput("Email: "); err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if update.FirstName, err = c.io.ReadInput("First name: "); err != nil {
		return fmt.Errorf("failed to read first name: %w", err)
	}
	if update.LastName, err = c.io.ReadInput("Last name: "); err != nil {
		return fmt.Errorf("failed to read last name: %w", err)
	}
	if update.PhoneNumber, err = c.io.ReadInput("Phone number: "); err != nil {
		return fmt.Errorf("failed to read phone number: %w", err)
	}
	if update.Address, err = c.io.ReadInput("Address: "); err != nil {
		return fmt.Errorf("failed to read address: %w", err)
	}

	if update == (api.ProfileUpdate{}) {
		c.io.Println("Nothing to update.")
		return nil
	}

	user, err := c.authSvc.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Profile updated!")
	c.io.Printf("Name:  %s %s\n", user.FirstName, user.LastName)
	c.io.Printf("Email: %s\n", user.Email)

	return nil
}

func (c *Cli) runChangePassword(ctx context.Context) error {
	if _, err := c.requireUser(ctx); err != nil {
		return err
	}

	c.io.Println("=== Change Password ===")
	c.io.Println()

	oldPassword, err := c.io.ReadPassword("Current password: ")
	if err != nil {
		return fmt.Errorf("failed to read current password: %w", err)
	}
	newPassword, err := c.io.ReadPassword("New password (min 8 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read new password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirm new password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if newPassword != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := c.authSvc.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Password changed!")

	return nil
}
