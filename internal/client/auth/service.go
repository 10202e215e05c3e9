package auth

import (
	"context"
	"fmt"

	"github.com/iudanet/shelfctl/internal/client/storage"
	"github.com/iudanet/shelfctl/internal/validation"
	"github.com/iudanet/shelfctl/pkg/api"
)

// Gateway lists the API calls the auth service issues
type Gateway interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenPair, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Profile(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, req api.ProfileUpdate) (*api.User, error)
	ChangePassword(ctx context.Context, req api.ChangePasswordRequest) error
}

// Service предоставляет функции авторизации
type Service struct {
	gateway Gateway
	tokens  storage.TokenStorage
	session *Session
}

// NewService создает новый сервис авторизации
func NewService(gateway Gateway, tokens storage.TokenStorage, session *Session) *Service {
	return &Service{
		gateway: gateway,
		tokens:  tokens,
		session: session,
	}
}

// Login authenticates the user, persists the issued token pair and
// resolves the session via SetUser using a follow-up profile fetch.
func (s *Service) Login(ctx context.Context, username, password string) (*api.User, error) {
	// Валидация входных данных
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	pair, err := s.gateway.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	// Сохраняем токены до запроса профиля, gateway декорирует им запрос
	auth := &storage.AuthData{
		Username:     username,
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	}
	if err := s.tokens.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save tokens: %w", err)
	}

	user, err := s.gateway.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile after login: %w", err)
	}

	s.session.SetUser(user)
	return user, nil
}

// Register регистрирует нового пользователя
// Токены не выдаются, после регистрации нужен отдельный login
func (s *Service) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if req.Password != req.Password2 {
		return nil, fmt.Errorf("passwords do not match")
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("first name and last name are required")
	}

	resp, err := s.gateway.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return resp, nil
}

// UpdateProfile частично обновляет профиль и синхронизирует сессию
func (s *Service) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
	if update.Email != "" {
		if err := validation.ValidateEmail(update.Email); err != nil {
			return nil, fmt.Errorf("invalid email: %w", err)
		}
	}

	user, err := s.gateway.UpdateProfile(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("profile update failed: %w", err)
	}

	s.session.SetUser(user)
	return user, nil
}

// ChangePassword меняет пароль текущего пользователя
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return fmt.Errorf("old password cannot be empty")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("invalid new password: %w", err)
	}

	req := api.ChangePasswordRequest{
		OldPassword:  oldPassword,
		NewPassword:  newPassword,
		NewPassword2: newPassword,
	}
	if err := s.gateway.ChangePassword(ctx, req); err != nil {
		return fmt.Errorf("change password failed: %w", err)
	}

	return nil
}

// Logout удаляет локальную сессию; сервер своих сессий не хранит
func (s *Service) Logout(ctx context.Context) error {
	return s.session.Logout(ctx)
}
