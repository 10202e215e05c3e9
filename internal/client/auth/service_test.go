package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/shelfctl/pkg/api"
)

// mockGateway implements Gateway for testing
type mockGateway struct {
	loginResp     *api.TokenPair
	loginErr      error
	registerResp  *api.RegisterResponse
	registerErr   error
	profileResp   *api.User
	profileErr    error
	updateResp    *api.User
	updateErr     error
	passwordErr   error
	lastLogin     api.LoginRequest
	lastRegister  api.RegisterRequest
	lastPassword  api.ChangePasswordRequest
	profileCalls  int
	passwordCalls int
}

func (m *mockGateway) Login(ctx context.Context, req api.LoginRequest) (*api.TokenPair, error) {
	m.lastLogin = req
	return m.loginResp, m.loginErr
}

func (m *mockGateway) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	m.lastRegister = req
	return m.registerResp, m.registerErr
}

func (m *mockGateway) Profile(ctx context.Context) (*api.User, error) {
	m.profileCalls++
	return m.profileResp, m.profileErr
}

func (m *mockGateway) UpdateProfile(ctx context.Context, req api.ProfileUpdate) (*api.User, error) {
	return m.updateResp, m.updateErr
}

func (m *mockGateway) ChangePassword(ctx context.Context, req api.ChangePasswordRequest) error {
	m.passwordCalls++
	m.lastPassword = req
	return m.passwordErr
}

func newTestService(gateway *mockGateway, tokens *mockTokenStorage) (*Service, *Session) {
	session := NewSession(tokens, gateway)
	return NewService(gateway, tokens, session), session
}

func TestService_Login_Success(t *testing.T) {
	ctx := context.Background()
	gateway := &mockGateway{
		loginResp:   &api.TokenPair{Access: "access-1", Refresh: "refresh-1"},
		profileResp: testUser(),
	}
	tokens := &mockTokenStorage{}
	svc, session := newTestService(gateway, tokens)

	user, err := svc.Login(ctx, "reader1", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "reader1", gateway.lastLogin.Username)

	// Токены сохранены
	stored, err := tokens.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", stored.AccessToken)
	assert.Equal(t, "refresh-1", stored.RefreshToken)
	assert.Equal(t, "reader1", stored.Username)

	// Сессия разрешена без повторного запроса профиля
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, 1, gateway.profileCalls)
}

func TestService_Login_Validation(t *testing.T) {
	ctx := context.Background()
	gateway := &mockGateway{}
	svc, _ := newTestService(gateway, &mockTokenStorage{})

	_, err := svc.Login(ctx, "", "password123")
	assert.Error(t, err)

	_, err = svc.Login(ctx, "reader1", "")
	assert.Error(t, err)

	// До gateway вызов не дошел
	assert.Empty(t, gateway.lastLogin.Username)
}

func TestService_Login_ServerRejects(t *testing.T) {
	ctx := context.Background()
	gateway := &mockGateway{loginErr: fmt.Errorf("server error (401): bad credentials")}
	tokens := &mockTokenStorage{}
	svc, session := newTestService(gateway, tokens)

	_, err := svc.Login(ctx, "reader1", "wrongpassword")
	require.Error(t, err)

	// Ничего не сохранено, сессия не установлена
	_, getErr := tokens.GetAuth(ctx)
	assert.Error(t, getErr)
	assert.False(t, session.IsAuthenticated())
}

func TestService_Register_Validation(t *testing.T) {
	ctx := context.Background()
	gateway := &mockGateway{registerResp: &api.RegisterResponse{Message: "ok"}}
	svc, _ := newTestService(gateway, &mockTokenStorage{})

	valid := api.RegisterRequest{
		Username:  "reader1",
		Email:     "reader@example.com",
		Password:  "password123",
		Password2: "password123",
		FirstName: "Ivan",
		LastName:  "Petrov",
	}

	tests := []struct {
		mutate  func(r *api.RegisterRequest)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(r *api.RegisterRequest) {}, wantErr: false},
		{name: "bad email", mutate: func(r *api.RegisterRequest) { r.Email = "nope" }, wantErr: true},
		{name: "short password", mutate: func(r *api.RegisterRequest) { r.Password = "short"; r.Password2 = "short" }, wantErr: true},
		{name: "mismatch", mutate: func(r *api.RegisterRequest) { r.Password2 = "different123" }, wantErr: true},
		{name: "no first name", mutate: func(r *api.RegisterRequest) { r.FirstName = "" }, wantErr: true},
		{name: "bad username", mutate: func(r *api.RegisterRequest) { r.Username = "a" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := svc.Register(ctx, req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	gateway := &mockGateway{}
	svc, _ := newTestService(gateway, &mockTokenStorage{})

	err := svc.ChangePassword(ctx, "oldpassword", "newpassword1")
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.passwordCalls)
	assert.Equal(t, "oldpassword", gateway.lastPassword.OldPassword)
	assert.Equal(t, "newpassword1", gateway.lastPassword.NewPassword)
	assert.Equal(t, "newpassword1", gateway.lastPassword.NewPassword2)

	// Слишком короткий новый пароль отклоняется до запроса
	err = svc.ChangePassword(ctx, "oldpassword", "short")
	assert.Error(t, err)
	assert.Equal(t, 1, gateway.passwordCalls)
}

func TestService_UpdateProfile_SyncsSession(t *testing.T) {
	ctx := context.Background()
	updated := testUser()
	updated.Email = "new@example.com"
	gateway := &mockGateway{updateResp: updated}
	svc, session := newTestService(gateway, &mockTokenStorage{})

	user, err := svc.UpdateProfile(ctx, api.ProfileUpdate{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	require.NotNil(t, session.CurrentUser())
	assert.Equal(t, "new@example.com", session.CurrentUser().Email)
}
