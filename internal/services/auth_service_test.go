package services

import (
	"testing"

	"github.com/alperendogan/devboard/internal/dto"
	"github.com/alperendogan/devboard/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestDB(t), newTestConfig())
}

func TestRegister_And_Login(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:       "Alice@Example.COM",
		Password:    "hunter2hunter2",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.SessionToken)

	// Stored credential is a hash, never the plaintext.
	var user models.User
	require.NoError(t, svc.db.First(&user, "email = ?", "alice@example.com").Error)
	assert.NotContains(t, user.Password, "hunter2hunter2")

	// Login matches case-insensitively on email.
	login, err := svc.Login(&dto.LoginRequest{Email: "ALICE@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "A@X.com", Password: "password456"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSession_Lifecycle(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.ResolveSession(resp.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)

	require.NoError(t, svc.RevokeSession(resp.SessionToken))

	_, err = svc.ResolveSession(resp.SessionToken)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestResolveSession_Garbage(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ResolveSession("")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.ResolveSession("not-a-real-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestAccessToken_Claims(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "a@x.com", claims["email"])
}

func TestCompleteOnboarding(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)
	assert.False(t, resp.User.Onboarded)

	require.NoError(t, svc.CompleteOnboarding(resp.User.ID))

	var user models.User
	require.NoError(t, svc.db.First(&user, "id = ?", resp.User.ID).Error)
	assert.True(t, user.Onboarded)

	assert.ErrorIs(t, svc.CompleteOnboarding(uuid.New()), ErrUserNotFound)
}
