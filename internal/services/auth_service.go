package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alperendogan/devboard/internal/config"
	"github.com/alperendogan/devboard/internal/dto"
	"github.com/alperendogan/devboard/internal/models"
	"github.com/alperendogan/devboard/internal/security"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUserNotFound       = errors.New("user not found")
)

const sessionTokenBytes = 32

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// NormalizeEmail lowercases and trims an address. Every email
// comparison in the system goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Password:     hash,
		DisplayName:  req.DisplayName,
		AuthProvider: "email",
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.IssueSession(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(req.Email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !security.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.IssueSession(&user)
}

// IssueSession creates a session row holding the hash of a fresh
// opaque token and signs a short-lived access token. The opaque token
// goes into the session cookie; the JWT is for API clients.
func (s *AuthService) IssueSession(user *models.User) (*dto.AuthResponse, error) {
	rawToken, err := security.GenerateToken(sessionTokenBytes)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: security.HashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.SessionExpiry),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		SessionToken: rawToken,
		User: dto.UserResponse{
			ID:            user.ID,
			Email:         user.Email,
			DisplayName:   user.DisplayName,
			EmailVerified: user.EmailVerified,
			Onboarded:     user.Onboarded,
		},
	}, nil
}

// ResolveSession re-reads the session from the store and returns its
// user. Validity is derived from the store on every call; nothing is
// cached in the process.
func (s *AuthService) ResolveSession(rawToken string) (*models.User, error) {
	if rawToken == "" {
		return nil, ErrInvalidSession
	}

	var session models.Session
	err := s.db.Where("token_hash = ? AND revoked = false", security.HashToken(rawToken)).
		First(&session).Error
	if err != nil {
		return nil, ErrInvalidSession
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrInvalidSession
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", session.UserID).Error; err != nil {
		return nil, ErrInvalidSession
	}
	return &user, nil
}

// RevokeSession invalidates one session token.
func (s *AuthService) RevokeSession(rawToken string) error {
	return s.db.Model(&models.Session{}).
		Where("token_hash = ?", security.HashToken(rawToken)).
		Update("revoked", true).Error
}

// revokeUserSessions invalidates every outstanding session for a user.
// Runs inside the password-reset transaction.
func revokeUserSessions(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&models.Session{}).
		Where("user_id = ? AND revoked = false", userID).
		Update("revoked", true).Error
}

// CompleteOnboarding flips the one-way onboarding flag.
func (s *AuthService) CompleteOnboarding(userID uuid.UUID) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("onboarded", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
