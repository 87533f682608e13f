package services

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/alperendogan/devboard/internal/config"
	"github.com/alperendogan/devboard/internal/models"
	"github.com/alperendogan/devboard/internal/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidState rejects callbacks whose state is unknown, expired or
// already consumed; a replayed or forged callback fails before any
// token exchange happens.
var ErrInvalidState = errors.New("invalid or expired sign-in state")

const (
	oauthStateBytes = 32

	googleAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"
)

// Identity is what the provider asserts about the user after a
// successful code exchange.
type Identity struct {
	ProviderUserID string
	Email          string
	Name           string
}

// TokenExchanger talks to the provider's token endpoint. It is an
// external collaborator; this service only owns the state half of the
// flow.
type TokenExchanger interface {
	Exchange(provider, code string) (*Identity, error)
}

type OAuthService struct {
	db        *gorm.DB
	cfg       *config.Config
	exchanger TokenExchanger
}

func NewOAuthService(db *gorm.DB, cfg *config.Config, exchanger TokenExchanger) *OAuthService {
	return &OAuthService{db: db, cfg: cfg, exchanger: exchanger}
}

// Start issues a fresh anti-forgery state and returns the provider
// authorization URL carrying it. Only the state's hash is stored.
func (s *OAuthService) Start(provider string) (string, error) {
	rawState, err := security.GenerateToken(oauthStateBytes)
	if err != nil {
		return "", err
	}

	record := models.OAuthState{
		ID:        uuid.New(),
		Provider:  provider,
		StateHash: security.HashToken(rawState),
		ExpiresAt: time.Now().Add(s.cfg.OAuthStateExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store sign-in state: %w", err)
	}

	q := url.Values{}
	q.Set("client_id", s.cfg.GoogleClientID)
	q.Set("redirect_uri", s.cfg.GoogleRedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", s.cfg.GoogleScopes)
	q.Set("state", rawState)

	return googleAuthURL + "?" + q.Encode(), nil
}

// Complete consumes the callback's state and only then exchanges the
// authorization code. It returns the local account for the asserted
// identity, creating one on first sign-in.
func (s *OAuthService) Complete(provider, state, code string) (*models.User, error) {
	if err := s.consumeState(provider, state); err != nil {
		return nil, err
	}

	identity, err := s.exchanger.Exchange(provider, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	email := NormalizeEmail(identity.Email)

	var user models.User
	err = s.db.Where("provider_user_id = ? OR email = ?", identity.ProviderUserID, email).
		First(&user).Error
	if err != nil {
		user = models.User{
			ID:             uuid.New(),
			Email:          email,
			Password:       "",
			DisplayName:    identity.Name,
			EmailVerified:  true,
			AuthProvider:   provider,
			ProviderUserID: &identity.ProviderUserID,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil
	}

	if user.ProviderUserID == nil {
		if err := s.db.Model(&user).Updates(map[string]interface{}{
			"provider_user_id": identity.ProviderUserID,
			"auth_provider":    provider,
		}).Error; err != nil {
			return nil, err
		}
		user.ProviderUserID = &identity.ProviderUserID
		user.AuthProvider = provider
	}

	return &user, nil
}

// consumeState marks the state row used via compare-and-set, so a
// replayed callback loses even when two arrive concurrently.
func (s *OAuthService) consumeState(provider, state string) error {
	now := time.Now()

	res := s.db.Model(&models.OAuthState{}).
		Where("provider = ? AND state_hash = ? AND used_at IS NULL AND expires_at > ?",
			provider, security.HashToken(state), now).
		Update("used_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidState
	}
	return nil
}
