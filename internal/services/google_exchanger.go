package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alperendogan/devboard/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const googleTokenURL = "https://oauth2.googleapis.com/token"

// GoogleExchanger swaps an authorization code for the provider's ID
// token over a direct TLS connection to Google's token endpoint. The
// identity claims are read from that response; the direct exchange is
// what anchors trust in the code flow.
type GoogleExchanger struct {
	cfg    *config.Config
	client *http.Client
}

func NewGoogleExchanger(cfg *config.Config) *GoogleExchanger {
	return &GoogleExchanger{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type googleTokenResponse struct {
	IDToken string `json:"id_token"`
}

func (g *GoogleExchanger) Exchange(provider, code string) (*Identity, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", g.cfg.GoogleClientID)
	form.Set("client_secret", g.cfg.GoogleClientSecret)
	form.Set("redirect_uri", g.cfg.GoogleRedirectURL)
	form.Set("grant_type", "authorization_code")

	resp, err := g.client.Post(googleTokenURL, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("token endpoint request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenResp googleTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.IDToken == "" {
		return nil, errors.New("token response missing id_token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenResp.IDToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse id_token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if sub == "" || email == "" {
		return nil, errors.New("id_token missing identity claims")
	}

	return &Identity{ProviderUserID: sub, Email: email, Name: name}, nil
}
