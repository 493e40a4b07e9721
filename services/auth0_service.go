package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kendall-kelly/cafe-tropis-api/config"
)

// PasswordRealmGrant is Auth0's resource-owner password grant scoped to a connection
const PasswordRealmGrant = "http://auth0.com/oauth/grant-type/password-realm"

// ErrInvalidCredentials is returned when Auth0 rejects an email/password pair
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrTokenRejected is returned when Auth0 no longer accepts an access token
var ErrTokenRejected = errors.New("access token rejected")

// Auth0UserInfo represents the user information returned from Auth0's /userinfo endpoint
type Auth0UserInfo struct {
	Sub   string `json:"sub"` // Auth0 user ID
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Auth0Tokens is the token set issued to a staff member on login
type Auth0Tokens struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token,omitempty"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Auth0Service handles interactions with Auth0 API
type Auth0Service struct {
	domain       string
	audience     string
	clientID     string
	clientSecret string
	connection   string
	httpClient   *http.Client
}

// NewAuth0Service creates a new Auth0 service instance
func NewAuth0Service(cfg *config.Config) *Auth0Service {
	return &Auth0Service{
		domain:       cfg.Auth0Domain,
		audience:     cfg.Auth0Audience,
		clientID:     cfg.Auth0ClientID,
		clientSecret: cfg.Auth0ClientSecret,
		connection:   cfg.Auth0Connection,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// endpoint builds an Auth0 URL. A domain that already carries a protocol
// (used by tests) is taken as-is.
func (s *Auth0Service) endpoint(path string) string {
	if strings.HasPrefix(s.domain, "http://") || strings.HasPrefix(s.domain, "https://") {
		return strings.TrimSuffix(s.domain, "/") + path
	}
	return fmt.Sprintf("https://%s%s", s.domain, path)
}

// PasswordLogin exchanges a staff email and password for tokens
func (s *Auth0Service) PasswordLogin(ctx context.Context, email, password string) (*Auth0Tokens, error) {
	payload, err := json.Marshal(map[string]string{
		"grant_type":    PasswordRealmGrant,
		"username":      email,
		"password":      password,
		"audience":      s.audience,
		"client_id":     s.clientID,
		"client_secret": s.clientSecret,
		"realm":         s.connection,
		"scope":         "openid profile email",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint("/oauth/token"), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidCredentials
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var tokens Auth0Tokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &tokens, nil
}

// GetUserInfo fetches user information from Auth0's /userinfo endpoint
// accessToken is the JWT access token from the Authorization header
func (s *Auth0Service) GetUserInfo(ctx context.Context, accessToken string) (*Auth0UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint("/userinfo"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call userinfo endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrTokenRejected
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("userinfo endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var userInfo Auth0UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	return &userInfo, nil
}
