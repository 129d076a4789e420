package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

// AuthGateway implements ports.AuthGateway: token issuance plus the account
// endpoints.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token performs the OAuth2 password grant. This is the one backend call
// that authenticates with Basic client credentials instead of a bearer
// token, and the one call whose body is form encoded rather than JSON.
func (g *AuthGateway) Token(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.client.cfg.BaseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(g.client.cfg.ClientID, g.client.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return "", domain.ErrInvalidCredentials
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return "", &APIError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(raw),
		}
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", domain.ErrInvalidCredentials
	}
	return token.AccessToken, nil
}

// Me fetches the authenticated profile.
func (g *AuthGateway) Me(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := g.client.get(ctx, token, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RecoverToken asks the backend to email a password-recovery token.
func (g *AuthGateway) RecoverToken(ctx context.Context, req ports.RecoverRequest) error {
	return g.client.post(ctx, "", "/auth/recover-token", req, nil)
}

type newPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// NewPassword redeems a recovery token for a new password.
func (g *AuthGateway) NewPassword(ctx context.Context, token, newPassword string) error {
	return g.client.put(ctx, "", "/auth/new-password", newPasswordRequest{
		Token:       token,
		NewPassword: newPassword,
	}, nil)
}
