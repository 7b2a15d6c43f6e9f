package accountsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Session is an authenticated view of the account service. It holds the
// token pair from login and refreshes the access token transparently when it
// is close to expiry.
type Session struct {
	client *SDKClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	user         User
}

func newSession(c *SDKClient, tokens TokenResponse) *Session {
	return &Session{
		client:       c,
		accessToken:  tokens.AccessToken,
		refreshToken: tokens.RefreshToken,
		expiresAt:    expiryFrom(tokens.ExpiresIn),
		user:         tokens.User,
	}
}

// expires_in is in milliseconds; keep a 30 second refresh buffer.
func expiryFrom(expiresInMillis int64) time.Time {
	return time.Now().
		Add(time.Duration(expiresInMillis) * time.Millisecond).
		Add(-30 * time.Second)
}

// User returns the profile captured at login or last refresh.
func (s *Session) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// AccessToken returns the current access token without refreshing it.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token, e.g. for persisting the
// session across restarts.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

// Logout tells the server the session is over. Tokens are not revoked
// server-side; discard the session after calling this.
func (s *Session) Logout(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
}

// GetTenant fetches the caller's tenant.
func (s *Session) GetTenant(ctx context.Context, tenantID string) (*Tenant, error) {
	var tenant Tenant
	if err := s.do(ctx, http.MethodGet, "/v1/tenants/"+tenantID, nil, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// ListUsers fetches the tenant's users.
func (s *Session) ListUsers(ctx context.Context, tenantID string) ([]User, error) {
	var users []User
	if err := s.do(ctx, http.MethodGet, "/v1/tenants/"+tenantID+"/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetPreferences fetches the tenant's settings.
func (s *Session) GetPreferences(ctx context.Context, tenantID string) (*Preference, error) {
	var pref Preference
	if err := s.do(ctx, http.MethodGet, "/v1/tenants/"+tenantID+"/preferences", nil, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

// getValidToken returns a usable access token, refreshing the pair when the
// current one is near expiry.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	tokens, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", err
	}

	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	s.expiresAt = expiryFrom(tokens.ExpiresIn)
	s.user = tokens.User
	return s.accessToken, nil
}

func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
