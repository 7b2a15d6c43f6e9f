package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harborlane/tenantd/internal/accounts/domain"
	"github.com/harborlane/tenantd/pkg/cryptox"
	"github.com/harborlane/tenantd/pkg/slogx"
)

var (
	ErrInvalidCredentials     = errors.New("invalid_credentials")
	ErrInvalidToken           = errors.New("invalid_token")
	ErrInvalidTokenFormat     = errors.New("invalid_token_format")
	ErrUserNotFoundOrInactive = errors.New("user_not_found_or_inactive")
)

const tokenTypeBearer = "Bearer"

// AuthService orchestrates login, refresh and logout. Login deliberately
// collapses every failure mode into ErrInvalidCredentials so callers cannot
// probe which tenants or emails exist. Refresh is more talkative: the token
// has already proven possession, so account-state errors are surfaced.
type AuthService struct {
	Resolver *PrincipalResolver
	Tokens   *TokenService
}

// Login authenticates (tenantID, email, password) and issues a token pair.
// Every failure returns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, tenantID, email, password string) (*domain.LoginResult, error) {
	l := slogx.FromContext(ctx)
	username := domain.CompositeUsername(tenantID, email)

	principal, err := s.Resolver.Resolve(ctx, username)
	if err != nil {
		if errors.Is(err, ErrMalformedIdentity) || errors.Is(err, ErrPrincipalNotFound) {
			l.Info("login rejected", slog.String("tenant_id", tenantID))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// An empty stored hash can never match; VerifyPassword fails closed.
	if err := cryptox.VerifyPassword(password, principal.PasswordHash); err != nil {
		l.Info("login rejected", slog.String("tenant_id", tenantID))
		return nil, ErrInvalidCredentials
	}

	result, err := s.issuePair(principal)
	if err != nil {
		return nil, err
	}

	// The only persisted side effect of login, applied after everything
	// else has succeeded.
	now := time.Now().UTC()
	if err := s.Resolver.Store.Users().UpdateLastLogin(ctx, principal.User.ID, now); err != nil {
		return nil, err
	}
	result.User.LastLoginAt = &now

	l.Info("login succeeded",
		slog.String("tenant_id", tenantID),
		slog.String("user_id", principal.User.ID),
	)
	return result, nil
}

// Refresh validates a refresh token and issues a fresh pair. The new access
// token carries the user's current role, so role changes apply on refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	if !s.Tokens.IsValid(refreshToken) {
		return nil, ErrInvalidToken
	}

	subject, err := s.Tokens.ExtractSubject(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if _, _, ok := domain.SplitCompositeUsername(subject); !ok {
		return nil, ErrInvalidTokenFormat
	}

	principal, err := s.Resolver.Resolve(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrMalformedIdentity) {
			return nil, ErrInvalidTokenFormat
		}
		if errors.Is(err, ErrPrincipalNotFound) {
			return nil, ErrUserNotFoundOrInactive
		}
		return nil, err
	}

	result, err := s.issuePair(principal)
	if err != nil {
		return nil, err
	}

	l.Info("token refreshed",
		slog.String("tenant_id", principal.User.TenantID),
		slog.String("user_id", principal.User.ID),
	)
	return result, nil
}

// Logout is stateless: tokens are not revoked, they simply expire. The call
// exists so clients have a definite end-of-session signal and so the event
// lands in the audit log.
func (s *AuthService) Logout(ctx context.Context, accessToken string) {
	l := slogx.FromContext(ctx)

	if !s.Tokens.IsValid(accessToken) {
		l.Info("logout with unverifiable token")
		return
	}

	subject, _ := s.Tokens.ExtractSubject(accessToken)
	l.Info("logout", slog.String("subject", subject))
}

func (s *AuthService) issuePair(principal Principal) (*domain.LoginResult, error) {
	access, err := s.Tokens.IssueAccessToken(
		principal.Username,
		principal.User.TenantID,
		string(principal.User.Role),
	)
	if err != nil {
		return nil, err
	}

	refresh, err := s.Tokens.IssueRefreshToken(principal.Username)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    s.Tokens.AccessTTL.Milliseconds(),
		User:         principal.User.Public(),
	}, nil
}
