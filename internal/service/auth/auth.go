package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	xerrors "helios-service/internal/pkg/errors"
	"helios-service/internal/pkg/session"
	"helios-service/internal/pkg/token"
)

// Credentials is the operator account the service authenticates against. The
// password hash is bcrypt.
type Credentials struct {
	Email        string
	Name         string
	PasswordHash string
}

type LoginResult struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	Session   *session.SessionData `json:"session"`
}

type AuthService struct {
	creds    Credentials
	tokens   *token.Manager
	sessions *session.Store
	limiter  *session.RateLimiter
	logger   *zap.Logger
}

func NewAuthService(creds Credentials, tokens *token.Manager, sessions *session.Store, limiter *session.RateLimiter, logger *zap.Logger) *AuthService {
	return &AuthService{
		creds:    creds,
		tokens:   tokens,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
	}
}

// HashPassword produces a bcrypt hash for configuring ADMIN_PASSWORD_HASH.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies credentials, issues a token and records the session.
func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*LoginResult, error) {
	allowed, remaining, err := s.limiter.CheckLoginAttempt(ctx, ip)
	if err != nil {
		s.logger.Warn("login rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		return nil, fmt.Errorf("too many login attempts: %w", xerrors.ErrForbidden)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.EqualFold(email, s.creds.Email) {
		s.logger.Info("login rejected", zap.String("email", email), zap.Int64("attempts_remaining", remaining))
		return nil, fmt.Errorf("invalid credentials: %w", xerrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.String("email", email), zap.Int64("attempts_remaining", remaining))
		return nil, fmt.Errorf("invalid credentials: %w", xerrors.ErrUnauthorized)
	}

	signed, jti, err := s.tokens.Generate(email, s.creds.Name)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	data := &session.SessionData{
		JTI:            jti,
		Email:          email,
		Name:           s.creds.Name,
		IPAddress:      ip,
		UserAgent:      userAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.tokens.TTL()),
	}
	if err := s.sessions.Create(ctx, data); err != nil {
		s.logger.Error("failed to store session", zap.Error(err))
		return nil, err
	}

	if err := s.limiter.ResetLoginAttempts(ctx, ip); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	s.logger.Info("login succeeded", zap.String("email", email), zap.String("jti", jti))
	return &LoginResult{Token: signed, ExpiresAt: data.ExpiresAt, Session: data}, nil
}

// ValidateToken checks the signature and the backing session; a logged-out
// token fails even before its expiry.
func (s *AuthService) ValidateToken(ctx context.Context, raw string) (*token.Claims, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.Get(ctx, claims.ID); err != nil {
		return nil, err
	}

	go func() {
		if err := s.sessions.Touch(context.Background(), claims.ID); err != nil {
			s.logger.Debug("failed to touch session", zap.String("jti", claims.ID), zap.Error(err))
		}
	}()

	return claims, nil
}

// Logout revokes the session behind the token.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return err
	}
	if err := s.sessions.Invalidate(ctx, claims.ID); err != nil {
		s.logger.Error("failed to invalidate session", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	s.logger.Info("logout", zap.String("email", claims.Email), zap.String("jti", claims.ID))
	return nil
}

// LogoutAll revokes every active session.
func (s *AuthService) LogoutAll(ctx context.Context) error {
	return s.sessions.InvalidateAll(ctx)
}
