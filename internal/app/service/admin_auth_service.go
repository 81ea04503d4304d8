package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/historin/historin-backend/config"
	"github.com/historin/historin-backend/pkg/logger"
	"github.com/historin/historin-backend/pkg/redis"
	"github.com/historin/historin-backend/pkg/util"
)

var (
	ErrInvalidAdminToken = errors.New("invalid admin token")
	ErrSessionExpired    = errors.New("admin session expired")
	ErrSessionRevoked    = errors.New("admin session revoked")
)

// AdminAuthService gates the /api/admin surface. Callers may present the
// shared secret directly on every request, or exchange it once for a session
// token with an explicit issued-at and TTL.
type AdminAuthService interface {
	// VerifySecret checks a presented token against the configured shared
	// secret (bcrypt hash when configured, constant-time compare otherwise).
	VerifySecret(token string) bool
	// Login exchanges the shared secret for a session.
	Login(token string) (*util.Session, error)
	// ValidateSession verifies a session token and its revocation state.
	ValidateSession(ctx context.Context, token string) error
	// Logout revokes a session for the remainder of its TTL.
	Logout(ctx context.Context, token string) error
}

type adminAuthService struct {
	cfg *config.AdminConfig
	now func() time.Time
}

func NewAdminAuthService(cfg *config.AdminConfig) AdminAuthService {
	return &adminAuthService{
		cfg: cfg,
		now: time.Now,
	}
}

func (s *adminAuthService) VerifySecret(token string) bool {
	if token == "" {
		return false
	}
	if s.cfg.TokenHash != "" {
		return util.VerifySecretHash(s.cfg.TokenHash, token)
	}
	return util.SecureCompare(s.cfg.Token, token)
}

func (s *adminAuthService) Login(token string) (*util.Session, error) {
	if !s.VerifySecret(token) {
		logger.Warn("Admin login rejected: wrong secret")
		return nil, ErrInvalidAdminToken
	}

	now := s.now()
	sessionID := uuid.New().String()
	signed, err := util.GenerateSessionToken(sessionID, s.cfg.SessionSecret, s.cfg.SessionTTL, now)
	if err != nil {
		logger.Error("Failed to sign admin session", err)
		return nil, err
	}

	logger.Info("Admin session issued", map[string]interface{}{
		"session_id": sessionID,
		"ttl":        s.cfg.SessionTTL.String(),
	})
	return &util.Session{
		Token:    signed,
		IssuedAt: now,
		TTL:      int64(s.cfg.SessionTTL.Seconds()),
	}, nil
}

func (s *adminAuthService) ValidateSession(ctx context.Context, token string) error {
	claims, err := util.ValidateSessionToken(token, s.cfg.SessionSecret, s.now())
	if err != nil {
		if errors.Is(err, util.ErrExpiredSession) {
			return ErrSessionExpired
		}
		return ErrInvalidAdminToken
	}

	revoked, err := redis.IsSessionRevoked(ctx, claims.SessionID)
	if err != nil {
		// Revocation storage being down must not lock admins out; the TTL
		// still bounds the session.
		logger.Warn("Session revocation check failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if revoked {
		return ErrSessionRevoked
	}
	return nil
}

func (s *adminAuthService) Logout(ctx context.Context, token string) error {
	claims, err := util.ValidateSessionToken(token, s.cfg.SessionSecret, s.now())
	if err != nil {
		return ErrInvalidAdminToken
	}

	remaining := time.Duration(claims.TTL)*time.Second - s.now().Sub(claims.IssuedAt.Time)
	if remaining <= 0 {
		return nil
	}
	return redis.RevokeSession(ctx, claims.SessionID, remaining)
}
