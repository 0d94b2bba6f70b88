package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/yashrajoria/atelier-backend/common/auth"
	apperrors "github.com/yashrajoria/atelier-backend/common/errors"
	"github.com/yashrajoria/atelier-backend/models"
	"github.com/yashrajoria/atelier-backend/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultAdminSessionTTL = 8 * time.Hour

// AdminCredentials is the single back-office account.
type AdminCredentials struct {
	Username   string
	Password   string
	SessionTTL time.Duration
}

// AdminAuthService guards the back office with one session at a time: a new
// login replaces the stored session and so invalidates the previous token.
type AdminAuthService interface {
	Login(ctx context.Context, username, password string) (*models.AdminLoginResponse, error)
	Validate(ctx context.Context, token string) (*models.AdminSession, error)
	Logout(ctx context.Context, token string) error
}

type adminAuthServiceImpl struct {
	creds    AdminCredentials
	sessions repository.AdminSessionRepository
	tokens   ITokenService
	logger   *zap.Logger
	now      func() time.Time
}

func NewAdminAuthService(creds AdminCredentials, sessions repository.AdminSessionRepository, tokens ITokenService, logger *zap.Logger) AdminAuthService {
	if creds.SessionTTL <= 0 {
		creds.SessionTTL = DefaultAdminSessionTTL
	}
	return &adminAuthServiceImpl{creds: creds, sessions: sessions, tokens: tokens, logger: logger, now: time.Now}
}

func (s *adminAuthServiceImpl) Login(ctx context.Context, username, password string) (*models.AdminLoginResponse, error) {
	if s.creds.Username == "" || s.creds.Password == "" {
		s.logger.Error("Admin credentials are not configured")
		return nil, apperrors.ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) == 1
	if !userOK || !passOK {
		s.logger.Warn("Admin login failed", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(username, string(models.RoleStaff), auth.TypeAdmin, s.creds.SessionTTL)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}
	session := &models.AdminSession{
		Token:     token,
		Username:  username,
		IssuedAt:  s.now(),
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Replace(ctx, session); err != nil {
		s.logger.Error("Failed to store admin session", zap.Error(err))
		return nil, apperrors.Internal("Failed to start session", err)
	}

	s.logger.Info("Admin logged in", zap.String("username", username), zap.Time("expires_at", expiresAt))
	return &models.AdminLoginResponse{
		Token:     token,
		Username:  username,
		ExpiresAt: expiresAt,
		Message:   "Login successful",
	}, nil
}

// Validate accepts only the token held by the current session, before it
// expires.
func (s *adminAuthServiceImpl) Validate(ctx context.Context, token string) (*models.AdminSession, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}
	session, err := s.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.FromDB(err, "Session not found")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(session.Token)) != 1 {
		return nil, apperrors.ErrInvalidToken
	}
	if session.Expired(s.now()) {
		return nil, apperrors.ErrInvalidToken
	}
	if _, err := s.tokens.ParseAndValidateToken(token, auth.TypeAdmin); err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return session, nil
}

// Logout ends the session if token is the current one; otherwise it does
// nothing.
func (s *adminAuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	deleted, err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		return apperrors.FromDB(err, "Session not found")
	}
	if deleted {
		s.logger.Info("Admin logged out")
	}
	return nil
}
