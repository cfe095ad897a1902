package services

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AdminService interface {
	// Login checks password against the shared admin secret and opens a
	// session. clientKey identifies the caller for the failed-login limiter.
	Login(ctx context.Context, password, clientKey string) (string, error)
	// Logout ends the session named by token. Unknown tokens are ignored.
	Logout(token string)
}

type adminService struct {
	passwordHash []byte
	sessions     *SessionRegistry
	limiter      LoginLimiter
	logger       *zap.Logger
}

// HashPassword derives the bcrypt hash AdminService compares against.
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash admin password")
	}
	return hash, nil
}

func NewAdminService(passwordHash []byte, sessions *SessionRegistry, limiter LoginLimiter, logger *zap.Logger) AdminService {
	if limiter == nil {
		limiter = NewNoopLoginLimiter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &adminService{
		passwordHash: passwordHash,
		sessions:     sessions,
		limiter:      limiter,
		logger:       logger,
	}
}

func (s *adminService) Login(ctx context.Context, password, clientKey string) (string, error) {
	blocked, err := s.limiter.Blocked(ctx, clientKey)
	if err != nil {
		// Fail open.
		s.logger.Warn("Login limiter unavailable", zap.Error(err))
	}
	if blocked {
		s.logger.Warn("Admin login rejected, too many attempts", zap.String("client", clientKey))
		return "", ErrTooManyAttempts
	}

	if password == "" || bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		if err := s.limiter.RecordFailure(ctx, clientKey); err != nil {
			s.logger.Warn("Failed to record login failure", zap.Error(err))
		}
		s.logger.Warn("Admin login failed", zap.String("client", clientKey))
		return "", ErrUnauthorized
	}

	if err := s.limiter.Reset(ctx, clientKey); err != nil {
		s.logger.Warn("Failed to reset login attempts", zap.Error(err))
	}
	token := s.sessions.CreateSession()
	s.logger.Info("Admin logged in", zap.String("client", clientKey))
	return token, nil
}

func (s *adminService) Logout(token string) {
	s.sessions.InvalidateSession(token)
}
