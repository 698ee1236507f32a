package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/field-activity-service/internal/auth"
	"github.com/spec-kit/field-activity-service/internal/config"
	"github.com/spec-kit/field-activity-service/internal/domain"
	"github.com/spec-kit/field-activity-service/internal/events"
	"github.com/spec-kit/field-activity-service/internal/repository"
	apperrors "github.com/spec-kit/field-activity-service/pkg/util"
)

// LoginResult bundles the issued token with identity facts for the client.
type LoginResult struct {
	Token     string
	Role      domain.Role
	Username  string
	ExpiresAt time.Time
}

// AuthService coordinates login, provisioning and password rotation.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	limiter    *LoginLimiter
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Limiter    *LoginLimiter
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours),
		limiter:    deps.Limiter,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates a username/password pair and issues a session
// token. An unknown username and a password mismatch are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Check(ctx, username); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.recordFailure(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		s.limiter.Reset(ctx, username)
	}

	return &LoginResult{
		Token:     token,
		Role:      user.Role,
		Username:  user.Username,
		ExpiresAt: exp,
	}, nil
}

// ProvisionUser creates an account with a hashed password. Uniqueness
// is delegated to the store; a taken username yields ErrDuplicateUser.
func (s *AuthService) ProvisionUser(ctx context.Context, username, password string, role domain.Role, location *string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Location:     location,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserProvisioned,
		ActorID:   user.ID,
		Timestamp: time.Now(),
		Payload:   events.UserProvisionedPayload{Username: user.Username, Role: user.Role},
	})
	return user, nil
}

// ChangePassword verifies the current password before rotating the hash.
func (s *AuthService) ChangePassword(ctx context.Context, identity domain.Identity, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, user.ID, hash)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter != nil {
		s.limiter.RecordFailure(ctx, username)
	}
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
