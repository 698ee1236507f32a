package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/field-activity-service/internal/config"
	"github.com/spec-kit/field-activity-service/internal/domain"
)

// SeedDefaultUsers provisions the built-in admin and demo distributor
// accounts when absent. Seeding goes through ProvisionUser so hashing
// and the uniqueness constraint follow the normal path; an existing
// account is not an error.
func SeedDefaultUsers(ctx context.Context, authService *AuthService, cfg config.SeedConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	seeds := []struct {
		username string
		password string
		role     domain.Role
		location *string
	}{
		{cfg.AdminUsername, cfg.AdminPassword, domain.RoleAdmin, nil},
		{cfg.DistributorUsername, cfg.DistributorPassword, domain.RoleDistributor, &cfg.DistributorLocation},
	}

	for _, seed := range seeds {
		if _, err := authService.ProvisionUser(ctx, seed.username, seed.password, seed.role, seed.location); err != nil {
			if errors.Is(err, domain.ErrDuplicateUser) {
				logger.Debug("seed user already present", zap.String("username", seed.username))
				continue
			}
			return err
		}
		logger.Info("seeded user", zap.String("username", seed.username), zap.String("role", string(seed.role)))
	}
	return nil
}
