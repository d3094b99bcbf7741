package services

import (
	"context"

	"lexdesk/logger"
	"lexdesk/models"
	"lexdesk/repository"
)

// SeedDefaultAdmin creates the bootstrap admin account when no user exists yet.
// It reports whether an account was created.
func SeedDefaultAdmin(ctx context.Context, users *repository.UserRepository, username, password string) (bool, error) {
	count, err := users.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		logger.L().Debugw("users already exist, skipping admin seed", "count", count)
		return false, nil
	}

	svc := NewUserService(users)
	u, err := svc.create(ctx, NewUser{
		Username: username,
		Password: password,
		FullName: "Administrador",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}

	logger.L().Infow("seeded default admin", "username", u.Username)
	return true, nil
}
