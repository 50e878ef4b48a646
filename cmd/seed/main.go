package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/leave-tracker/internal/config"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"github.com/cmlabs-hris/leave-tracker/internal/fixtures"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/leave-tracker/internal/repository/postgresql"
	userService "github.com/cmlabs-hris/leave-tracker/internal/service/user"
)

// seed loads the default vocabularies and, when SEED_ADMIN_EMAIL is set, the
// first Admin account. The schema itself must already exist.
func main() {
	if err := run(); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.Options{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	err = postgresql.WithTransaction(ctx, db, func(txCtx context.Context) error {
		return fixtures.SeedVocabularies(txCtx, postgresql.GetQuerier(txCtx, db))
	})
	if err != nil {
		return err
	}
	slog.Info("Seeded vocabularies",
		"roles", fixtures.DefaultRoles(),
		"leave_types", fixtures.DefaultLeaveTypes(),
	)

	if cfg.Seed.AdminEmail == "" {
		return nil
	}

	users := userService.NewUserService(postgresql.NewUserRepository(db), postgresql.NewDirectoryRepository(db))
	admin, err := users.CreateUser(ctx, user.CreateUserRequest{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		RoleName: string(user.RoleAdmin),
	})
	switch {
	case errors.Is(err, user.ErrUserEmailExists), errors.Is(err, user.ErrUserNameExists):
		slog.Info("Admin already present", "email", cfg.Seed.AdminEmail)
		return nil
	case err != nil:
		return fmt.Errorf("error creating admin: %w", err)
	}

	slog.Info("Created admin", "user_id", admin.ID, "email", admin.Email)
	return nil
}
