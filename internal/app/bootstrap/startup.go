// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	userstore "github.com/dalemusser/eduhub/internal/app/store/users"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. EduHub
// uses it to apply timeout overrides from the environment and to seed the
// initial admin account when one is configured.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout overrides applied", zap.Int("count", n))
	}

	if appCfg.SeedAdminEmail == "" {
		return nil
	}
	return seedAdmin(ctx, deps.MongoDatabase, appCfg, logger)
}

func seedAdmin(ctx context.Context, db *mongo.Database, appCfg AppConfig, logger *zap.Logger) error {
	users := userstore.New(db)

	_, err := users.GetByEmail(ctx, appCfg.SeedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	created, err := users.Create(ctx, models.User{
		DisplayName:  "Administrator",
		Email:        appCfg.SeedAdminEmail,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		// Another instance seeded it first.
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("seed admin created", zap.String("user_id", created.ID.Hex()))
	return nil
}
