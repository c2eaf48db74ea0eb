package migrate

import (
	"context"
	"fmt"

	"github.com/urbanexpress/storefront/pkg/config"
	"github.com/urbanexpress/storefront/pkg/db"
	"github.com/urbanexpress/storefront/pkg/logger"
)

// MaybeRun applies pending migrations when auto-migrate is enabled for the SQL backend.
func MaybeRun(ctx context.Context, cfg config.DBConfig, logg *logger.Logger, client *db.Client) error {
	if !cfg.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	applied, err := Up(ctx, sqlDB, client.Driver())
	if err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	if applied > 0 && logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"driver": client.Driver(), "applied": applied})
		logg.Info(ctx, "storage migrations applied")
	}
	return nil
}
