package migrate

import (
	"context"
	"fmt"

	"github.com/bookhaven/bookstore/pkg/config"
	"github.com/bookhaven/bookstore/pkg/db"
	"github.com/bookhaven/bookstore/pkg/logger"
)

// MaybeRun applies the embedded migrations when the auto-migrate flag is on.
// The desktop binary owns its schema, so this defaults to enabled.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.DB.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithField(ctx, "db_path", cfg.DB.Path)
	logg.Info(ctx, "applying schema migrations")

	if err := Up(ctx, sqlDB); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "schema migrations completed")
	return nil
}
