package main

import (
	"context"
	"os"

	"github.com/bookhaven/bookstore/internal/accounts"
	"github.com/bookhaven/bookstore/internal/catalog"
	"github.com/bookhaven/bookstore/internal/orders"
	"github.com/bookhaven/bookstore/internal/session"
	"github.com/bookhaven/bookstore/pkg/config"
	"github.com/bookhaven/bookstore/pkg/db"
	"github.com/bookhaven/bookstore/pkg/logger"
	"github.com/bookhaven/bookstore/pkg/migrate"
	"github.com/bookhaven/bookstore/pkg/security"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "bookstore"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "bookstore",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		closeAll(logg, dbClient)
		os.Exit(1)
	}

	catalogSvc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		closeAll(logg, dbClient)
		os.Exit(1)
	}

	accountsSvc, err := accounts.NewService(accounts.NewRepository(dbClient.DB()), security.NewVerifier(cfg.Security))
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts service", err)
		closeAll(logg, dbClient)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(dbClient, orders.NewRepository(dbClient.DB()), orders.NewCatalogLoader(catalog.NewRepository(dbClient.DB())))
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		closeAll(logg, dbClient)
		os.Exit(1)
	}

	controller, err := session.NewController(accountsSvc, catalogSvc, ordersSvc, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session controller", err)
		closeAll(logg, dbClient)
		os.Exit(1)
	}

	newREPL(controller, os.Stdin, os.Stdout).run(context.Background())

	closeAll(logg, dbClient)
}

func closeAll(logg *logger.Logger, dbClient *db.Client) {
	var errs error
	errs = multierr.Append(errs, dbClient.Close())
	if errs != nil {
		logg.Error(context.Background(), "error during shutdown", errs)
	}
}
