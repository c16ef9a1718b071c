package app

import (
	"os"
	"os/signal"
	"procurement-workflow-api/internal/config"
	"procurement-workflow-api/internal/controller"
	"procurement-workflow-api/internal/repo"
	"procurement-workflow-api/internal/service"
	"procurement-workflow-api/pkg/http_server"
	"procurement-workflow-api/pkg/logger"
	"procurement-workflow-api/pkg/postgres"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"go.uber.org/zap"
)

func runMigrations(postgresDB *postgres.Postgres, databaseName string, log *zap.Logger) error {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info("no change made by migration scripts")

			return nil
		}

		return err
	}

	return nil
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("connecting database")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		log.Fatal("error occurred while connecting to db", zap.Error(err))
	}
	defer postgresDB.Close()

	log.Info("running migrations")
	if err := runMigrations(postgresDB, cfg.DatabaseName, log); err != nil {
		log.Fatal("migration error", zap.Error(err))
	}

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(&service.Dependencies{
		Repos:    repositories,
		SignKey:  []byte(cfg.Auth.JWTSecret),
		TokenTTL: cfg.Auth.TokenTTL,
	})
	handler := echo.New()

	log.Info("setup routes")
	controller.SetupRoutesHandlers(handler, services)

	log.Info("starting server", zap.String("address", cfg.ServerAddress))
	httpServer := http_server.New(handler, cfg.ServerAddress)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("got signal", zap.String("signal", s.String()))
	case err = <-httpServer.Notify():
		log.Error("server notify", zap.Error(err))
	}

	log.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		log.Fatal("shutdown error", zap.Error(err))
	}

	log.Info("successful shutdown")
}
