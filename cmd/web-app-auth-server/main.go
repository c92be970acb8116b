// Command web-app-auth-server runs the user-account authentication API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iiTONELOC/web-app-auth-server/auth/jwt"
	"github.com/iiTONELOC/web-app-auth-server/auth/password"
	"github.com/iiTONELOC/web-app-auth-server/config"
	"github.com/iiTONELOC/web-app-auth-server/database"
	"github.com/iiTONELOC/web-app-auth-server/logger"
	"github.com/iiTONELOC/web-app-auth-server/observability"
	"github.com/iiTONELOC/web-app-auth-server/server"
	"github.com/iiTONELOC/web-app-auth-server/users"
	"github.com/iiTONELOC/web-app-auth-server/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("Starting web-app-auth-server", logger.Fields(
		"environment", cfg.Environment,
		"version", version.Short(),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := observability.Init(ctx, cfg.Observability, cfg.Name, cfg.Environment)
	if err != nil {
		log.Fatal("Observability init failed", logger.ErrorFields("observability.init", err))
	}

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("Database open failed", logger.ErrorFields("database.open", err))
	}

	store, err := users.NewGormStore(db)
	if err != nil {
		log.Fatal("Store init failed", logger.ErrorFields("users.migrate", err))
	}

	tokens, err := jwt.NewService(&cfg.JWT)
	if err != nil {
		// Missing secret: refuse to start rather than sign with a guess.
		log.Fatal("Token service init failed", logger.ErrorFields("jwt.init", err))
	}

	hasher := password.NewHasher(cfg.Password)
	accounts := users.NewService(store, hasher, tokens, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	server.RegisterRoutes(srv.GinEngine(), accounts, tokens, store)

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Server start failed", logger.ErrorFields("server.start", err))
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", logger.ErrorFields("server.stop", err))
	}
	if err := db.Close(); err != nil {
		log.Error("Database close failed", logger.ErrorFields("database.close", err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Error("Observability shutdown failed", logger.ErrorFields("observability.shutdown", err))
	}
	log.Info("Server stopped")
}
