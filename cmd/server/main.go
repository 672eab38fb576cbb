// Package main is the entry point for the UnifiedUI User Service.
// @title UnifiedUI User Service API
// @version 1.0
// @description CRUD and index management for blog users stored in MongoDB

// @contact.name API Support
// @contact.url https://github.com/unifiedui/user-service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/unifiedui/user-service/docs"
	"github.com/unifiedui/user-service/internal/api/handlers"
	"github.com/unifiedui/user-service/internal/api/middleware"
	"github.com/unifiedui/user-service/internal/api/routes"
	"github.com/unifiedui/user-service/internal/config"
	"github.com/unifiedui/user-service/internal/core/docdb"
	"github.com/unifiedui/user-service/internal/infrastructure/docdb/mongodb"
	"github.com/unifiedui/user-service/internal/services/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogger(cfg.Log)

	ctx := context.Background()

	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document db client")
	}
	defer func() {
		if err := docDBClient.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to close document db client")
		}
	}()

	log.Info().
		Str("database", docDBClient.Database().Name()).
		Str("collection", docDBClient.UsersRaw().Name()).
		Msg("document db client ready")

	indexCtx, cancelIndex := context.WithTimeout(ctx, cfg.DocDB.ConnectTimeout)
	if err := docDBClient.EnsureIndexes(indexCtx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}
	cancelIndex()

	usersService, err := users.NewService(&users.Config{
		DocDBClient: docDBClient,
		Validator:   validator.New(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize users service")
	}

	gin.SetMode(cfg.Server.GinMode)

	router := setupRouter(cfg, docDBClient, usersService)

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited")
}

// setupLogger configures the global zerolog logger.
func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Format == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "user-service").Logger()
}

// createDocDBClient creates a document database client based on the configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	clientCfg := &mongodb.ClientConfig{
		URI:                    cfg.URI,
		DatabaseName:           cfg.Database,
		UsersCollectionName:    cfg.UsersCollection,
		ConnectTimeout:         cfg.ConnectTimeout,
		ServerSelectionTimeout: cfg.ServerSelectionTimeout,
		VerifyConnection:       cfg.VerifyConnection,
	}

	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB:
		return mongodb.NewClient(ctx, clientCfg)
	case docdb.TypeCosmosDB:
		// CosmosDB speaks the MongoDB wire protocol.
		return mongodb.NewClient(ctx, clientCfg)
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// setupRouter creates and configures the Gin router.
func setupRouter(cfg *config.Config, docDBClient docdb.Client, usersService users.Service) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()

	routesCfg := &routes.Config{
		HealthHandler: handlers.NewHealthHandler(docDBClient, usersService),
		UsersHandler:  handlers.NewUsersHandler(usersService),
		EnableDocs:    true,
	}

	routes.SetupWithMiddleware(router, routesCfg, middleware.DefaultCORSConfig(cfg.Server.CORSOrigins), loggingMw, errorMw)

	return router
}
