package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"authapi/internal/config"
	"authapi/internal/core"
	"authapi/internal/db"
	"authapi/internal/http/handler"
	"authapi/internal/http/payload"
	"authapi/internal/http/server"
	"authapi/internal/repository"
	"authapi/pkg/jwt"
	"authapi/pkg/log"
)

func Start() error {
	config, err := config.NewApp()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	logger := log.NewZapLogger("authapi", config.LogLevel)
	defer func() { _ = logger.Sync() }()

	if config.InsecureSecret() {
		logger.Warnw("using the development JWT secret, set JWT_SECRET outside development")
	}

	dbConn, err := db.NewGormDB(config.DBDriver, config.DBConnectionURL)
	if err != nil {
		logger.Errorw("failed to connect to database", "error", err, "driver", config.DBDriver)
		return err
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Errorw("failed to close database", "error", err)
		}
	}()

	// repository
	repo := repository.NewUserRepository(dbConn)
	if err = repo.Migrate(); err != nil {
		logger.Errorw("failed to migrate tables to database", "error", err)
		return err
	}

	// jwt service
	jwtService := jwt.NewJWTService([]byte(config.JWTSecret))

	// authenticator
	auth := core.NewAuthenticator(
		logger,
		repo,
		jwtService,
		core.Options{
			AccessTokenTTL:        config.AccessTokenTTL,
			RefreshTokenTTL:       config.RefreshTokenTTL,
			BcryptCost:            config.BcryptCost,
			IssueTokensOnRegister: config.RegisterIssuesTokens,
		})

	// handlers
	authHdlr := handler.NewAuthHandler(
		logger,
		payload.Decoder{},
		auth)
	healthHdlr := handler.NewHealthHandler(logger, dbConn)

	router := handler.NewRouter(logger, authHdlr, healthHdlr, config.CORSOrigins)

	srv := server.NewHTTP(logger, router, config.Port)
	logger.Infow("starting server", "port", config.Port, "env", config.Env)
	return run(srv)
}

func run(server *server.HTTPServer) error {
	// expect a signal to gracefully shutdown the server
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sig)

	errChan := server.Run()

	var err error
	select {
	case <-sig:
	case err = <-errChan:
	}

	sdErr := server.Shutdown()
	if errors.Is(err, http.ErrServerClosed) || err == nil {
		if sdErr != nil {
			return fmt.Errorf("server shutdown: %w", sdErr)
		}
		return nil
	}

	return err
}
