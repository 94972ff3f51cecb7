package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/productmgmt/product-api/internal/api"
	"github.com/productmgmt/product-api/internal/core/service"
	"github.com/productmgmt/product-api/internal/infrastructure/auth"
	sqlstore "github.com/productmgmt/product-api/internal/infrastructure/db/sql"
	"github.com/productmgmt/product-api/internal/pkg/config"
	"github.com/productmgmt/product-api/internal/pkg/jwtauth"
	"github.com/productmgmt/product-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not configured yet
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("loading config")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "product-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	e, closeDB, err := newServer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	return serve(ctx, e, net.JoinHostPort("", cfg.Port), cfg.ShutdownTimeout, log)
}

// newServer opens and migrates the store and builds the router. The returned
// func releases the database pool.
func newServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*echo.Echo, func(), error) {
	db, err := sqlstore.Connect(ctx, sqlstore.Config{
		DSN:   cfg.Database.DSN,
		Debug: cfg.Database.Debug,
	}, log.With().Str("component", "db").Logger())
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = sqlDB.Close() }

	log.Info().Str("driver", sqlstore.Driver(cfg.Database.DSN)).Msg("database connected")

	productRepository := sqlstore.NewProductRepository(db)
	if err := productRepository.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}

	verifier, err := auth.NewStaticVerifier(cfg.Admin.Username, cfg.Admin.Password, bcrypt.DefaultCost)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	tokens := jwtauth.Config{
		Key:       cfg.JWT.Key,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
		ClockSkew: cfg.JWT.ClockSkew,
	}

	e := api.NewRouter(api.Dependencies{
		Products: service.NewProductService(productRepository, log.With().Str("component", "product_service").Logger()),
		Auth:     service.NewAuthService(verifier, tokens, log.With().Str("component", "auth_service").Logger()),
		DB:       sqlDB,
		Tokens:   tokens,
		Logger:   log.With().Str("component", "http").Logger(),
	})
	return e, closeDB, nil
}

// serve runs e until ctx is done, then drains in-flight requests for at most
// timeout. A listener already set on e takes precedence over addr.
func serve(ctx context.Context, e *echo.Echo, addr string, timeout time.Duration, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", timeout).Msg("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}
