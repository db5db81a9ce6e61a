package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/loan-portal/internal/auth"
	"github.com/iwvelando/loan-portal/internal/config"
	"github.com/iwvelando/loan-portal/internal/logging"
	"github.com/iwvelando/loan-portal/internal/server"
	"github.com/iwvelando/loan-portal/internal/service"
	"github.com/iwvelando/loan-portal/internal/store"
	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", "", "path to configuration file; empty uses defaults and environment")
	envFile := flag.String("env-file", constants.DefaultEnvFile, "dotenv file loaded before the configuration when present")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	address := flag.String("address", "", "listen address override, e.g. :8080")
	flag.Parse()

	// A missing .env file is normal outside development.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file %s\", \"error\": \"%v\"}\n", *envFile, err)
		os.Exit(1)
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *address != "" {
		conf.Server.Address = *address
	}
	serverConfig, err := server.NewConfig(conf.Server)
	if err != nil {
		logger.Fatal("invalid server configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, conf.Store, logger)
	if err != nil {
		logger.Fatal("failed to open document store",
			zap.String("op", "main"),
			zap.String("driver", conf.Store.Driver),
			zap.Error(err),
		)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("failed to close document store", zap.String("op", "main"), zap.Error(err))
		}
	}()

	var verifier *auth.Verifier
	if conf.Auth.Secret != "" {
		verifier, err = auth.NewVerifier(conf.Auth)
		if err != nil {
			logger.Fatal("failed to configure token verification",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	svc := service.New(st, st,
		service.WithLogger(logger),
		service.WithAssetSigner(conf.Assets),
	)

	srv := &http.Server{
		Addr:         serverConfig.Address,
		Handler:      server.NewHandler(logger, svc, verifier, serverConfig.BodySizeBytes(), version),
		ReadTimeout:  serverConfig.ReadTimeout,
		WriteTimeout: serverConfig.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("loan portal listening",
			zap.String("op", "main"),
			zap.String("address", serverConfig.Address),
			zap.String("store", conf.Store.Driver),
			zap.String("version", version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", zap.String("op", "main"), zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down", zap.String("op", "main"))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.String("op", "main"), zap.Error(err))
		}
	}
}
