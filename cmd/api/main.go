package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myvet/internal/adapters/auth/localjwt"
	pg "myvet/internal/adapters/storage/postgres"
	"myvet/internal/platform/config"
	"myvet/internal/platform/logger"
	"myvet/internal/router"
)

func main() {
	config.LoadDotEnv()
	cfg := config.LoadServer()
	log := logger.NewFromEnv("myvet-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		APIPrefix: cfg.APIPrefix,
		Log:       log,
	}

	signer := localjwt.New(localjwt.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
	})
	opts.Issuer = signer
	opts.AuthVerifier = signer

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		mctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = pg.Migrate(mctx, db)
		cancel()
		if err != nil {
			log.Error("postgres migrate failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.DB = db
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Addr, "api_prefix": cfg.APIPrefix})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
