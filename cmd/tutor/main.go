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

	"git.sr.ht/~jakintosh/tutor/internal/api"
	"git.sr.ht/~jakintosh/tutor/internal/config"
	"git.sr.ht/~jakintosh/tutor/internal/database"
	"git.sr.ht/~jakintosh/tutor/internal/logger"
	"git.sr.ht/~jakintosh/tutor/internal/resources"
	"git.sr.ht/~jakintosh/tutor/internal/service"
	"git.sr.ht/~jakintosh/tutor/pkg/password"
	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("starting tutor", zap.Any("config", cfg.Redacted()))

	db, err := database.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tokenServer, err := tokens.NewServer(
		[]byte(cfg.JWTSecret),
		tokens.WithLifetime(cfg.TokenLifetime),
	)
	if err != nil {
		return fmt.Errorf("token server: %w", err)
	}

	scheme, err := password.ParseScheme(cfg.PasswordScheme)
	if err != nil {
		return err
	}
	hasher, err := password.NewHasher(scheme, 0)
	if err != nil {
		return err
	}

	svc := service.New(
		db.UserStore(),
		db.ScheduleStore(),
		tokenServer,
		tokenServer,
		hasher,
		log.Named("service"),
	)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.New(svc, log).Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	if cfg.CoursesDir != "" {
		catalog := resources.NewCourseCatalog(cfg.CoursesDir, svc.SyncCourses, log)
		if err := catalog.Load(); err != nil {
			return err
		}
		group.Go(func() error {
			return catalog.Watch(ctx)
		})
	}

	group.Go(func() error {
		log.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
