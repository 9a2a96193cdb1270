package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-club-server/accounts"
	accountsrepo "github.com/jrsteele09/go-club-server/accounts/mysqlrepo"
	"github.com/jrsteele09/go-club-server/auth"
	contentrepo "github.com/jrsteele09/go-club-server/content/mysqlrepo"
	"github.com/jrsteele09/go-club-server/internal/config"
	"github.com/jrsteele09/go-club-server/internal/database"
	"github.com/jrsteele09/go-club-server/internal/logger"
	"github.com/jrsteele09/go-club-server/server"
	"github.com/jrsteele09/go-club-server/token"
	"github.com/jrsteele09/go-club-server/uploads"
	"github.com/rs/zerolog/log"
)

const (
	shutdownTimeout = 5 * time.Second
	startupTimeout  = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logger.Init(c.GetEnv(), c.GetLogLevel())
	if err := config.Validate(c); err != nil {
		return err
	}
	if g, ok := c.(interface{ SecretGenerated() bool }); ok && g.SecretGenerated() {
		log.Warn().Msg("JWT_SECRET not set: using a random secret, tokens will not survive a restart")
	}
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := database.Open(ctx, c.GetDSN(), c.GetPoolSize())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	tokenOpts := []token.ManagerOption{
		token.WithIssuer(c.GetJWTIssuer()),
		token.WithTokenExpiry(c.GetTokenTTL()),
	}
	if url := c.GetRedisURL(); url != "" {
		denylist, err := token.NewRedisDenylist(ctx, url)
		if err != nil {
			return err
		}
		defer denylist.Close()
		tokenOpts = append(tokenOpts, token.WithDenylist(denylist))
		log.Info().Msg("token denylist: redis")
	} else {
		log.Info().Msg("token denylist: in memory")
	}
	tokens := token.New(token.NewHMACSigner(c.GetJWTSecret()), tokenOpts...)

	var accountRepo accounts.Repo = accountsrepo.New(db)
	authService, err := auth.NewService(
		auth.Repos{Accounts: accountRepo},
		tokens,
		auth.WithAdminDefaultPassword(c.GetAdminDefaultPassword()),
	)
	if err != nil {
		return err
	}

	store, err := newUploadStore(ctx, c)
	if err != nil {
		return err
	}

	srv, err := server.New(c, server.Deps{
		Auth:    authService,
		Tokens:  tokens,
		Content: contentrepo.New(db),
		Uploads: store,
		DB:      db,
	})
	if err != nil {
		return err
	}

	// the superadmin must exist before the first request is served
	if err := srv.InitialiseSystem(ctx); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listenAndServe(httpServer)
	}()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func newUploadStore(ctx context.Context, c config.Config) (uploads.Store, error) {
	if bucket := c.GetS3Bucket(); bucket != "" {
		log.Info().Str("bucket", bucket).Msg("upload store: s3")
		store, err := uploads.NewS3Store(ctx, uploads.S3Options{
			Bucket:    bucket,
			Region:    c.GetS3Region(),
			Endpoint:  c.GetS3Endpoint(),
			AccessKey: c.GetS3AccessKey(),
			SecretKey: c.GetS3SecretKey(),
		})
		if err != nil {
			return nil, err
		}
		if err := store.HealthCheck(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
	log.Info().Str("dir", c.GetUploadDir()).Msg("upload store: filesystem")
	return uploads.NewFileStore(c.GetUploadDir())
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
