// Command server runs the adoption site.
//
//	@title			Adoption Site
//	@version		1.0
//	@description	Server-rendered animal adoption site: accounts, listings and the adoption workflow.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pawprint/adoption-site/internal/api"
	"github.com/pawprint/adoption-site/internal/api/handler"
	"github.com/pawprint/adoption-site/internal/core/service"
	mongostore "github.com/pawprint/adoption-site/internal/infrastructure/db/mongo"
	redisstore "github.com/pawprint/adoption-site/internal/infrastructure/db/redis"
	"github.com/pawprint/adoption-site/internal/pkg/config"
	"github.com/pawprint/adoption-site/internal/web"
	"github.com/pawprint/adoption-site/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "adoption-site",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "adoption-site",
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	// --- Repositories ---
	accountRepo := mongostore.NewAccountRepository(db)
	listingRepo := mongostore.NewListingRepository(db)
	animalRepo := mongostore.NewAnimalRepository(db)
	adoptionRepo := mongostore.NewAdoptionRepository(db)
	if err := service.CheckLockTTL(cfg.Session.LockTTL); err != nil {
		return err
	}
	locker := redisstore.NewLocker(rdb, cfg.Session.LockTTL, logger.For("locker"))

	// --- Services ---
	gate := service.NewSecretGate(cfg.Staff.AdminSecret)
	accounts := service.NewAccountService(accountRepo, gate, cfg.Staff.BcryptCost, logger.For("accounts"))
	sessions := service.NewSessionService(redisstore.NewSessionStore(rdb), cfg.Session.Secret, cfg.Session.TTL, logger.For("sessions"))
	listings := service.NewListingService(listingRepo, animalRepo, adoptionRepo, locker, cfg.Upload.MaxImageBytes, logger.For("listings"))
	adoptions := service.NewAdoptionService(adoptionRepo, listingRepo, animalRepo, locker, logger.For("adoptions"))

	e := api.NewRouter(api.Deps{
		Accounts:  accounts,
		Sessions:  sessions,
		Listings:  listings,
		Adoptions: adoptions,
		Gate:      gate,
		Renderer:  renderer,
		Cookie: handler.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: !cfg.IsDevelopment(),
			MaxAge: service.MaxSessionAge,
		},
		MaxImageBytes: int64(cfg.Upload.MaxImageBytes),
		Mongo:         db,
		Redis:         rdb,
		Registerer:    prometheus.DefaultRegisterer,
		Gatherer:      prometheus.DefaultGatherer,
		Log:           logger.For("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.StartServer(srv); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
