package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/config"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/database"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/handlers"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/metrics"
	customMiddleware "github.com/Madhav-Gupta-28/perfumery-backend-go/middleware"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/realtime"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/repository"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/routes"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/sessions"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/utils"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (default 3000)")
	_ = settings.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Error("Failed to create indexes", zap.Error(err))
		return err
	}

	revoker, closeRevoker, err := newRevoker(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to connect to redis", zap.Error(err))
		return err
	}
	defer closeRevoker()

	m := metrics.New()
	productStore := repository.NewProductStore(db)
	blogStore := repository.NewBlogStore(db)

	productHub := realtime.NewHub[[]models.Product]()
	productHub.OnSubscribers = func(n int) {
		m.RealtimeClients.WithLabelValues(database.ProductsCollection).Set(float64(n))
	}
	blogHub := realtime.NewHub[[]models.BlogPost]()
	blogHub.OnSubscribers = func(n int) {
		m.RealtimeClients.WithLabelValues(database.BlogCollection).Set(float64(n))
	}

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.CustomTokenSecret, cfg.TokenTTL)
	h := handlers.New(handlers.Options{
		Products:    productStore,
		Blog:        blogStore,
		Admins:      repository.NewAdminStore(db),
		Tokens:      tokens,
		Revoker:     revoker,
		ProductFeed: productHub,
		BlogFeed:    blogHub,
		Metrics:     m,
		Log:         log,
		ChatPhone:   cfg.ChatPhone,
	})

	e := newEcho(cfg, log, m)
	e.Server.RegisterOnShutdown(h.CloseStreams)
	routes.SetupRoutes(e, h, m, customMiddleware.RequireSession(tokens, revoker, log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("Shutting down")
		return e.Shutdown(shutdownCtx)
	})

	// A dead change stream stops live updates but never the server.
	g.Go(func() error {
		if err := realtime.Feed(gctx, database.ProductsCollection, productHub, productStore.FindAll, productStore, log); err != nil {
			log.Error("Product feed stopped", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if err := realtime.Feed(gctx, database.BlogCollection, blogHub, blogStore.FindAll, blogStore, log); err != nil {
			log.Error("Blog feed stopped", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped", zap.Error(err))
		return err
	}
	return nil
}

func newEcho(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	// RequestLogger sits inside Metrics so it still sees the handler error.
	e.Use(customMiddleware.Metrics(m))
	e.Use(customMiddleware.RequestLogger(log))
	return e
}

// newRevoker uses Redis when REDIS_ADDR is set. Without it sign-out only discards the client token.
func newRevoker(ctx context.Context, cfg *config.Config, log *zap.Logger) (sessions.Revoker, func(), error) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, signed-out tokens stay valid until expiry")
		return sessions.NoopRevoker{}, func() {}, nil
	}
	client, err := sessions.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	return sessions.NewRedisRevoker(client), func() { _ = client.Close() }, nil
}
