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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mindwell/mindwell/internal/config"
	"github.com/mindwell/mindwell/internal/domain/assessment"
	"github.com/mindwell/mindwell/internal/domain/instrument"
	"github.com/mindwell/mindwell/internal/domain/profile"
	"github.com/mindwell/mindwell/internal/platform/auth"
	"github.com/mindwell/mindwell/internal/platform/cache"
	"github.com/mindwell/mindwell/internal/platform/db"
	"github.com/mindwell/mindwell/internal/platform/middleware"
	"github.com/mindwell/mindwell/migrations"
)

const (
	shutdownTimeout = 10 * time.Second
	requestTimeout  = 15 * time.Second
	bodyLimit       = "64K"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "mindwell-server",
		Short:        "Mental wellbeing self-assessment API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// stores bundles the repositories for the configured driver.
type stores struct {
	assessments assessment.AssessmentRepository
	crisisLogs  assessment.CrisisLogRepository
	profiles    profile.Repository
	tx          db.Transactor
	health      db.Checker
	close       func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath, migrations.SQLiteSchema)
		if err != nil {
			return nil, err
		}
		return &stores{
			assessments: assessment.NewAssessmentRepoSQLite(sqlDB),
			crisisLogs:  assessment.NewCrisisLogRepoSQLite(sqlDB),
			profiles:    profile.NewRepoSQLite(sqlDB),
			tx:          db.NewSQLTransactor(sqlDB),
			health:      db.SQLChecker(sqlDB),
			close:       func() { sqlDB.Close() },
		}, nil
	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, err
		}
		return &stores{
			assessments: assessment.NewAssessmentRepoPG(pool),
			crisisLogs:  assessment.NewCrisisLogRepoPG(pool),
			profiles:    profile.NewRepoPG(pool),
			tx:          db.NewPgTransactor(pool),
			health:      db.PgChecker(pool),
			close:       pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// newServer wires services and routes. dashboards may be nil.
func newServer(cfg *config.Config, logger zerolog.Logger, st *stores, dashboards assessment.DashboardCache) *echo.Echo {
	profileSvc := profile.NewService(st.profiles, st.tx)
	assessmentSvc := assessment.NewService(st.assessments, st.crisisLogs, st.tx)
	if dashboards != nil {
		assessmentSvc.SetCache(dashboards)
	}
	if cfg.RequireConsent {
		assessmentSvc.SetConsentChecker(profileSvc)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders: []string{"Authorization", "Content-Type", "Accept-Language", middleware.RequestIDHeader},
	}))
	e.Use(echomw.BodyLimit(bodyLimit))
	e.Use(echomw.ContextTimeout(requestTimeout))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(st.health))

	rateLimitCfg := middleware.DefaultRateLimitConfig()
	rateLimitCfg.RequestsPerSecond = cfg.RateLimitRPS
	rateLimitCfg.BurstSize = cfg.RateLimitBurst

	apiV1 := e.Group("/api/v1", middleware.RateLimit(rateLimitCfg), middleware.Locale(instrument.SupportedLocales(cfg.Locale())...))

	jwtCfg := auth.JWTConfig{
		Issuer:   cfg.AuthIssuer,
		Audience: cfg.AuthAudience,
		Secret:   []byte(cfg.AuthJWTSecret),
	}
	authMW := auth.JWTMiddleware(jwtCfg)
	if cfg.IsDev() {
		authMW = auth.DevAuthMiddleware(jwtCfg)
	}
	userGroup := apiV1.Group("", authMW)

	// The catalog is public; everything tied to a person needs identity.
	instrument.NewHandler(cfg.Locale()).RegisterRoutes(apiV1)
	assessment.NewHandler(assessmentSvc, cfg.Locale()).RegisterRoutes(userGroup)
	profile.NewHandler(profileSvc).RegisterRoutes(userGroup)

	return e
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}
	if cfg.IsDev() {
		logger.Warn().Msg("development mode: requests without a token run as the dev user")
	}

	// Stores
	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
		return err
	}
	defer st.close()
	logger.Info().Str("driver", cfg.StoreDriver).Msg("store ready")

	// Dashboard cache is optional; the service works without it.
	var dashboards assessment.DashboardCache
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, dashboard cache disabled")
		} else {
			defer client.Close()
			dashboards = assessment.NewDashboardCacheRedis(client, cfg.DashboardCacheTTL)
			logger.Info().Dur("ttl", cfg.DashboardCacheTTL).Msg("dashboard cache enabled")
		}
	}

	e := newServer(cfg, logger, st, dashboards)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
