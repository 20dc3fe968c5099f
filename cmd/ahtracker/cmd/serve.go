package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/wowecon/ahtracker/internal/api/handlers"
	"github.com/wowecon/ahtracker/internal/api/middleware"
	"github.com/wowecon/ahtracker/internal/blizzard"
	"github.com/wowecon/ahtracker/internal/config"
	"github.com/wowecon/ahtracker/internal/engine"
	"github.com/wowecon/ahtracker/internal/items"
	"github.com/wowecon/ahtracker/internal/notify"
	"github.com/wowecon/ahtracker/internal/resolver"
	"github.com/wowecon/ahtracker/internal/store"
	"github.com/wowecon/ahtracker/internal/web"
	"github.com/wowecon/ahtracker/pkg/logger"
	domain "github.com/wowecon/ahtracker/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and discovery scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	credsOK := cfg.Blizzard.CredentialsConfigured()
	if err := cfg.CredentialCheck(); err != nil {
		log.Warn("Battle.net credentials not configured, serving sample data only",
			"error", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var st store.Store
	if cfg.Database.Enabled {
		pg, err := store.NewPostgresStore(startCtx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		st = pg
	} else {
		log.Info("database disabled, using in-memory realm mapping store")
		st = store.NewMemoryStore()
	}
	defer st.Close()

	if err := st.Migrate(startCtx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	tokens := blizzard.NewOAuthTokenProvider(
		cfg.Blizzard.ClientID,
		cfg.Blizzard.ClientSecret,
		blizzard.WithTokenURL(cfg.Blizzard.TokenURL),
		blizzard.WithHTTPClient(&http.Client{Timeout: cfg.Blizzard.Timeout}),
	)

	limiter := blizzard.NewRateLimiter(
		cfg.Blizzard.RateLimit.PerSecond,
		cfg.Blizzard.RateLimit.Burst,
		cfg.Blizzard.RateLimit.DailyLimit,
	)

	client := blizzard.NewClient(
		tokens,
		blizzard.WithLocale(cfg.Blizzard.Locale),
		blizzard.WithRateLimiter(limiter),
		blizzard.WithGameDataHTTPClient(&http.Client{Timeout: cfg.Blizzard.Timeout}),
	)

	roster := make([]domain.RealmDescriptor, 0, len(cfg.Realms))
	realmKeys := make([]string, 0, len(cfg.Realms))
	for i := range cfg.Realms {
		roster = append(roster, cfg.Realms[i].Descriptor())
		realmKeys = append(realmKeys, cfg.Realms[i].Key)
	}

	regions := make([]domain.Region, 0, len(cfg.Discovery.Regions))
	for _, r := range cfg.Discovery.Regions {
		regions = append(regions, domain.Region(r))
	}

	res := resolver.New(client, st, roster, resolver.Options{
		Regions:        regions,
		NamespaceBases: cfg.Discovery.Namespaces,
		RealmsPerProbe: cfg.Discovery.RealmsPerProbe,
		ProbeDelay:     cfg.Discovery.ProbeDelay,
		ProbeAuctions:  cfg.Discovery.ProbeAuctions,
	}, log, resolver.WithOnDiscovered(func(m store.RealmMapping) {
		log.Info("realm mapping discovered",
			"realm", m.Descriptor.RealmKey,
			"connected_realm_id", m.Descriptor.ConnectedRealmID,
			"namespace", m.Descriptor.Namespace)
	}))

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL != "" {
		notifier = notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
		log.Info("discord notifications enabled")
	}

	catalog, err := items.Default()
	if err != nil {
		return fmt.Errorf("loading item catalog: %w", err)
	}

	eng := engine.New(
		client,
		res,
		catalog,
		realmKeys,
		cfg.Cache.AuctionTTL,
		engine.WithLogger(log),
		engine.WithNotifier(notifier),
	)

	sched, err := engine.NewScheduler(eng, cfg.Discovery.RefreshInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	web.Register(e)

	api := humaecho.New(e, huma.DefaultConfig("Anniversary AH Tracker API", Version))
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(eng))
	handlers.RegisterRealmRoutes(api, handlers.NewRealmsHandler(eng, credsOK))
	handlers.RegisterItemRoutes(api, handlers.NewItemsHandler(catalog))
	handlers.RegisterDiscoveryRoutes(api, handlers.NewDiscoveryHandler(eng))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "realms", len(realmKeys))

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	<-sched.Stop().Done()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
