// Command membergate runs the membership service: webhook ingestion, the
// post-purchase handshake, member sessions, and the gated site.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lanternclub/membergate/billing"
	"github.com/lanternclub/membergate/content"
	"github.com/lanternclub/membergate/mailer"
	"github.com/lanternclub/membergate/membership"
	"github.com/lanternclub/membergate/migrations"
	"github.com/lanternclub/membergate/modules/api"
	"github.com/lanternclub/membergate/modules/site"
	"github.com/lanternclub/membergate/pkg/config"
	"github.com/lanternclub/membergate/pkg/httpserver"
	"github.com/lanternclub/membergate/pkg/logger"
	"github.com/lanternclub/membergate/pkg/pg"
	"github.com/lanternclub/membergate/pkg/ratelimit"
	"github.com/lanternclub/membergate/pkg/redisconn"
	"github.com/lanternclub/membergate/pkg/requestid"
)

type appConfig struct {
	TierCatalogPath string `env:"TIER_CATALOG_PATH"`
}

var libraryItems = []content.Item{
	{
		Slug:  "welcome",
		Title: "Welcome to the library",
		Body:  "<p>New essays land every week. Start anywhere.</p>",
	},
}

func main() {
	_ = config.LoadEnv(".env")

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg,
		logger.WithService("membergate"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), log); err != nil {
		log.Error("service stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		appCfg      appConfig
		pgCfg       pg.Config
		redisCfg    redisconn.Config
		httpCfg     httpserver.Config
		ingestCfg   membership.IngestConfig
		sessionCfg  membership.SessionConfig
		resolverCfg membership.ResolverConfig
		gateCfg     membership.GateConfig
		billingCfg  billing.Config
		mailerCfg   mailer.Config
		cacheCfg    content.CacheConfig
		limitCfg    ratelimit.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&ingestCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&resolverCfg)
	config.MustLoad(&gateCfg)
	config.MustLoad(&billingCfg)
	config.MustLoad(&mailerCfg)
	config.MustLoad(&cacheCfg)
	config.MustLoad(&limitCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
		return err
	}

	redisClient, err := redisconn.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	store := membership.NewPgStore(pool)
	tiers := loadTierCatalog(appCfg.TierCatalogPath, log)

	sender := newEmailSender(mailerCfg, log)
	provider := newBillingProvider(billingCfg, log)

	ingestor, err := membership.NewIngestor(store, sender, log, ingestCfg)
	if err != nil {
		return err
	}

	sessions, err := membership.NewSessionManager(sessionCfg)
	if err != nil {
		return err
	}

	resolver := membership.NewResolver(store, provider, tiers, log, resolverCfg)
	members := membership.NewMembers(sessions)
	gate := membership.NewGate(sessions, gateCfg)

	// Library content ships with the binary for now; the repository
	// interface is what the eventual CMS integration will implement.
	items := content.NewCachedRepository(content.NewMemoryRepository(libraryItems...), redisClient, cacheCfg, log)

	limiter := ratelimit.NewRedisLimiter(redisClient, "handshake", limitCfg)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(gate.Middleware)

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redisconn.Healthcheck(redisClient),
	))
	r.Mount("/api", api.Router(
		api.NewService(ingestor, resolver, sessions, members, store, log),
		ratelimit.Middleware(limiter, nil, log),
	))
	r.Mount("/", site.Router(site.NewService(members, items, log)))

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// loadTierCatalog reads the catalog file when configured and falls back to
// the built-in single tier otherwise.
func loadTierCatalog(path string, log *slog.Logger) *membership.TierCatalog {
	if path == "" {
		return membership.DefaultTierCatalog()
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn("tier catalog unreadable, using default", "path", path, logger.Error(err))
		return membership.DefaultTierCatalog()
	}
	defer f.Close()

	catalog, err := membership.ParseTierCatalog(f)
	if err != nil {
		log.Warn("tier catalog invalid, using default", "path", path, logger.Error(err))
		return membership.DefaultTierCatalog()
	}
	return catalog
}

func newEmailSender(cfg mailer.Config, log *slog.Logger) mailer.EmailSender {
	if cfg.PostmarkServerToken == "" {
		log.Info("no postmark token configured, using the logging mail sender")
		return mailer.NewDevSender(log)
	}

	sender, err := mailer.NewPostmarkClient(cfg)
	if err != nil {
		log.Warn("postmark misconfigured, using the logging mail sender", logger.Error(err))
		return mailer.NewDevSender(log)
	}
	return sender
}

func newBillingProvider(cfg billing.Config, log *slog.Logger) billing.Provider {
	switch cfg.Kind {
	case "paddle":
		var paddleCfg billing.PaddleConfig
		config.MustLoad(&paddleCfg)
		provider, err := billing.NewPaddleProvider(paddleCfg)
		if err != nil {
			log.Warn("paddle misconfigured, handshake will rely on the store only", logger.Error(err))
			return nil
		}
		return provider
	case "http":
		var httpCfg billing.HTTPConfig
		config.MustLoad(&httpCfg)
		provider, err := billing.NewHTTPProvider(httpCfg)
		if err != nil {
			log.Warn("billing api misconfigured, handshake will rely on the store only", logger.Error(err))
			return nil
		}
		return provider
	default:
		log.Warn("unknown billing provider kind, handshake will rely on the store only", "kind", cfg.Kind)
		return nil
	}
}
