package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview"
	"github.com/dmitrymomot/mailpreview/handlers"
	"github.com/dmitrymomot/mailpreview/middlewares"
	"github.com/dmitrymomot/mailpreview/pkg/cache"
	"github.com/dmitrymomot/mailpreview/pkg/drafts"
	"github.com/dmitrymomot/mailpreview/pkg/logger"
	"github.com/dmitrymomot/mailpreview/pkg/mailer"
	"github.com/dmitrymomot/mailpreview/pkg/preview"
	"github.com/dmitrymomot/mailpreview/pkg/redis"
	"github.com/dmitrymomot/mailpreview/pkg/relay"
	"github.com/dmitrymomot/mailpreview/views"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the editor and the send-email API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $ADDR or :3001)")
}

func serve(ctx context.Context, cfg Config) error {
	log := newLogger(cfg)
	defer logger.Flush(cfg.ShutdownTimeout)

	var (
		client  goredis.UniversalClient
		runOpts = []mailpreview.RunOption{
			mailpreview.WithContext(ctx),
			mailpreview.Logger(log),
			mailpreview.ShutdownTimeout(cfg.ShutdownTimeout),
			mailpreview.OnReady(func(addr net.Addr) {
				log.Info("editor ready", slog.String("url", "http://"+addr.String()))
			}),
		}
		healthOpts []mailpreview.HealthOption
	)

	if cfg.Redis.Enabled() {
		c, err := redis.Open(ctx, cfg.Redis, log)
		if err != nil {
			return err
		}
		client = c
		healthOpts = append(healthOpts, mailpreview.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, mailpreview.ShutdownHook(redis.Shutdown(client)))
	}

	store, err := cache.New[string](cfg.Cache, client)
	if err != nil {
		return fmt.Errorf("open draft store: %w", err)
	}
	runOpts = append(runOpts, mailpreview.ShutdownHook(func(context.Context) error { return store.Close() }))

	sender, err := newSender(cfg, log)
	if err != nil {
		return err
	}

	cookies, err := newCookieManager(cfg.Cookie, log)
	if err != nil {
		return err
	}

	renderer := preview.New(
		preview.WithLogger(log),
		preview.WithSanitize(cfg.SanitizePreview),
		preview.WithDefaultSubject(cfg.Mailer.FallbackSubject),
	)
	svc := relay.New(mailer.New(sender, cfg.Mailer),
		relay.WithLogger(log),
		relay.WithTags(mailer.SimpleTags("preview")),
	)

	app := mailpreview.New(
		mailpreview.WithLogger(log),
		mailpreview.WithCookieManager(cookies),
		mailpreview.WithMiddleware(
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.CORSOrigins...)),
			middlewares.RequestID(),
			middlewares.AccessLog(middlewares.WithAccessLogSkipPrefix("/health/", "/static/")),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.Theme(),
		),
		mailpreview.WithStaticFiles("/static/", views.Static, "static"),
		mailpreview.WithHealthChecks(healthOpts...),
		mailpreview.WithErrorHandler(handlers.ErrorHandler),
		mailpreview.WithNotFoundHandler(handlers.NotFound),
		mailpreview.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		mailpreview.WithHandlers(
			handlers.NewEditor(drafts.New(store, drafts.WithTTL(cfg.DraftTTL), drafts.WithLogger(log)), renderer),
			handlers.NewSend(svc),
		),
	)

	log.Info("starting server",
		slog.String("addr", cfg.Addr),
		slog.String("transport", cfg.Mailer.Transport),
		slog.String("cache", cfg.Cache.Driver),
	)
	return app.Run(cfg.Addr, runOpts...)
}
