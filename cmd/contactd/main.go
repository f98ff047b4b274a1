package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/vvsCodeDev/vvsCodeWebDev/modules/contact"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/config"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/email"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/events"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/httpserver"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/logger"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/mongo"
	"github.com/vvsCodeDev/vvsCodeWebDev/pkg/ratelimit"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	var (
		appCfg     appConfig
		mongoCfg   mongo.Config
		httpCfg    httpserver.Config
		emailCfg   email.Config
		eventsCfg  events.Config
		contactCfg contact.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&eventsCfg)
	config.MustLoad(&contactCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, "contactd"))
	logger.SetAsDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mongo.New(ctx, mongoCfg)
	if err != nil {
		log.Error("failed to connect to mongodb", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(mongoCfg.Database)

	eventStorage := events.NewMongoStorage(db)
	publisher, err := events.NewPublisher(eventStorage,
		events.WithDefaultMaxAttempts(eventsCfg.MaxAttempts))
	if err != nil {
		log.Error("failed to create event publisher", logger.Error(err))
		os.Exit(1)
	}

	consumer, err := events.NewConsumer(eventStorage,
		eventsCfg.ConsumerOptions(events.WithConsumerLogger(log))...)
	if err != nil {
		log.Error("failed to create event consumer", logger.Error(err))
		os.Exit(1)
	}

	dispatcher := contact.NewDispatcher(newSender(emailCfg, log), contactCfg.AlertEmailTo, log)
	consumer.RegisterHandler(dispatcher.EventHandler())

	limiter, err := ratelimit.NewFixedWindow(ratelimit.NewMemoryStore(),
		contactCfg.RateLimit, contactCfg.RateWindow)
	if err != nil {
		log.Error("failed to create rate limiter", logger.Error(err))
		os.Exit(1)
	}

	handler := contact.NewHandler(
		contact.NewMongoStore(db),
		contact.NewEventPublisher(publisher),
		contactCfg,
		log,
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log, mongo.Healthcheck(client)))
	r.Mount("/", contact.Router(handler, limiter))

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(consumer.Run(ctx))
	eg.Go(func() error {
		defer cancel() // server exit stops the consumer too
		return srv.Run(ctx, r)
	})

	if err := eg.Wait(); err != nil {
		log.Error("service stopped with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("service stopped")
}

// newSender picks the outbound email implementation: Postmark when tokens
// are configured, the filesystem dev sender otherwise.
func newSender(cfg email.Config, log *slog.Logger) email.EmailSender {
	if cfg.PostmarkServerToken != "" && cfg.PostmarkAccountToken != "" {
		return email.MustNewPostmarkClient(cfg)
	}
	log.Warn("postmark tokens not configured, writing emails to disk",
		slog.String("dir", cfg.DevMailDir))
	return email.NewDevSender(cfg.DevMailDir)
}
