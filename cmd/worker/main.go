package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/liveboard/pkg/app"
	"github.com/ghuser/liveboard/pkg/cache"
	"github.com/ghuser/liveboard/pkg/config"
	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/database"
	"github.com/ghuser/liveboard/pkg/events"
	"github.com/ghuser/liveboard/pkg/logger"
	"github.com/ghuser/liveboard/pkg/telemetry"
	foodEvents "github.com/ghuser/liveboard/services/food/domain/events"
	foodModels "github.com/ghuser/liveboard/services/food/domain/models"
	projectEvents "github.com/ghuser/liveboard/services/project/domain/events"
	projectModels "github.com/ghuser/liveboard/services/project/domain/models"
	userEvents "github.com/ghuser/liveboard/services/user/domain/events"
	userModels "github.com/ghuser/liveboard/services/user/domain/models"
)

// The worker consumes the change events published by the postgres stores and
// keeps the Redis read-model caches coherent: created/updated events warm the
// entry, deleted events evict it. It only makes sense with the postgres
// backend — the memory backend publishes nothing.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	if cfg.StoreBackend != config.StorePostgres {
		log.Error("worker requires STORE_BACKEND=postgres")
		os.Exit(1)
	}

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Cfg:      cfg,
		Logger:   log,
		Db:       pool,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// Bus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires one cache-maintenance handler per change topic.
// Handlers must be idempotent — the bus retries up to 3× on failure.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	projectCache := cache.New[*projectModels.Project](a.Redis, "project")
	foodCache := cache.New[*foodModels.FoodItem](a.Redis, "food")
	userCache := cache.New[*userModels.User](a.Redis, "user")

	subs := []struct {
		topic   string
		handler func(context.Context, *message.Message) error
	}{
		{projectEvents.TopicProjectCreated, handleProjectChange(a, projectCache)},
		{projectEvents.TopicProjectUpdated, handleProjectChange(a, projectCache)},
		{projectEvents.TopicProjectDeleted, handleProjectChange(a, projectCache)},
		{foodEvents.TopicFoodCreated, handleFoodChange(a, foodCache)},
		{foodEvents.TopicFoodUpdated, handleFoodChange(a, foodCache)},
		{foodEvents.TopicFoodDeleted, handleFoodChange(a, foodCache)},
		{userEvents.TopicUserCreated, handleUserChange(a, userCache)},
		{userEvents.TopicUserUpdated, handleUserChange(a, userCache)},
		{userEvents.TopicUserDeleted, handleUserChange(a, userCache)},
	}

	topics := make([]string, 0, len(subs))
	for _, sub := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, sub.topic, sub.handler)
		if err != nil {
			return err
		}
		drainErrors(ctx, a, sub.topic, errCh)
		topics = append(topics, sub.topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// drainErrors logs subscriber errors in the background so the channel never
// blocks.
func drainErrors(ctx context.Context, a *app.Application, topic string, errCh <-chan error) {
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
		}
	}()
}

func handleProjectChange(a *app.Application, c *cache.Cache[*projectModels.Project]) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt projectEvents.ProjectChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		if evt.Project == nil {
			return nil
		}
		applyCacheChange(ctx, a, c, evt.Action, evt.Project)
		return nil
	}
}

func handleFoodChange(a *app.Application, c *cache.Cache[*foodModels.FoodItem]) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt foodEvents.FoodChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		if evt.Food == nil {
			return nil
		}
		applyCacheChange(ctx, a, c, evt.Action, evt.Food)
		return nil
	}
}

func handleUserChange(a *app.Application, c *cache.Cache[*userModels.User]) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt userEvents.UserChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		if evt.User == nil {
			return nil
		}
		applyCacheChange(ctx, a, c, evt.Action, evt.User)
		return nil
	}
}

// applyCacheChange warms the cache entry for created/updated snapshots and
// evicts it for deleted ones. Cache maintenance is best-effort; failures are
// logged, never retried through the bus.
func applyCacheChange[T crud.Entity[T]](ctx context.Context, a *app.Application, c *cache.Cache[T], action string, e T) {
	var err error
	if action == "deleted" {
		err = c.Delete(ctx, e.EntityID())
	} else {
		err = c.Set(ctx, e.EntityID(), e)
	}
	if err != nil {
		a.Logger.WarnContext(ctx, "cache maintenance failed",
			"action", action, "id", e.EntityID(), "error", err)
		return
	}
	a.Logger.InfoContext(ctx, "cache updated", "action", action, "id", e.EntityID())
}
