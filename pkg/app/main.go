package app

import (
	"github.com/ghuser/liveboard/pkg/cache"
	"github.com/ghuser/liveboard/pkg/config"
	"github.com/ghuser/liveboard/pkg/database"
	"github.com/ghuser/liveboard/pkg/events"
	"github.com/ghuser/liveboard/pkg/logger"
	"github.com/ghuser/liveboard/pkg/realtime"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each service's Routes call during server initialization.
//
// Db, EventBus, and Redis are nil when STORE_BACKEND=memory; Hub is nil when
// REALTIME_ENABLED=false. Service wiring switches on these fields, and the
// hub's methods are no-ops on a nil receiver, so handlers never nil-check.
//
// Logging: Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "creating project", "project_id", id)
//
// Use Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Cfg      *config.Config
	Logger   logger.Logger
	Db       *database.Database
	EventBus *events.Bus
	Redis    *cache.RedisClient
	Hub      *realtime.Hub
}
