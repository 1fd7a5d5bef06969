package router

import (
	"context"

	"github.com/oksasatya/growth-partner/internal/application"
	"github.com/oksasatya/growth-partner/internal/container"
	pginfra "github.com/oksasatya/growth-partner/internal/infrastructure/postgres"
	"github.com/oksasatya/growth-partner/internal/infrastructure/redisstore"
	"github.com/oksasatya/growth-partner/internal/infrastructure/search"
	handlers "github.com/oksasatya/growth-partner/internal/interface/http"
	"github.com/oksasatya/growth-partner/internal/router/modules"
	"github.com/oksasatya/growth-partner/pkg/helpers"
)

// Services are the use cases shared by HTTP modules and background tasks.
type Services struct {
	Users     *application.UserService
	Goals     *application.GoalService
	Snapshots *application.SnapshotService
}

// BuildServices wires repositories and optional infrastructure from the
// container. Optional collaborators are only assigned when configured so the
// services never hold a typed-nil interface.
func BuildServices(ctx context.Context) *Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(container.GetDB())
	goals := pginfra.NewGoalRepository(container.GetDB())

	snapshots := application.NewSnapshotService(users, goals, nil, nil)
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		snapshots.Store = helpers.NewGCSStore(gcs, cfg.GCSBucket)
	}
	if rdb := container.GetRedis(); rdb != nil && snapshots.Store != nil {
		snapshots.Dirty = redisstore.NewDirtySet(rdb, redisstore.DefaultDirtyKey)
	}

	goalSvc := application.NewGoalService(users, goals, logger)
	goalSvc.Snapshots = snapshots
	if pub := container.GetRabbitPub(); pub != nil && cfg.NotificationsEnabled {
		goalSvc.Publisher = pub
	}
	if es := container.GetES(); es != nil {
		idx := search.NewGoalIndex(es, cfg.ESGoalsIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			logger.WithError(err).WithField("index", cfg.ESGoalsIndex).Warn("goal index bootstrap failed; goal search disabled")
		} else {
			goalSvc.Index = idx
		}
	}

	return &Services{
		Users:     application.NewUserService(users, logger),
		Goals:     goalSvc,
		Snapshots: snapshots,
	}
}

func healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}

// InitModules registers every feature module. Call once during startup.
func InitModules(r *Registry, svc *Services) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks())))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, svc.Goals, svc.Snapshots, logger), cfg))
	r.Add(modules.NewGoalModule(handlers.NewGoalHandler(svc.Goals, logger), cfg))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis(), r.Routes))
	}
}
