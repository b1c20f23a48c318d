// Package main is the entry point for the hydration hub background worker.
//
// The worker owns the periodic sweeps the engines cannot do inline:
// achievement rules based purely on the passage of time (streaks, perfect
// periods) can become satisfied without any intake being logged, so the
// worker re-evaluates them on an interval and dispatches the resulting
// reward events.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hydrohub/hydration-hub/config"
	"github.com/hydrohub/hydration-hub/internal/domain/achievement"
	"github.com/hydrohub/hydration-hub/internal/domain/challenge"
	"github.com/hydrohub/hydration-hub/internal/domain/hydration"
	"github.com/hydrohub/hydration-hub/internal/domain/intake"
	"github.com/hydrohub/hydration-hub/internal/domain/profile"
	"github.com/hydrohub/hydration-hub/internal/domain/shared"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/messaging"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/persistence/memory"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/persistence/postgres"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/persistence/redis"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/scheduler"
	"github.com/hydrohub/hydration-hub/internal/infrastructure/scheduler/jobs"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

// eventBus is shared.EventBus plus the lifecycle both bus implementations
// provide.
type eventBus interface {
	shared.EventBus
	Close() error
}

// stores bundles the persistence implementations behind their contracts so
// run can swap Postgres for in-memory in development.
type stores struct {
	intakes      intake.IntakeStore
	catalog      intake.DrinkCatalog
	settings     intake.SettingsStore
	challenges   challenge.Store
	achievements achievement.Store
	profiles     profile.Store
	uow          shared.UnitOfWork
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)
	log.Info("starting hydration hub worker",
		"env", cfg.App.Environment,
		"version", cfg.App.Version,
		"timezone", cfg.App.Timezone,
	)

	st, cleanup, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// Reward transport. Without Redis, events stay in-process.
	var bus eventBus
	var redisCache *redis.Cache

	busConfig := messaging.DefaultInMemoryEventBusConfig()
	busConfig.Logger = log

	if !cfg.Redis.Disabled {
		redisCache, err = redis.NewCache(redisConfig(cfg))
		if err != nil {
			log.Warn("redis unavailable, falling back to in-process rewards", "error", err)
		}
	}

	if redisCache != nil {
		defer redisCache.Close()
		bus, err = messaging.NewRedisEventBus(messaging.RedisEventBusConfig{
			Client:         redis.NewPubSubClient(redisCache.Client()),
			ChannelName:    cfg.Redis.RewardChannel,
			LocalBusConfig: busConfig,
			Logger:         log,
		})
		if err != nil {
			return fmt.Errorf("failed to start redis event bus: %w", err)
		}
	} else {
		bus = messaging.NewInMemoryEventBus(busConfig)
	}
	defer func() {
		log.Info("closing event bus")
		_ = bus.Close()
	}()

	sink := messaging.NewBreakerSink(bus, log)

	// Domain engines.
	loc := cfg.App.Location
	aggregator := hydration.NewAggregator(st.intakes, st.catalog, st.settings, cfg.HydrationConfig(), loc)
	ledger := profile.NewLedger(st.profiles, sink)
	achievementEngine := achievement.NewEngine(
		st.achievements,
		aggregator,
		st.intakes,
		st.settings,
		st.challenges,
		ledger,
		st.uow,
		sink,
		loc,
		log,
	)

	// Scheduler.
	sched := scheduler.NewScheduler(scheduler.SchedulerConfig{
		Logger:   log,
		Timezone: loc,
	})
	sweep := jobs.NewAchievementSweepJob(achievementEngine, log)
	if err := sched.Register(sweep, scheduler.NewIntervalSchedule(cfg.Scheduler.AchievementSweepInterval)); err != nil {
		return fmt.Errorf("failed to register sweep job: %w", err)
	}

	if cfg.Scheduler.Enabled {
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer func() {
			log.Info("stopping scheduler")
			_ = sched.Stop()
		}()
	} else {
		log.Warn("scheduler disabled, worker will idle")
	}

	log.Info("hydration hub worker is running",
		"sweep_interval", cfg.Scheduler.AchievementSweepInterval.String(),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
	}

	log.Info("starting graceful shutdown", "timeout", cfg.App.ShutdownTimeout.String())
	return nil
}

// buildStores wires Postgres-backed stores, or in-memory ones when no
// database is configured.
func buildStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (stores, func(), error) {
	if cfg.Database.URL == "" {
		log.Warn("no DATABASE_URL configured, using in-memory stores")
		return stores{
			intakes:      memory.NewIntakeStore(),
			catalog:      memory.NewDrinkCatalog(),
			settings:     memory.NewSettingsStore(),
			challenges:   memory.NewChallengeStore(),
			achievements: memory.NewAchievementStore(),
			profiles:     memory.NewProfileStore(),
			uow:          memory.NewUnitOfWork(),
		}, func() {}, nil
	}

	log.Info("connecting to database")
	conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return stores{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("checking database migrations")
	if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
		conn.Close()
		return stores{}, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database schema is up to date")

	cleanup := func() {
		log.Info("closing database connection")
		conn.Close()
	}
	return stores{
		intakes:      postgres.NewIntakeStore(conn),
		catalog:      postgres.NewDrinkCatalog(conn),
		settings:     postgres.NewSettingsStore(conn),
		challenges:   postgres.NewChallengeStore(conn),
		achievements: postgres.NewAchievementStore(conn),
		profiles:     postgres.NewProfileStore(conn),
		uow:          postgres.NewUnitOfWork(conn),
	}, cleanup, nil
}

func redisConfig(cfg *config.Config) redis.Config {
	rc := redis.DefaultConfig()
	rc.Host = cfg.Redis.Host
	rc.Port = cfg.Redis.Port
	rc.Password = cfg.Redis.Password
	rc.DB = cfg.Redis.DB
	rc.PoolSize = cfg.Redis.PoolSize
	rc.MinIdleConns = cfg.Redis.MinIdleConns
	rc.DialTimeout = cfg.Redis.DialTimeout
	rc.ReadTimeout = cfg.Redis.ReadTimeout
	rc.WriteTimeout = cfg.Redis.WriteTimeout
	return rc
}

// setupLogger configures structured logging for the process.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	switch cfg.Observability.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
