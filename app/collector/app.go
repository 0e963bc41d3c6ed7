// Package collector wires the vote collector process: store, gateway, calculation pipeline,
// poll schedule and the health server.
package collector

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/canopy-network/votecollector/pkg/db/postgres"
	store "github.com/canopy-network/votecollector/pkg/db/postgres/collector"
	"github.com/canopy-network/votecollector/pkg/gateway"
	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/canopy-network/votecollector/pkg/logging"
	"github.com/canopy-network/votecollector/pkg/metrics"
	"github.com/canopy-network/votecollector/pkg/redis"
	"github.com/canopy-network/votecollector/pkg/retry"
	"github.com/canopy-network/votecollector/pkg/votecalc"
	"github.com/canopy-network/votecollector/pkg/votepower"
)

type App struct {
	Logger     *zap.Logger
	InstanceID string
	Config     Config
	Metrics    *metrics.Metrics

	DB    *store.DB
	Redis *redis.Client

	Queue      *votecalc.Queue
	Worker     *votecalc.Worker
	Poller     *votecalc.Poller
	Reconciler *votecalc.Reconciler

	// Cron triggers Poller.Cycle on Config.PollCron.
	Cron   *cron.Cron
	Server *http.Server

	pools      []pond.Pool
	workerDone chan struct{}
	reconciled atomic.Bool
}

// Initialize builds the application. Startup failures are fatal.
func Initialize(ctx context.Context) *App {
	instanceID := uuid.NewString()
	logger, err := logging.New(zap.String("instance", instanceID))
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	logger.Info("Starting vote collector",
		zap.Stringer("network", cfg.Network),
		zap.String("governance_component", cfg.GovernanceComponent),
		zap.Strings("gateways", cfg.GatewayURLs))

	m := metrics.New(prometheus.WrapRegistererWith(prometheus.Labels{"instance_id": instanceID}, prometheus.DefaultRegisterer))

	db, err := store.New(ctx, logger, "votecollector", postgres.GetPoolConfigForComponent("collector"))
	if err != nil {
		logger.Fatal("Unable to initialize collector database", zap.Error(err))
	}

	ledger := gateway.Retrying(gateway.NewHTTPWithOpts(gateway.Opts{
		Endpoints: cfg.GatewayURLs,
		Timeout:   cfg.GatewayTimeout,
		RPS:       cfg.GatewayRPS,
	}), retry.LedgerConfig(), logger)
	component := governance.NewComponent(logger, ledger, cfg.GovernanceComponent)

	catalog := votepower.DefaultCatalog()
	if cfg.VotePowerConfig != "" {
		if catalog, err = votepower.LoadCatalog(cfg.VotePowerConfig); err != nil {
			logger.Fatal("Unable to load vote power catalog", zap.String("path", cfg.VotePowerConfig), zap.Error(err))
		}
	}

	sourcePool := pond.NewPool(cfg.DexPositionConcurrency)
	fetchPool := pond.NewPool(cfg.DexPositionConcurrency * 2)
	calcPool := pond.NewPool(cfg.CalculationConcurrency)
	reconcilePool := pond.NewPool(5)

	snapshots := &votepower.Service{
		Logger:         logger,
		Reader:         ledger,
		Network:        cfg.Network,
		XRD:            cfg.Network.XRD(),
		LSULPResource:  cfg.LSULPResource,
		LSULPComponent: cfg.LSULPComponent,
		Catalog:        catalog,
		SourceWorkers:  sourcePool,
		FetchWorkers:   fetchPool,
		Metrics:        m,
	}
	engine := &votecalc.Engine{
		Logger:   logger,
		Store:    db,
		Votes:    component,
		Ledger:   ledger,
		Snapshot: snapshots,
		Metrics:  m,
	}

	app := &App{
		Logger:     logger,
		InstanceID: instanceID,
		Config:     cfg,
		Metrics:    m,
		DB:         db,
		Queue:      votecalc.NewQueue(),
		pools:      []pond.Pool{calcPool, reconcilePool, sourcePool, fetchPool},
		workerDone: make(chan struct{}),
	}

	var notifier votecalc.Notifier
	if cfg.RedisEnabled {
		rdb, err := redis.NewClient(ctx, logger)
		if err != nil {
			// Notifications are best-effort; run without them.
			logger.Warn("Redis unavailable, change notifications disabled", zap.Error(err))
		} else {
			app.Redis = rdb
			notifier = rdb
		}
	}

	app.Worker = &votecalc.Worker{
		Logger:   logger,
		Queue:    app.Queue,
		Engine:   engine,
		Pool:     calcPool,
		Notifier: notifier,
		Metrics:  m,
	}
	app.Poller = &votecalc.Poller{
		Logger:       logger,
		Ledger:       ledger,
		Cursor:       db,
		Lock:         store.NewPollLock(logger, db, cfg.PollTimeout),
		Events:       governance.NewProcessor(logger, component, cfg.GovernanceComponent),
		Queue:        app.Queue,
		Component:    cfg.GovernanceComponent,
		PageSize:     cfg.PageSize,
		CycleTimeout: cfg.CycleTimeout,
		Override:     cfg.CursorOverride,
		Metrics:      m,
	}
	app.Reconciler = &votecalc.Reconciler{
		Logger:   logger,
		Entities: component,
		Store:    db,
		Queue:    app.Queue,
		Pool:     reconcilePool,
	}

	if err := app.SetupScheduler(ctx, cfg.PollCron); err != nil {
		logger.Fatal("Unable to schedule poll cycle", zap.String("cron", cfg.PollCron), zap.Error(err))
	}
	app.SetupServer()

	return app
}

// SetupScheduler registers the poll cycle. A cycle still running when the next tick fires is not
// doubled up within this instance; across instances the poll lease decides.
func (a *App) SetupScheduler(ctx context.Context, spec string) error {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(a.Logger.Named("cron")))
	a.Cron = cron.New(cron.WithSeconds(), cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	_, err := a.Cron.AddFunc(spec, func() {
		// Errors are logged and counted by the poller; the next tick retries.
		_ = a.Poller.Cycle(ctx)
	})
	return err
}

// Start runs reconciliation, the worker, the schedule and the server, and blocks until ctx is done.
func (a *App) Start(ctx context.Context) {
	go func() {
		defer close(a.workerDone)
		a.Worker.Run(ctx)
	}()

	go func() {
		defer a.reconciled.Store(true)
		tk, err := a.Reconciler.Run(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				a.Logger.Error("Startup reconciliation failed", zap.Error(err))
			}
			return
		}
		if err := tk.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.Logger.Warn("Some reconciled entities failed to calculate", zap.Error(err))
		}
	}()

	a.Cron.Start()
	a.Logger.Info("Poll schedule started", zap.String("cron", a.Config.PollCron))

	go func() {
		a.Logger.Info("Starting server", zap.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("Server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	a.Stop()
}

// Stop shuts everything down in dependency order.
func (a *App) Stop() {
	a.Logger.Info("Shutting down…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = a.Server.Shutdown(shutdownCtx)

	<-a.Cron.Stop().Done()
	<-a.workerDone

	var wg sync.WaitGroup
	for _, p := range a.pools {
		wg.Add(1)
		go func(p pond.Pool) {
			defer wg.Done()
			p.StopAndWait()
		}(p)
	}
	wg.Wait()

	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	a.DB.Close()

	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
	_ = a.Logger.Sync()
}
