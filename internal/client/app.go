package client

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/adapter"
	"github.com/MKhiriev/go-field-survey/internal/config"
	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/service"
	"github.com/MKhiriev/go-field-survey/internal/store"
	"github.com/MKhiriev/go-field-survey/internal/utils"
	"github.com/MKhiriev/go-field-survey/internal/watcher"
	"github.com/MKhiriev/go-field-survey/internal/workers"
)

// drainTimeout bounds how long Run waits for a background pass on shutdown.
const drainTimeout = 10 * time.Second

type App struct {
	cfg      *config.ClientConfig
	logger   *logger.Logger
	storages *store.ClientStorages
	services *service.ClientServices
	workers  *workers.Workers
}

// NewApp opens the local store and builds every client service from cfg.
// The caller must Close the returned App.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create remote adapter: %w", err)
	}
	probe := adapter.NewHealthProbe(remote, cfg.Adapter.ProbeTimeout)

	svcs := service.NewClientServices(storages, remote, probe, utils.NewClock(), cfg.Workers.SyncInterval, log)

	var inbox workers.Worker
	if cfg.Workers.ImportDir != "" {
		inbox = watcher.NewImportInbox(cfg.Workers.ImportDir, svcs.TransferService, 0, log)
	}

	return &App{
		cfg:      cfg,
		logger:   log,
		storages: storages,
		services: svcs,
		workers:  workers.NewWorkers(svcs.SyncJob, inbox),
	}, nil
}

// Services exposes the client services to one-shot commands.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Run performs an initial sync pass, starts the background workers and blocks
// until ctx is done. Only a local store failure makes it return an error.
func (a *App) Run(ctx context.Context) error {
	report, err := a.services.SyncService.RunSyncPass(ctx)
	if err != nil {
		return fmt.Errorf("initial sync: %w", err)
	}
	a.logger.Info().
		Str("phase", string(report.FinalPhase)).
		Int("total", report.Total).
		Int("pending", report.Pending).
		Msg("initial sync finished")

	if err := a.workers.Start(ctx); err != nil {
		return fmt.Errorf("start workers: %w", err)
	}
	a.logger.Info().
		Dur("sync_interval", a.cfg.Workers.SyncInterval).
		Str("import_dir", a.cfg.Workers.ImportDir).
		Msg("client running")

	<-ctx.Done()

	a.workers.Stop()

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()
	if err := a.services.SyncService.WaitIdle(drainCtx); err != nil {
		a.logger.Warn().Err(err).Msg("background sync still running at shutdown")
	}

	a.logger.Info().Msg("client stopped")
	return nil
}

// Close waits for a background pass to finish, then closes the local store.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	_ = a.services.SyncService.WaitIdle(ctx)

	return a.storages.Close()
}

var _ Client = (*App)(nil)
