// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-omnifolio/internal/adapter"
	"github.com/MKhiriev/go-omnifolio/internal/bridge"
	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/crypto"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/service"
	"github.com/MKhiriev/go-omnifolio/internal/store"
	"github.com/MKhiriev/go-omnifolio/internal/tabs"
	"github.com/MKhiriev/go-omnifolio/internal/telemetry"
	"github.com/MKhiriev/go-omnifolio/internal/tui"
	"github.com/MKhiriev/go-omnifolio/internal/utils"
	"github.com/MKhiriev/go-omnifolio/internal/workers"
	"github.com/MKhiriev/go-omnifolio/models"
)

const shutdownTimeout = 5 * time.Second

// App is one client window: a tab of the device with its own sync stack,
// sharing the local database and the tab channel with the other windows.
type App struct {
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}

	return &App{cfg: cfg, buildInfo: buildInfo, logger: logger}, nil
}

// Run wires the client and shows the UI until the user quits or ctx is
// cancelled. Everything is released in reverse order of creation.
func (a *App) Run(ctx context.Context) error {
	userID, err := utils.ParseUserIDFromJWT(a.cfg.App.Token)
	if err != nil {
		return fmt.Errorf("read user id from token: %w", err)
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, a.cfg.Telemetry, "omnifolio-client", a.buildInfo.BuildVersion())
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer a.withTimeout(func(ctx context.Context) {
		if err := shutdownTelemetry(ctx); err != nil {
			a.logger.Err(err).Msg("error shutting down telemetry")
		}
	})

	storages, err := store.NewClientStorages(ctx, a.cfg.Storage.Path, a.logger)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	defer storages.Close()

	local := store.NewLocalStateStore(storages.StateRepository, a.cfg.Storage.WriteDelay, a.logger)
	defer a.withTimeout(local.Flush)

	remote, err := adapter.NewClient(a.cfg.Adapter, a.cfg.App, a.logger)
	if err != nil {
		return fmt.Errorf("create remote adapter: %w", err)
	}
	defer remote.Close()

	channel, err := tabs.NewFileChannel(a.cfg.Tabs.ChannelDir, a.logger)
	if err != nil {
		return fmt.Errorf("open tab channel: %w", err)
	}
	defer channel.Close()

	coordinator := tabs.NewCoordinator(channel, a.cfg.Tabs, a.logger)
	log := a.logger.WithTab(coordinator.TabID())

	services := service.NewClientServices(local, remote, crypto.NewKeyChainService(), coordinator, a.cfg.Sync, log)
	defer services.Close()

	b := bridge.New(bridge.NewMemoryBus(), services.Container, log)

	sess := &session{
		userID:      userID,
		services:    services,
		leader:      coordinator,
		keyring:     crypto.NewDeviceKeyring(storages.StateRepository),
		rememberKey: a.cfg.App.RememberKey,
		importer:    b,
		legacyPath:  a.cfg.App.LegacyEvents,
		logger:      log,
	}
	services.Engine.OnKeyAccepted(sess.keyAccepted)
	ui := tui.New(sess, a.buildInfo, log)

	unsubscribeState := services.Container.Subscribe(ui.NotifyState)
	defer unsubscribeState()
	unsubscribeSync := services.Tracker.Subscribe(ui.NotifySync)
	defer unsubscribeSync()
	services.Engine.OnConflict(ui.NotifyConflict)
	coordinator.OnLeadershipChange(ui.NotifyLeader)

	if err = coordinator.Start(ctx); err != nil {
		return fmt.Errorf("start tab coordinator: %w", err)
	}
	defer a.withTimeout(func(ctx context.Context) {
		if err := coordinator.Close(ctx); err != nil {
			log.Err(err).Msg("error leaving tab election")
		}
	})

	b.Start(ctx)
	defer b.Close()

	workersCtx, stopWorkers := context.WithCancel(ctx)
	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		if err := a.newWorkers(remote, services, log).Run(workersCtx); err != nil {
			log.Err(err).Msg("background workers stopped")
		}
	}()
	defer func() {
		stopWorkers()
		<-workersDone
	}()

	err = ui.Run(ctx)
	switch {
	case errors.Is(err, tui.ErrUserQuit):
		return nil
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return nil
	}
	return err
}

func (a *App) newWorkers(remote adapter.Client, services *service.ClientServices, log *logger.Logger) *workers.Workers {
	list := []workers.Worker{
		workers.NewConnectivityWorker(remote, services.Tracker, a.cfg.Workers.ConnectivityInterval, log),
	}

	events, err := adapter.NewEventsListener(a.cfg.Adapter, a.cfg.App, log)
	if err != nil {
		log.Warn().Err(err).Msg("remote events are disabled")
		return workers.NewWorkers(list...)
	}

	list = append(list, workers.NewRemoteEventsWorker(events, services.Engine, a.cfg.Workers.EventsReconnect, log))
	return workers.NewWorkers(list...)
}

// withTimeout runs a shutdown step with its own deadline; the run context
// is usually cancelled by then.
func (a *App) withTimeout(fn func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	fn(ctx)
}
