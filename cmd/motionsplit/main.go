// Command motionsplit extracts the videos embedded in motion photos.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/motionsplit/internal/adapters/driven/config/file"
	"github.com/custodia-labs/motionsplit/internal/adapters/driven/ffmpeg"
	"github.com/custodia-labs/motionsplit/internal/adapters/driven/storage/disk"
	"github.com/custodia-labs/motionsplit/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/motionsplit/internal/adapters/driving/cli"
	"github.com/custodia-labs/motionsplit/internal/connectors/filesystem"
	"github.com/custodia-labs/motionsplit/internal/core/domain"
	"github.com/custodia-labs/motionsplit/internal/core/ports/driven"
	"github.com/custodia-labs/motionsplit/internal/core/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: reading settings: %v\n", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	// History is optional; extraction still works if the database cannot be opened.
	var history driven.HistoryStore
	store, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
	} else {
		defer store.Close() //nolint:errcheck // nothing to do on exit
		history = store.HistoryStore()
	}

	watcher := filesystem.NewWatcher(filesystem.RateLimitConfig{
		FilesPerSecond: settings.Watch.Rate,
		BurstSize:      settings.Watch.Burst,
	})

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Extraction: services.NewExtractionService(filesystem.NewSource(), watcher, disk.NewMediaStore(), history),
		Settings:   settingsService,
		Frames:     services.NewFrameService(ffmpeg.NewSampler()),
		History:    services.NewHistoryService(history),
	})

	return cli.Execute(ctx)
}
