package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/signboard/internal/config"
	"github.com/jask/signboard/internal/logging"
	"github.com/jask/signboard/internal/present"
	"github.com/jask/signboard/internal/service"
	"github.com/jask/signboard/internal/sheet"
	"github.com/jask/signboard/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting", zap.String("config", loader.ConfigFile()), zap.String("sheet_id", cfg.Sheets.SheetID))

	client := sheet.NewClient(sheet.Options{
		SheetID:  cfg.Sheets.SheetID,
		APIKey:   cfg.Sheets.ResolveAPIKey(),
		Endpoint: cfg.Sheets.Endpoint,
		Timeout:  cfg.Sheets.FetchTimeout,
		Logger:   logger,
	})

	store := service.NewStore()
	aggregator := &service.Aggregator{
		Source: client,
		Ranges: service.Ranges{
			Images:     cfg.Ranges.Images,
			Statistics: cfg.Ranges.Statistics,
			Schedule:   cfg.Ranges.Schedule,
			Halls:      cfg.Ranges.Halls,
			Notices:    cfg.Ranges.Notices,
		},
		Store:   store,
		Logger:  logger.Named("refresh"),
		Timeout: cfg.Timing.RefreshTimeout,
	}
	scheduler := service.NewScheduler(aggregator, cfg.Timing.RefreshInterval, logger)

	// only the sheet id and API key apply live; other settings need a restart
	loader.Watch(func(next config.Config) {
		id, key := next.Sheets.SheetID, next.Sheets.ResolveAPIKey()
		if curID, curKey := client.Credentials(); curID == id && curKey == key {
			return
		}
		logger.Info("credentials changed, refreshing", zap.String("sheet_id", id))
		client.SetCredentials(id, key)
		scheduler.Trigger()
	}, func(err error) {
		logger.Warn("config reload ignored", zap.Error(err))
	})

	snapshots, unsubscribe := store.Subscribe()
	app := tui.New(store.Load(), snapshots, tui.Options{
		ScreenInterval: cfg.Timing.ScreenInterval,
		ImageInterval:  cfg.Timing.ImageInterval,
		Present:        present.Options{Title: cfg.UI.Title, Subtitle: cfg.UI.Subtitle},
		Logger:         logger,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx)
	}()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	exitCode := displayExitCode(ctx, err)
	if exitCode != 0 {
		logger.Error("display stopped", zap.Error(err))
		log.Printf("display: %v", err)
	}
	stop()
	unsubscribe()
	wg.Wait()
	logger.Info("stopped", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// displayExitCode maps the program's result to a process exit code. A run cut
// short by a shutdown signal is a clean exit.
func displayExitCode(ctx context.Context, err error) int {
	if err == nil || ctx.Err() != nil {
		return 0
	}
	return 1
}
