package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tillpos/internal/config"
	"tillpos/internal/infra"
	"tillpos/internal/model"
	"tillpos/internal/persist"
	"tillpos/internal/router"
	"tillpos/internal/store"
	"tillpos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const stateFileName = "state.json"

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	slot, err := newSlot(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open snapshot slot")
	}

	// Restore the last snapshot; fall back to the demo catalog (or an empty
	// state) when there is nothing usable to load.
	fallback := store.State{}
	if cfg.SeedOnEmpty {
		fallback = persist.Seed()
	}
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	state := persist.Load(loadCtx, slot, fallback)
	loadCancel()

	st := store.New()
	st.Restore(state)
	products, sales := st.Counts()
	log.Info().Int("products", products).Int("sales", sales).Msg("store restored")

	// Worker pool for async jobs (state saves, receipt PDFs). Handlers are
	// wired here (composition root) so the pool has full access to all
	// infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := worker.NewDispatcher(64)
	handlers := &worker.Handlers{
		Snapshot: func(ctx context.Context) error {
			return persist.Save(ctx, slot, st)
		},
		Receipt: func(sale *model.Sale) (string, error) {
			return infra.GenerateReceiptPDF(sale, cfg.StoreName, cfg.ReceiptStoragePath)
		},
	}
	worker.StartPool(ctx, dispatcher, handlers, cfg.WorkerPoolSize)

	// Every committed mutation schedules a coalesced snapshot save.
	st.OnChange(dispatcher.EnqueueSnapshot)

	r := router.New(cfg, st, slot, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("%s listening on :%d", cfg.StoreName, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	// Final synchronous save so nothing committed after the last async
	// snapshot is lost.
	if err := persist.Save(shutdownCtx, slot, st); err != nil {
		log.Error().Err(err).Msg("final state save failed")
	}
	log.Info().Msg("server exited")
}

// newSlot picks the snapshot backend from config: a local file by default,
// redis when the till shares state storage with other tooling.
func newSlot(cfg *config.Config) (persist.Slot, error) {
	switch cfg.SnapshotBackend {
	case "redis":
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return persist.NewRedisSlot(rdb, cfg.SnapshotKey), nil
	default:
		return persist.NewFileSlot(cfg.DataDir, stateFileName)
	}
}
