package worker

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"tillpos/internal/model"
)

const (
	JobSnapshot = "snapshot"
	JobReceipt  = "receipt"
)

// Job is the envelope for all async tasks. Sale is only set for receipt jobs.
type Job struct {
	Type string
	Sale model.Sale
}

// Dispatcher enqueues best-effort async jobs into an in-process buffered
// channel consumed by the worker pool. Nothing on the sale hot path ever
// blocks on it: a full queue drops the job with a log entry.
type Dispatcher struct {
	jobs chan Job
	// snapshotQueued coalesces snapshot requests — rapid mutation bursts
	// produce a single save.
	snapshotQueued atomic.Bool
}

func NewDispatcher(buffer int) *Dispatcher {
	return &Dispatcher{jobs: make(chan Job, buffer)}
}

// EnqueueSnapshot requests a state save. Multiple requests between worker
// runs collapse into one job.
func (d *Dispatcher) EnqueueSnapshot() {
	if !d.snapshotQueued.CompareAndSwap(false, true) {
		return
	}
	select {
	case d.jobs <- Job{Type: JobSnapshot}:
	default:
		d.snapshotQueued.Store(false)
		log.Warn().Msg("job queue full, snapshot save skipped")
	}
}

// EnqueueReceipt requests receipt PDF generation for a completed sale.
func (d *Dispatcher) EnqueueReceipt(sale model.Sale) {
	select {
	case d.jobs <- Job{Type: JobReceipt, Sale: sale}:
	default:
		log.Warn().Str("sale_id", sale.ID.String()).Msg("job queue full, receipt job dropped")
	}
}

// Handlers holds the job implementations, wired at the composition root so the
// pool has access to all infrastructure dependencies.
type Handlers struct {
	Snapshot func(ctx context.Context) error
	Receipt  func(sale *model.Sale) (string, error)
}

// StartPool launches numWorkers goroutines consuming the dispatcher queue.
// Each goroutine blocks on the channel — zero CPU when idle.
func StartPool(ctx context.Context, d *Dispatcher, h *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, d, h, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, d *Dispatcher, h *Handlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		case job := <-d.jobs:
			processJob(ctx, d, h, job)
		}
	}
}

func processJob(ctx context.Context, d *Dispatcher, h *Handlers, job Job) {
	switch job.Type {
	case JobSnapshot:
		d.snapshotQueued.Store(false)
		if err := h.Snapshot(ctx); err != nil {
			// Best effort: log and move on, the next mutation re-enqueues.
			log.Error().Err(err).Msg("state save failed, skipped")
		}
	case JobReceipt:
		path, err := h.Receipt(&job.Sale)
		if err != nil {
			log.Error().Err(err).Str("sale_id", job.Sale.ID.String()).Msg("receipt generation failed")
			return
		}
		log.Info().Str("sale_id", job.Sale.ID.String()).Str("path", path).Msg("receipt generated")
	default:
		log.Error().Str("type", job.Type).Msg("unknown job type")
	}
}
