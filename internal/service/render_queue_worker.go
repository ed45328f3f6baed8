package service

import (
	"context"
	"log"
	"sync"
	"time"

	"qtirender/internal/port"
)

// RenderQueueConfig holds settings for the render queue worker.
type RenderQueueConfig struct {
	PollInterval time.Duration
	MaxAttempts  int
	Concurrency  int
	Timeout      time.Duration
}

// RenderQueueWorker polls for queued items and renders them.
type RenderQueueWorker struct {
	itemRepo    port.ItemRepository
	itemService ItemService
	cfg         RenderQueueConfig
	wg          sync.WaitGroup
}

// NewRenderQueueWorker creates a new RenderQueueWorker.
func NewRenderQueueWorker(itemRepo port.ItemRepository, itemService ItemService, cfg RenderQueueConfig) *RenderQueueWorker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &RenderQueueWorker{
		itemRepo:    itemRepo,
		itemService: itemService,
		cfg:         cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight renders have finished.
func (w *RenderQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("renderQueueWorker: started (poll=%s, concurrency=%d, maxAttempts=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			log.Printf("renderQueueWorker: shutting down, waiting for in-flight renders...")
			w.wg.Wait()
			log.Printf("renderQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			items, err := w.itemRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("renderQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range items {
				item := items[i]

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()

					// Detached from the poll context so that renders in
					// flight at shutdown still record their outcome.
					renderCtx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout)
					defer cancel()

					log.Printf("renderQueueWorker: rendering item %s (attempt %d)", item.ID, item.RenderAttempts)
					w.itemService.RenderItem(renderCtx, &item, w.cfg.MaxAttempts)
				}()
			}
		}
	}
}
