// Command rerender queues every stored item for rendering again, e.g. after
// the labeling rules changed. Already labeled blanks are left alone by the
// renderer, so running it twice is harmless.
// Usage: go run ./cmd/rerender
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"qtirender/internal/config"
	"qtirender/internal/repository/postgres"
)

const batchSize = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	itemRepo := postgres.NewItemRepo(db)

	ctx := context.Background()
	after := uuid.Nil
	total := 0

	for {
		ids, err := itemRepo.ListIDsAfter(ctx, after, batchSize)
		if err != nil {
			return fmt.Errorf("listing items after %s: %w", after, err)
		}
		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			if err := itemRepo.Requeue(ctx, id); err != nil {
				log.Printf("WARN: skipping item %s: %v", id, err)
				continue
			}
			total++
		}

		after = ids[len(ids)-1]
		log.Printf("Queued %d items so far", total)
	}

	log.Printf("Rerender complete: %d items queued", total)
	return nil
}
