package worker

// recompute_worker.go
// Processes catalog price recompute jobs from QueueRecompute.
// A tier change (create/update/delete) enqueues one of these; the worker
// rebuilds every product's price vector page by page with retries.

import (
	"context"
	"encoding/json"

	"github.com/rafamossetto/distributor-api/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RecomputeWorker struct {
	priceLists service.PriceListService
}

func NewRecomputeWorker(priceLists service.PriceListService) *RecomputeWorker {
	return &RecomputeWorker{priceLists: priceLists}
}

// Process runs one catalog-wide recompute with exponential backoff
// (max 3 attempts). Pages committed before a failure stay committed;
// a retry simply recomputes them to the same values.
func (w *RecomputeWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload RecomputeJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recompute_worker: invalid payload")
		return
	}

	err := withRetry(ctx, 3, func(attempt int) error {
		if err := w.priceLists.RecomputeAllProductPrices(ctx); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Msg("recompute_worker: attempt failed, retrying")
			return err
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("recompute_worker: recompute failed after all retries")
		pushDeadLetter(ctx, rdb, QueueRecompute, "recompute", raw, err, 3)
		return
	}

	log.Info().Str("requested_at", payload.RequestedAt).Msg("recompute_worker: catalog prices recomputed")
}
