// Package jobs runs background maintenance for the catalog.
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"storefront/internal/imagestore"
	"storefront/internal/repository"
)

const (
	sweepBatch  = 50
	maxAttempts = 5
)

// Sweeper retries remote image deletions that failed during a product
// update or delete. Rows that reach maxAttempts stay in the table for manual
// inspection and are no longer picked up.
type Sweeper struct {
	pending repository.PendingDeletionRepository
	images  imagestore.Store
}

func NewSweeper(pending repository.PendingDeletionRepository, images imagestore.Store) *Sweeper {
	return &Sweeper{pending: pending, images: images}
}

// Sweep handles one batch and returns how many deletions succeeded.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	rows, err := s.pending.ListDue(ctx, sweepBatch, maxAttempts)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, row := range rows {
		err := s.images.Delete(ctx, row.PublicID)
		if imagestore.Unavailable(err) {
			// хост не вызывался: попытка не считается, остаток батча ждёт следующего запуска
			log.Warn().Err(err).Str("component", "Sweeper.Sweep").Msg("image host unavailable, sweep postponed")
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("component", "Sweeper.Sweep").Str("public_id", row.PublicID).Int("attempts", row.Attempts+1).Msg("retry failed")
			if err := s.pending.MarkFailed(ctx, row.ID, err.Error()); err != nil {
				return done, err
			}
			continue
		}
		if err := s.pending.Remove(ctx, row.ID); err != nil {
			return done, err
		}
		done++
	}

	if len(rows) > 0 {
		log.Info().Str("component", "Sweeper.Sweep").Int("due", len(rows)).Int("deleted", done).Msg("pending image deletions processed")
	}
	return done, nil
}

// Start schedules Sweep every interval. The caller owns the scheduler and
// shuts it down.
func (s *Sweeper) Start(scheduler gocron.Scheduler, interval time.Duration) error {
	_, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if _, err := s.Sweep(ctx); err != nil {
				log.Error().Err(err).Str("component", "Sweeper.Start").Msg("sweep failed")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}
