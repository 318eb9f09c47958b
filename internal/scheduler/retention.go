// internal/scheduler/retention.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dmoren/padelbook/internal/booking"
	"github.com/dmoren/padelbook/internal/config"
)

const retentionJobName = "reservation-retention"
const retentionJobTimeout = time.Minute

// PurgeOldReservations deletes reservations dated more than retentionDays
// before now. It is the manual "clean history" purge on a clock.
func PurgeOldReservations(ctx context.Context, svc *booking.Service, retentionDays int, now time.Time) (int, error) {
	if svc == nil {
		return 0, fmt.Errorf("retention purge requires a booking service")
	}
	if retentionDays <= 0 {
		return 0, fmt.Errorf("retention days must be greater than 0")
	}

	cutoff := now.AddDate(0, 0, -retentionDays).Format("2006-01-02")
	deleted, err := svc.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge before %s: %w", cutoff, err)
	}
	return deleted, nil
}

// RegisterRetentionJob schedules the retention purge according to the
// configuration. A zero retention horizon disables the job.
func RegisterRetentionJob(svc *booking.Service, cfg config.RetentionConfig) error {
	if cfg.Days <= 0 {
		log.Info().Msg("Reservation retention disabled")
		return nil
	}

	_, err := AddJob(retentionJobName, cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), retentionJobTimeout)
		defer cancel()

		deleted, err := PurgeOldReservations(ctx, svc, cfg.Days, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("Reservation retention purge failed")
			return
		}
		if deleted > 0 {
			log.Info().Int("deleted", deleted).Msg("Reservation retention purge completed")
		}
	})
	return err
}
