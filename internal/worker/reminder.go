package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-api/internal/email"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

// Reminder periodically emails patients whose scheduled appointments start
// within the lookahead window. Each appointment is reminded at most once;
// failed sends stay unmarked and are retried on the next tick.
type Reminder struct {
	repo      repository.AppointmentRepository
	sender    email.Sender
	metrics   *metrics.Metrics
	interval  time.Duration
	lookahead time.Duration
	logger    zerolog.Logger
}

func NewReminder(
	repo repository.AppointmentRepository,
	sender email.Sender,
	m *metrics.Metrics,
	interval, lookahead time.Duration,
	logger zerolog.Logger,
) *Reminder {
	return &Reminder{
		repo:      repo,
		sender:    sender,
		metrics:   m,
		interval:  interval,
		lookahead: lookahead,
		logger:    logger,
	}
}

func (w *Reminder) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Reminder) tick(ctx context.Context) {
	reminders, err := w.repo.ListDueReminders(ctx, w.lookahead)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to list due reminders")
		return
	}

	for _, reminder := range reminders {
		if err := w.sender.SendReminder(ctx, reminder); err != nil {
			w.metrics.RemindersFailed.Inc()
			w.logger.Warn().Err(err).
				Str("appointment_id", reminder.AppointmentID.String()).
				Msg("failed to send reminder")
			continue
		}

		if err := w.repo.MarkReminded(ctx, reminder.AppointmentID); err != nil {
			w.logger.Error().Err(err).
				Str("appointment_id", reminder.AppointmentID.String()).
				Msg("failed to mark appointment reminded")
			continue
		}
		w.metrics.RemindersSent.Inc()
	}
}
