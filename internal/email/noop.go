package email

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// noopSender is used when SMTP is not configured. It logs at debug level so
// local runs still show what would have been sent.
type noopSender struct {
	logger zerolog.Logger
}

func NewNoopSender(logger zerolog.Logger) Sender {
	return &noopSender{logger: logger}
}

func (s *noopSender) SendBookingConfirmation(_ context.Context, to, _ string, appointment *model.Appointment) error {
	s.logger.Debug().
		Str("to", to).
		Time("start_time", appointment.StartTime).
		Msg("email disabled, skipping booking confirmation")
	return nil
}

func (s *noopSender) SendReminder(_ context.Context, reminder *model.AppointmentReminder) error {
	s.logger.Debug().
		Str("to", reminder.PatientEmail).
		Time("start_time", reminder.StartTime).
		Msg("email disabled, skipping reminder")
	return nil
}
