package email

import (
	"context"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// Sender delivers patient-facing notification mail. Implementations must be
// safe for concurrent use.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, to, name string, appointment *model.Appointment) error
	SendReminder(ctx context.Context, reminder *model.AppointmentReminder) error
}
