package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/clinic-api/internal/email"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

// Config carries the booking-side settings.
type Config struct {
	// AutoBill creates a pending bill for Fee alongside every booking.
	AutoBill bool
	Fee      decimal.Decimal
}

type Service struct {
	repo     repository.AppointmentRepository
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	email    email.Sender
	metrics  *metrics.Metrics
	cfg      Config
	logger   zerolog.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	sender email.Sender,
	m *metrics.Metrics,
	cfg Config,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		doctors:  doctors,
		patients: patients,
		email:    sender,
		metrics:  m,
		cfg:      cfg,
		logger:   logger,
	}
}

// Book schedules a new appointment. The end time defaults to start plus
// thirty minutes when omitted. The overlap check and the insert run in one
// transaction serialized on the doctor row, so two concurrent bookings for
// the same doctor cannot both pass the check.
func (s *Service) Book(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	start := time.Now()
	defer func() {
		s.metrics.BookingLatency.Observe(time.Since(start).Seconds())
	}()

	end := req.StartTime.Add(model.DefaultAppointmentDuration)
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if !end.After(req.StartTime) {
		return nil, apperrors.Validation("end_time must be after start_time", nil)
	}

	patient, err := s.patients.Get(ctx, req.PatientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Validation("invalid patient_id or doctor_id", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if _, err := s.doctors.Get(ctx, req.DoctorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation("invalid patient_id or doctor_id", err)
		}
		return nil, apperrors.Internal(err)
	}

	appointment := &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		StartTime: req.StartTime,
		EndTime:   end,
		Status:    model.AppointmentStatusScheduled,
		Reason:    req.Reason,
	}

	var bill *model.Bill
	if s.cfg.AutoBill {
		bill = &model.Bill{
			Base:      model.Base{ID: uuid.New()},
			PatientID: req.PatientID,
			Amount:    s.cfg.Fee,
			Status:    model.BillStatusPending,
		}
	}

	if err := s.repo.Book(ctx, appointment, bill); err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			s.metrics.BookingConflicts.Inc()
			return nil, apperrors.Conflict("doctor already booked during this time", err)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.Validation("invalid patient_id or doctor_id", err)
		case errors.Is(err, repository.ErrIntegrity):
			return nil, apperrors.Integrity("invalid patient_id or doctor_id", err)
		default:
			return nil, apperrors.Internal(err)
		}
	}

	s.metrics.BookingsTotal.Inc()
	if bill != nil {
		s.metrics.BillsCreated.Inc()
	}

	if patient.Email != "" {
		if err := s.email.SendBookingConfirmation(ctx, patient.Email, patient.Name, appointment); err != nil {
			s.logger.Warn().Err(err).
				Str("appointment_id", appointment.ID.String()).
				Msg("failed to send booking confirmation")
		}
	}

	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointment, nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}

// Update applies a PATCH: reschedule (start/end), status change, reason
// change, in any combination. Rescheduling is only accepted while the
// appointment is still scheduled; a status change alone is not guarded beyond
// enum membership, which callers rely on to mark appointments completed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reschedule := req.StartTime != nil
	if reschedule {
		if appointment.Status != model.AppointmentStatusScheduled {
			return nil, apperrors.Validation("only scheduled appointments can be rescheduled", nil)
		}

		newStart := *req.StartTime
		var newEnd time.Time
		if req.EndTime != nil {
			newEnd = *req.EndTime
		} else {
			// Preserve the original duration.
			newEnd = newStart.Add(appointment.EndTime.Sub(appointment.StartTime))
		}
		if !newEnd.After(newStart) {
			return nil, apperrors.Validation("end_time must be after start_time", nil)
		}

		appointment.StartTime = newStart
		appointment.EndTime = newEnd
	} else if req.EndTime != nil {
		return nil, apperrors.Validation("end_time requires start_time", nil)
	}

	if req.Status != nil {
		appointment.Status = *req.Status
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}

	if reschedule {
		err = s.repo.Reschedule(ctx, appointment)
	} else {
		err = s.repo.Update(ctx, appointment)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			s.metrics.BookingConflicts.Inc()
			return nil, apperrors.Conflict("doctor already booked during this time", err)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NotFound("appointment", err)
		default:
			return nil, apperrors.Internal(err)
		}
	}

	if reschedule {
		s.metrics.Reschedules.Inc()
	}
	return appointment, nil
}

// Cancel soft-cancels the appointment. It is deliberately unconditional:
// canceling an already canceled or completed appointment leaves it canceled,
// and the freed interval becomes bookable because canceled appointments are
// excluded from overlap checks.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	appointment.Status = model.AppointmentStatusCanceled
	if err := s.repo.Update(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.metrics.Cancellations.Inc()
	return appointment, nil
}
