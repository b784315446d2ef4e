package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// Sentinel errors returned by repositories. Services translate these into the
// caller-facing error taxonomy.
var (
	ErrNotFound  = errors.New("not found")
	ErrOverlap   = errors.New("schedule overlap")
	ErrIntegrity = errors.New("integrity constraint violation")
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActiveAppointments(ctx context.Context, id uuid.UUID) (int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetByEmail(ctx context.Context, email string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AppointmentRepository interface {
	// Book inserts the appointment, and the bill when non-nil, inside one
	// transaction that serializes on the doctor row and re-runs the overlap
	// check. Returns ErrOverlap on a schedule conflict and ErrNotFound when
	// the doctor row is missing.
	Book(ctx context.Context, appointment *model.Appointment, bill *model.Bill) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	// Update persists status/reason changes without touching the schedule.
	Update(ctx context.Context, appointment *model.Appointment) error
	// Reschedule persists a new interval under the same doctor-row lock and
	// overlap check as Book, excluding the appointment itself.
	Reschedule(ctx context.Context, appointment *model.Appointment) error
	HasOverlap(ctx context.Context, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	ListDueReminders(ctx context.Context, within time.Duration) ([]*model.AppointmentReminder, error)
	MarkReminded(ctx context.Context, id uuid.UUID) error
}

type BillRepository interface {
	Create(ctx context.Context, bill *model.Bill) error
	Get(ctx context.Context, id uuid.UUID) (*model.Bill, error)
	List(ctx context.Context, patientID *uuid.UUID) ([]*model.Bill, error)
	Update(ctx context.Context, bill *model.Bill) error
}

type FavoriteRepository interface {
	Add(ctx context.Context, patientID, doctorID uuid.UUID) error
	Remove(ctx context.Context, patientID, doctorID uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Doctor, error)
}
