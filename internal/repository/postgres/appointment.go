package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM appointments
		WHERE doctor_id = $1
		AND status != 'canceled'
		AND start_time < $3
		AND end_time > $2
		AND ($4::uuid IS NULL OR id != $4)
	)
`

// lockDoctor serializes concurrent bookings for one doctor. The row lock is
// held until the surrounding transaction commits, so the overlap check and
// the insert that follows cannot interleave with another booking.
func lockDoctor(ctx context.Context, tx *sqlx.Tx, doctorID uuid.UUID) error {
	var id uuid.UUID
	err := tx.GetContext(ctx, &id, `SELECT id FROM doctors WHERE id = $1 FOR UPDATE`, doctorID)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock doctor row: %w", err)
	}
	return nil
}

func hasOverlapTx(ctx context.Context, tx *sqlx.Tx, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	var overlap bool
	if err := tx.GetContext(ctx, &overlap, overlapQuery, doctorID, start, end, excludeID); err != nil {
		return false, fmt.Errorf("failed to check overlap: %w", err)
	}
	return overlap, nil
}

func (r *appointmentRepository) Book(ctx context.Context, appointment *model.Appointment, bill *model.Bill) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockDoctor(ctx, tx, appointment.DoctorID); err != nil {
		return err
	}

	overlap, err := hasOverlapTx(ctx, tx, appointment.DoctorID, appointment.StartTime, appointment.EndTime, nil)
	if err != nil {
		return err
	}
	if overlap {
		return repository.ErrOverlap
	}

	query := `
		INSERT INTO appointments (id, patient_id, doctor_id, start_time, end_time, status, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	if _, err := tx.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.Reason,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create appointment: %w", mapError(err))
	}

	if bill != nil {
		bill.AppointmentID = &appointment.ID
		if err := insertBill(ctx, tx, bill); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, `SELECT * FROM appointments WHERE id = $1`, id); err != nil {
		return nil, mapError(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.DoctorID != uuid.Nil {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, filters.DoctorID)
		argCount++
	}
	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}
	if !filters.From.IsZero() {
		query += fmt.Sprintf(" AND start_time >= $%d", argCount)
		args = append(args, filters.From)
		argCount++
	}
	if !filters.To.IsZero() {
		query += fmt.Sprintf(" AND start_time <= $%d", argCount)
		args = append(args, filters.To)
		argCount++
	}

	query += " ORDER BY start_time ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, reason = $2, updated_at = $3
		WHERE id = $4
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.Status,
		appointment.Reason,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", mapError(err))
	}
	return requireRow(result)
}

func (r *appointmentRepository) Reschedule(ctx context.Context, appointment *model.Appointment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockDoctor(ctx, tx, appointment.DoctorID); err != nil {
		return err
	}

	overlap, err := hasOverlapTx(ctx, tx, appointment.DoctorID, appointment.StartTime, appointment.EndTime, &appointment.ID)
	if err != nil {
		return err
	}
	if overlap {
		return repository.ErrOverlap
	}

	query := `
		UPDATE appointments
		SET start_time = $1, end_time = $2, status = $3, reason = $4, updated_at = $5
		WHERE id = $6
	`
	appointment.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, query,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.Reason,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to reschedule appointment: %w", mapError(err))
	}
	if err := requireRow(result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reschedule: %w", err)
	}
	return nil
}

func (r *appointmentRepository) HasOverlap(ctx context.Context, doctorID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	var overlap bool
	if err := r.db.GetContext(ctx, &overlap, overlapQuery, doctorID, start, end, excludeID); err != nil {
		return false, fmt.Errorf("failed to check overlap: %w", err)
	}
	return overlap, nil
}

func (r *appointmentRepository) ListDueReminders(ctx context.Context, within time.Duration) ([]*model.AppointmentReminder, error) {
	query := `
		SELECT a.id AS appointment_id, a.start_time, a.end_time,
			   p.name AS patient_name, p.email AS patient_email,
			   d.name AS doctor_name
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id
		WHERE a.status = 'scheduled'
		AND a.reminded_at IS NULL
		AND a.start_time > NOW()
		AND a.start_time <= NOW() + make_interval(secs => $1)
		AND p.email != ''
		ORDER BY a.start_time ASC
	`
	var reminders []*model.AppointmentReminder
	if err := r.db.SelectContext(ctx, &reminders, query, within.Seconds()); err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	return reminders, nil
}

func (r *appointmentRepository) MarkReminded(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE appointments SET reminded_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark appointment reminded: %w", err)
	}
	return requireRow(result)
}
