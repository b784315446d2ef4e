package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type billRepository struct {
	db *sqlx.DB
}

func NewBillRepository(db *sqlx.DB) repository.BillRepository {
	return &billRepository{db: db}
}

// insertBill is shared with the booking transaction for auto-billed
// appointments.
func insertBill(ctx context.Context, q sqlx.ExecerContext, bill *model.Bill) error {
	query := `
		INSERT INTO bills (id, patient_id, appointment_id, amount, status, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	bill.CreatedAt = time.Now()
	bill.UpdatedAt = bill.CreatedAt

	if _, err := q.ExecContext(ctx, query,
		bill.ID,
		bill.PatientID,
		bill.AppointmentID,
		bill.Amount,
		bill.Status,
		bill.PaidAt,
		bill.CreatedAt,
		bill.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create bill: %w", mapError(err))
	}
	return nil
}

func (r *billRepository) Create(ctx context.Context, bill *model.Bill) error {
	return insertBill(ctx, r.db, bill)
}

func (r *billRepository) Get(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var bill model.Bill
	if err := r.db.GetContext(ctx, &bill, `SELECT * FROM bills WHERE id = $1`, id); err != nil {
		return nil, mapError(err)
	}
	return &bill, nil
}

func (r *billRepository) List(ctx context.Context, patientID *uuid.UUID) ([]*model.Bill, error) {
	query := `SELECT * FROM bills`
	args := []interface{}{}
	if patientID != nil {
		query += ` WHERE patient_id = $1`
		args = append(args, *patientID)
	}
	query += ` ORDER BY created_at DESC`

	var bills []*model.Bill
	if err := r.db.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

func (r *billRepository) Update(ctx context.Context, bill *model.Bill) error {
	query := `
		UPDATE bills
		SET amount = $1, status = $2, paid_at = $3, appointment_id = $4, updated_at = $5
		WHERE id = $6
	`
	bill.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		bill.Amount,
		bill.Status,
		bill.PaidAt,
		bill.AppointmentID,
		bill.UpdatedAt,
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", mapError(err))
	}
	return requireRow(result)
}
