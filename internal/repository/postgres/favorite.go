package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add is idempotent: re-adding an existing pair is a no-op.
func (r *favoriteRepository) Add(ctx context.Context, patientID, doctorID uuid.UUID) error {
	query := `
		INSERT INTO favorites (patient_id, doctor_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (patient_id, doctor_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, patientID, doctorID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", mapError(err))
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, patientID, doctorID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE patient_id = $1 AND doctor_id = $2`, patientID, doctorID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return requireRow(result)
}

func (r *favoriteRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Doctor, error) {
	query := `
		SELECT d.*
		FROM doctors d
		JOIN favorites f ON f.doctor_id = d.id
		WHERE f.patient_id = $1
		ORDER BY f.created_at DESC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return doctors, nil
}
