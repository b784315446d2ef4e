package favorite

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

type Service struct {
	repo    repository.FavoriteRepository
	doctors repository.DoctorRepository
}

func NewService(repo repository.FavoriteRepository, doctors repository.DoctorRepository) *Service {
	return &Service{repo: repo, doctors: doctors}
}

// Add bookmarks a doctor for the patient. Adding the same doctor twice is a
// no-op.
func (s *Service) Add(ctx context.Context, patientID, doctorID uuid.UUID) error {
	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("doctor", err)
		}
		return apperrors.Internal(err)
	}

	if err := s.repo.Add(ctx, patientID, doctorID); err != nil {
		if errors.Is(err, repository.ErrIntegrity) {
			return apperrors.Integrity("invalid patient or doctor", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, patientID, doctorID uuid.UUID) error {
	if err := s.repo.Remove(ctx, patientID, doctorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("favorite", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, patientID uuid.UUID) ([]*model.Doctor, error) {
	doctors, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctors, nil
}
