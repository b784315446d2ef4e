package doctor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

type Service struct {
	repo  repository.DoctorRepository
	cache *gocache.Cache
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, cacheCleanup),
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		Base:       model.Base{ID: uuid.New()},
		Name:       req.Name,
		Department: req.Department,
		Experience: req.Experience,
		Contact:    req.Contact,
		Email:      req.Email,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrIntegrity) {
			return nil, apperrors.Integrity("duplicate email or integrity error", err)
		}
		return nil, apperrors.Internal(err)
	}
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*model.Doctor), nil
	}

	doctor, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.cache.Set(id.String(), doctor, gocache.DefaultExpiration)
	return doctor, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctors, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Department != nil {
		doctor.Department = *req.Department
	}
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}
	if req.Contact != nil {
		doctor.Contact = *req.Contact
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrIntegrity) {
			return nil, apperrors.Integrity("duplicate email or integrity error", err)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.cache.Delete(id.String())
	return doctor, nil
}

// Delete removes a doctor. Rejected while the doctor still has non-canceled
// appointments.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	active, err := s.repo.CountActiveAppointments(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if active > 0 {
		return apperrors.Validation("cannot delete doctor with active appointments", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("doctor", err)
		}
		if errors.Is(err, repository.ErrIntegrity) {
			return apperrors.Integrity("doctor still referenced by appointments", err)
		}
		return apperrors.Internal(err)
	}

	s.cache.Delete(id.String())
	return nil
}
