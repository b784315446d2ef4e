package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

type Service struct {
	repo    repository.BillRepository
	metrics *metrics.Metrics
}

func NewService(repo repository.BillRepository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

func (s *Service) Create(ctx context.Context, req *model.CreateBillRequest) (*model.Bill, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, apperrors.Validation("amount must be numeric", err)
	}
	if amount.IsNegative() {
		return nil, apperrors.Validation("amount must be >= 0", nil)
	}

	status := req.Status
	if status == "" {
		status = model.BillStatusPending
	}

	bill := &model.Bill{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Amount:        amount,
		Status:        status,
	}
	if status == model.BillStatusPaid {
		now := time.Now()
		bill.PaidAt = &now
	}

	if err := s.repo.Create(ctx, bill); err != nil {
		if errors.Is(err, repository.ErrIntegrity) {
			return nil, apperrors.Integrity("invalid patient_id or appointment_id", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.metrics.BillsCreated.Inc()
	return bill, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	bill, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("bill", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return bill, nil
}

func (s *Service) List(ctx context.Context, patientID *uuid.UUID) ([]*model.Bill, error) {
	bills, err := s.repo.List(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return bills, nil
}

// Pay marks the bill paid. Paying twice is rejected.
func (s *Service) Pay(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if bill.Status == model.BillStatusPaid {
		return nil, apperrors.Validation("bill already paid", nil)
	}

	now := time.Now()
	bill.Status = model.BillStatusPaid
	bill.PaidAt = &now

	if err := s.repo.Update(ctx, bill); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("bill", err)
		}
		return nil, apperrors.Internal(err)
	}

	s.metrics.BillsPaid.Inc()
	return bill, nil
}
