package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("billing_service_test")

type fakeBillRepo struct {
	bills map[uuid.UUID]*model.Bill
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: make(map[uuid.UUID]*model.Bill)}
}

func (f *fakeBillRepo) Create(_ context.Context, b *model.Bill) error {
	stored := *b
	f.bills[b.ID] = &stored
	return nil
}

func (f *fakeBillRepo) Get(_ context.Context, id uuid.UUID) (*model.Bill, error) {
	b, ok := f.bills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBillRepo) List(_ context.Context, patientID *uuid.UUID) ([]*model.Bill, error) {
	var out []*model.Bill
	for _, b := range f.bills {
		if patientID != nil && b.PatientID != *patientID {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBillRepo) Update(_ context.Context, b *model.Bill) error {
	if _, ok := f.bills[b.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *b
	f.bills[b.ID] = &stored
	return nil
}

func TestCreateBill(t *testing.T) {
	svc := NewService(newFakeBillRepo(), testMetrics)

	bill, err := svc.Create(context.Background(), &model.CreateBillRequest{
		PatientID: uuid.New(),
		Amount:    "150.50",
	})
	require.NoError(t, err)

	assert.Equal(t, "150.5", bill.Amount.String())
	assert.Equal(t, model.BillStatusPending, bill.Status)
	assert.Nil(t, bill.PaidAt)
}

func TestCreateBillRejectsBadAmounts(t *testing.T) {
	svc := NewService(newFakeBillRepo(), testMetrics)

	for _, amount := range []string{"abc", "", "-10"} {
		_, err := svc.Create(context.Background(), &model.CreateBillRequest{
			PatientID: uuid.New(),
			Amount:    amount,
		})
		require.Error(t, err, "amount %q", amount)
		assert.Equal(t, apperrors.ErrValidation, apperrors.FromError(err).Code)
	}
}

func TestCreateBillPaidUpfront(t *testing.T) {
	svc := NewService(newFakeBillRepo(), testMetrics)

	bill, err := svc.Create(context.Background(), &model.CreateBillRequest{
		PatientID: uuid.New(),
		Amount:    "0",
		Status:    model.BillStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, model.BillStatusPaid, bill.Status)
	assert.NotNil(t, bill.PaidAt)
}

func TestPayBill(t *testing.T) {
	svc := NewService(newFakeBillRepo(), testMetrics)

	bill, err := svc.Create(context.Background(), &model.CreateBillRequest{
		PatientID: uuid.New(),
		Amount:    "75",
	})
	require.NoError(t, err)

	paid, err := svc.Pay(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BillStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.False(t, paid.PaidAt.IsZero())
}

func TestPayBillTwiceRejected(t *testing.T) {
	svc := NewService(newFakeBillRepo(), testMetrics)

	bill, err := svc.Create(context.Background(), &model.CreateBillRequest{
		PatientID: uuid.New(),
		Amount:    "75",
	})
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), bill.ID)
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), bill.ID)
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, "bill already paid", appErr.Message)
}

func TestPayUnknownBill(t *testing.T) {
	svc := NewService(newFakeBillRepo(), testMetrics)

	_, err := svc.Pay(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.FromError(err).Code)
}
