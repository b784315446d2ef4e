package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validator.Register(); err != nil {
		panic(err)
	}
}

type stubService struct {
	bookFn   func(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	listFn   func(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	updateFn func(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	cancelFn func(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
}

func (s *stubService) Book(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	return s.bookFn(ctx, req)
}

func (s *stubService) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.getFn(ctx, id)
}

func (s *stubService) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.listFn(ctx, filters)
}

func (s *stubService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubService) Cancel(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.cancelFn(ctx, id)
}

func newRouter(svc Service) *gin.Engine {
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookHandler(t *testing.T) {
	svc := &stubService{
		bookFn: func(_ context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
			return &model.Appointment{
				Base:      model.Base{ID: uuid.New()},
				PatientID: req.PatientID,
				DoctorID:  req.DoctorID,
				StartTime: req.StartTime,
				EndTime:   req.StartTime.Add(model.DefaultAppointmentDuration),
				Status:    model.AppointmentStatusScheduled,
			}, nil
		},
	}
	r := newRouter(svc)

	w := do(t, r, http.MethodPost, "/api/v1/appointments", gin.H{
		"patient_id": uuid.New(),
		"doctor_id":  uuid.New(),
		"start_time": time.Now().Add(time.Hour).Format(time.RFC3339),
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string            `json:"status"`
		Data   model.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, model.AppointmentStatusScheduled, resp.Data.Status)
}

func TestBookHandlerMissingFields(t *testing.T) {
	r := newRouter(&stubService{})

	w := do(t, r, http.MethodPost, "/api/v1/appointments", gin.H{"reason": "checkup"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestBookHandlerConflict(t *testing.T) {
	svc := &stubService{
		bookFn: func(_ context.Context, _ *model.CreateAppointmentRequest) (*model.Appointment, error) {
			return nil, apperrors.Conflict("doctor already booked during this time", nil)
		},
	}
	r := newRouter(svc)

	w := do(t, r, http.MethodPost, "/api/v1/appointments", gin.H{
		"patient_id": uuid.New(),
		"doctor_id":  uuid.New(),
		"start_time": time.Now().Add(time.Hour).Format(time.RFC3339),
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "doctor already booked during this time")
}

func TestGetHandlerBadID(t *testing.T) {
	r := newRouter(&stubService{})

	w := do(t, r, http.MethodGet, "/api/v1/appointments/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid appointment ID")
}

func TestGetHandlerNotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(_ context.Context, _ uuid.UUID) (*model.Appointment, error) {
			return nil, apperrors.NotFound("appointment", nil)
		},
	}
	r := newRouter(svc)

	w := do(t, r, http.MethodGet, "/api/v1/appointments/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListHandlerFilters(t *testing.T) {
	doctorID := uuid.New()
	var seen *model.AppointmentFilters
	svc := &stubService{
		listFn: func(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
			seen = filters
			return []*model.Appointment{}, nil
		},
	}
	r := newRouter(svc)

	w := do(t, r, http.MethodGet, "/api/v1/appointments?doctor_id="+doctorID.String()+"&status=scheduled&from=2026-09-15T00:00:00Z", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, doctorID, seen.DoctorID)
	assert.Equal(t, model.AppointmentStatusScheduled, seen.Status)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), seen.From)
}

func TestListHandlerBadTimestamp(t *testing.T) {
	r := newRouter(&stubService{})

	w := do(t, r, http.MethodGet, "/api/v1/appointments?from=tomorrow", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "RFC 3339")
}

func TestUpdateHandlerRejectsBadStatus(t *testing.T) {
	r := newRouter(&stubService{})

	w := do(t, r, http.MethodPatch, "/api/v1/appointments/"+uuid.NewString(), gin.H{
		"status": "rescheduled",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelHandler(t *testing.T) {
	var canceled uuid.UUID
	svc := &stubService{
		cancelFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			canceled = id
			return &model.Appointment{Base: model.Base{ID: id}, Status: model.AppointmentStatusCanceled}, nil
		},
	}
	r := newRouter(svc)

	id := uuid.New()
	w := do(t, r, http.MethodDelete, "/api/v1/appointments/"+id.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, canceled)
	assert.Contains(t, w.Body.String(), `"status":"canceled"`)
}
