package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	pkgauth "github.com/jwalitptl/clinic-api/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("auth_service_test")

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	for _, existing := range f.patients {
		if existing.Email == p.Email {
			return repository.ErrIntegrity
		}
	}
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePatientRepo) GetByEmail(_ context.Context, email string) (*model.Patient, error) {
	for _, p := range f.patients {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePatientRepo) List(_ context.Context) ([]*model.Patient, error) { return nil, nil }

func (f *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.patients, id)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]uuid.UUID
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]uuid.UUID)}
}

func (f *fakeSessionStore) Create(_ context.Context, sessionID string, patientID uuid.UUID, _ time.Duration) error {
	f.sessions[sessionID] = patientID
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, sessionID string) (uuid.UUID, error) {
	id, ok := f.sessions[sessionID]
	if !ok {
		return uuid.Nil, repository.ErrNotFound
	}
	return id, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func newTestService() (*Service, *fakePatientRepo, *fakeSessionStore) {
	patients := newFakePatientRepo()
	sessions := newFakeSessionStore()
	tokens := pkgauth.NewJWTService("test-secret-at-least-32-bytes-long", time.Hour)
	return NewService(patients, sessions, tokens, time.Hour, testMetrics), patients, sessions
}

func TestSignupIssuesToken(t *testing.T) {
	svc, patients, _ := newTestService()

	resp, err := svc.Signup(context.Background(), &model.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	stored, err := patients.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.Equal(t, model.GenderOther, stored.Gender)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	req := &model.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "correct horse"}
	_, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), req)
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, "email already registered", appErr.Message)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), &model.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := svc.Validate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Patient.ID, claims.PatientID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), &model.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong horse",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.FromError(err).Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.FromError(err).Code)
}

func TestLoginWithoutCredential(t *testing.T) {
	svc, patients, _ := newTestService()

	// Patients created through the registry have no password hash.
	p := &model.Patient{Base: model.Base{ID: uuid.New()}, Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, patients.Create(context.Background(), p))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "bob@example.com",
		Password: "",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.FromError(err).Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.Signup(context.Background(), &model.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := svc.Validate(context.Background(), resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims.SessionID()))

	_, err = svc.Validate(context.Background(), resp.Token)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.FromError(err).Code)
}

func TestValidateRejectsForeignToken(t *testing.T) {
	svc, _, _ := newTestService()

	other := pkgauth.NewJWTService("a-different-secret-also-32-bytes!", time.Hour)
	token, _, err := other.Generate(uuid.New(), "eve@example.com", uuid.NewString())
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.FromError(err).Code)
}
