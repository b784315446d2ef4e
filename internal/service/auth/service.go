package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	pkgauth "github.com/jwalitptl/clinic-api/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

const bcryptCost = 12

// SessionStore is the server-side session record backing issued tokens.
// Deleting a session revokes the token before its expiry.
type SessionStore interface {
	Create(ctx context.Context, sessionID string, patientID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (uuid.UUID, error)
	Delete(ctx context.Context, sessionID string) error
}

type Service struct {
	patients repository.PatientRepository
	sessions SessionStore
	tokens   pkgauth.TokenService
	ttl      time.Duration
	metrics  *metrics.Metrics
}

func NewService(patients repository.PatientRepository, sessions SessionStore, tokens pkgauth.TokenService, ttl time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		patients: patients,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		metrics:  m,
	}
}

// Signup registers a patient with a login credential. The password is stored
// as a bcrypt hash only.
func (s *Service) Signup(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error) {
	if _, err := s.patients.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Validation("email already registered", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	gender := req.Gender
	if gender == "" {
		gender = model.GenderOther
	}

	patient := &model.Patient{
		Base:         model.Base{ID: uuid.New()},
		Name:         req.Name,
		Gender:       gender,
		Contact:      req.Contact,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrIntegrity) {
			return nil, apperrors.Integrity("email already registered", err)
		}
		return nil, apperrors.Internal(err)
	}

	return s.issue(ctx, patient)
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	patient, err := s.patients.GetByEmail(ctx, req.Email)
	if err != nil {
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials", err)
		}
		return nil, apperrors.Internal(err)
	}

	// Patients created through the registry have no credential.
	if patient.PasswordHash == "" {
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.Unauthorized("invalid credentials", err)
	}

	resp, err := s.issue(ctx, patient)
	if err != nil {
		return nil, err
	}
	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	return resp, nil
}

// Logout revokes the session; the token stops working immediately.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Validate checks the token signature and confirms the session is still live.
func (s *Service) Validate(ctx context.Context, token string) (*pkgauth.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token", err)
	}

	patientID, err := s.sessions.Get(ctx, claims.SessionID())
	if err != nil {
		return nil, apperrors.Unauthorized("session expired or revoked", err)
	}
	if patientID != claims.PatientID {
		return nil, apperrors.Unauthorized("session mismatch", nil)
	}

	return claims, nil
}

func (s *Service) issue(ctx context.Context, patient *model.Patient) (*model.TokenResponse, error) {
	sessionID := uuid.NewString()

	token, expiresAt, err := s.tokens.Generate(patient.ID, patient.Email, sessionID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.sessions.Create(ctx, sessionID, patient.ID, s.ttl); err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Patient:   patient,
	}, nil
}
