package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret-at-least-32-bytes-long", time.Hour)

	patientID := uuid.New()
	sessionID := uuid.NewString()

	token, expiresAt, err := svc.Generate(patientID, "alice@example.com", sessionID)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, patientID, claims.PatientID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, sessionID, claims.SessionID())
}

func TestValidateWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret-at-least-32-bytes-long", time.Hour)
	token, _, err := svc.Generate(uuid.New(), "alice@example.com", uuid.NewString())
	require.NoError(t, err)

	other := NewJWTService("a-different-secret-also-32-bytes!", time.Hour)
	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret-at-least-32-bytes-long", -time.Minute)
	token, _, err := svc.Generate(uuid.New(), "alice@example.com", uuid.NewString())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewJWTService("test-secret-at-least-32-bytes-long", time.Hour)

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
