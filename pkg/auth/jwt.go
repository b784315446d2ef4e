package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the token claims issued on login. The session id travels in the
// registered ID (jti) claim and must still exist in the session store for the
// token to be accepted.
type Claims struct {
	jwt.RegisteredClaims
	PatientID uuid.UUID `json:"patient_id"`
	Email     string    `json:"email"`
}

// SessionID returns the jti claim.
func (c *Claims) SessionID() string {
	return c.ID
}

type TokenService interface {
	Generate(patientID uuid.UUID, email, sessionID string) (string, time.Time, error)
	Validate(token string) (*Claims, error)
}

type jwtService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTService(secret string, ttl time.Duration) TokenService {
	return &jwtService{secret: []byte(secret), ttl: ttl}
}

func (s *jwtService) Generate(patientID uuid.UUID, email, sessionID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   patientID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		PatientID: patientID,
		Email:     email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *jwtService) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.PatientID == uuid.Nil || claims.ID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
