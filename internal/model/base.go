package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains the common identity and timestamp fields.
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
