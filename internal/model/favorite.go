package model

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a patient's bookmark of a doctor. Membership is idempotent:
// adding an existing pair is a no-op.
type Favorite struct {
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
