package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// DefaultAppointmentDuration applies when a booking omits the end time.
const DefaultAppointmentDuration = 30 * time.Minute

type Appointment struct {
	Base
	PatientID  uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID   uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	StartTime  time.Time         `db:"start_time" json:"start_time"`
	EndTime    time.Time         `db:"end_time" json:"end_time"`
	Status     AppointmentStatus `db:"status" json:"status"`
	Reason     string            `db:"reason" json:"reason,omitempty"`
	RemindedAt *time.Time        `db:"reminded_at" json:"-"`
}

// Overlaps reports whether [s1,e1) and [s2,e2) share at least one instant.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

type CreateAppointmentRequest struct {
	PatientID uuid.UUID  `json:"patient_id" binding:"required"`
	DoctorID  uuid.UUID  `json:"doctor_id" binding:"required"`
	StartTime time.Time  `json:"start_time" binding:"required"`
	EndTime   *time.Time `json:"end_time"`
	Reason    string     `json:"reason" binding:"max=255"`
}

type UpdateAppointmentRequest struct {
	StartTime *time.Time         `json:"start_time"`
	EndTime   *time.Time         `json:"end_time"`
	Status    *AppointmentStatus `json:"status" binding:"omitempty,appointment_status"`
	Reason    *string            `json:"reason" binding:"omitempty,max=255"`
}

type AppointmentFilters struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	From      time.Time
	To        time.Time
}

// AppointmentReminder is an appointment joined with the contact details the
// reminder worker needs.
type AppointmentReminder struct {
	AppointmentID uuid.UUID `db:"appointment_id"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	PatientName   string    `db:"patient_name"`
	PatientEmail  string    `db:"patient_email"`
	DoctorName    string    `db:"doctor_name"`
}
