package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
)

type Bill struct {
	Base
	PatientID     uuid.UUID       `db:"patient_id" json:"patient_id"`
	AppointmentID *uuid.UUID      `db:"appointment_id" json:"appointment_id,omitempty"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Status        BillStatus      `db:"status" json:"status"`
	PaidAt        *time.Time      `db:"paid_at" json:"paid_at,omitempty"`
}

type CreateBillRequest struct {
	PatientID     uuid.UUID  `json:"patient_id" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	Amount        string     `json:"amount" binding:"required"`
	Status        BillStatus `json:"status" binding:"omitempty,bill_status"`
}
