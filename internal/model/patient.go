package model

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Patient struct {
	Base
	Name        string     `db:"name" json:"name"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender      Gender     `db:"gender" json:"gender"`
	Contact     string     `db:"contact" json:"contact,omitempty"`
	Email       string     `db:"email" json:"email,omitempty"`
	Address     string     `db:"address" json:"address,omitempty"`
	// PasswordHash is set only for patients registered through signup.
	PasswordHash string `db:"password_hash" json:"-"`
}

type CreatePatientRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      Gender     `json:"gender" binding:"omitempty,gender"`
	Contact     string     `json:"contact" binding:"max=30"`
	Email       string     `json:"email" binding:"omitempty,email"`
	Address     string     `json:"address"`
}

type UpdatePatientRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=100"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *Gender    `json:"gender" binding:"omitempty,gender"`
	Contact     *string    `json:"contact" binding:"omitempty,max=30"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	Address     *string    `json:"address"`
}
