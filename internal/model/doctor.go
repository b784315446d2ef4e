package model

type Doctor struct {
	Base
	Name       string `db:"name" json:"name"`
	Department string `db:"department" json:"department"`
	Experience int    `db:"experience" json:"experience"`
	Contact    string `db:"contact" json:"contact,omitempty"`
	Email      string `db:"email" json:"email,omitempty"`
}

type CreateDoctorRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Department string `json:"department" binding:"required,max=100"`
	Experience int    `json:"experience" binding:"gte=0"`
	Contact    string `json:"contact" binding:"max=30"`
	Email      string `json:"email" binding:"omitempty,email"`
}

type UpdateDoctorRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Experience *int    `json:"experience" binding:"omitempty,gte=0"`
	Contact    *string `json:"contact" binding:"omitempty,max=30"`
	Email      *string `json:"email" binding:"omitempty,email"`
}
