package dto

import "time"

// Request DTOs

type LoginRequest struct {
	Login    string `schema:"username" validate:"required"`
	Password string `schema:"password" validate:"required"`
}

// RegisterPatientRequest is the patient registration form.
type RegisterPatientRequest struct {
	FullName         string `schema:"Fname" validate:"required,max=150"`
	DateOfBirth      string `schema:"Dob" validate:"required,datetime=2006-01-02"`
	Address          string `schema:"HA" validate:"max=300"`
	Contact          string `schema:"Contact" validate:"max=200"`
	Email            string `schema:"email" validate:"required,email,max=150"`
	NextOfKin        string `schema:"nok" validate:"max=200"`
	NextOfKinContact string `schema:"nokd" validate:"max=200"`
	Password         string `schema:"password" validate:"required,min=6"`
}

// Response DTOs

type AccountResponse struct {
	ID        uint       `json:"id"`
	Login     string     `json:"login"`
	Role      string     `json:"role"`
	RoleLabel string     `json:"role_label"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// LoginResponse carries the signed session and where the browser goes next.
type LoginResponse struct {
	Token     string          `json:"-"`
	ExpiresIn time.Duration   `json:"expires_in"`
	Redirect  string          `json:"redirect"`
	Account   AccountResponse `json:"account"`
}
