package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignupRequest holds the registration payload. Role-specific fields are
// validated conditionally in the service.
type SignupRequest struct {
	Email            string   `json:"email" validate:"required,email"`
	Password         string   `json:"password" validate:"required,min=6"`
	Name             string   `json:"name" validate:"required"`
	Role             UserRole `json:"role" validate:"required"`
	RollNumber       string   `json:"roll_number"`
	Program          string   `json:"program"`
	Year             *int     `json:"year"`
	Department       string   `json:"department"`
	AreasOfExpertise []string `json:"areas_of_expertise"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
	User      *User     `json:"user"`
}

// UpdateProfileRequest is a partial profile patch. Nil fields are left
// untouched; role-specific fields only apply to accounts of that role.
type UpdateProfileRequest struct {
	Name             *string  `json:"name"`
	Email            *string  `json:"email" validate:"omitempty,email"`
	RollNumber       *string  `json:"roll_number"`
	Program          *string  `json:"program"`
	Year             *int     `json:"year"`
	Department       *string  `json:"department"`
	AreasOfExpertise []string `json:"areas_of_expertise"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}
