package dto

import "time"

// CreateUserRequest body para POST /api/Users.
type CreateUserRequest struct {
	FirstName     string     `json:"first_name" validate:"required,max=50"`
	LastName      string     `json:"last_name" validate:"required,max=50"`
	PersonnelCode string     `json:"personnel_code" validate:"required,max=20"`
	Mobile        string     `json:"mobile" validate:"required,max=15"`
	Email         string     `json:"email" validate:"omitempty,email,max=100"`
	Password      string     `json:"password" validate:"required,min=8"`
	RoleID        int        `json:"role_id" validate:"required,min=1,max=5"`
	ExpiryDate    *time.Time `json:"expiry_date"`
}

// UpdateUserRequest body para PUT /api/Users/:id (campos opcionales).
type UpdateUserRequest struct {
	FirstName  *string    `json:"first_name" validate:"omitempty,max=50"`
	LastName   *string    `json:"last_name" validate:"omitempty,max=50"`
	Mobile     *string    `json:"mobile" validate:"omitempty,max=15"`
	Email      *string    `json:"email" validate:"omitempty,email,max=100"`
	Password   *string    `json:"password" validate:"omitempty,min=8"`
	RoleID     *int       `json:"role_id" validate:"omitempty,min=1,max=5"`
	IsActive   *bool      `json:"is_active"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// UserResponse vista de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID            int64      `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	PersonnelCode string     `json:"personnel_code"`
	Mobile        string     `json:"mobile"`
	Email         string     `json:"email,omitempty"`
	RoleID        int        `json:"role_id"`
	RoleName      string     `json:"role_name"`
	IsActive      bool       `json:"is_active"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	CreatedDate   time.Time  `json:"created_date"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}
