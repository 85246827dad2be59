package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=buyer seller"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=buyer seller admin"`
}

type updateRoleRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role"   validate:"required,oneof=buyer seller admin"`
}

// --- Response types ---

// userResponse never carries the password hash.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type signupResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type userListResponse struct {
	Users []userResponse `json:"users"`
}

type messageResponse struct {
	Message string        `json:"message"`
	User    *userResponse `json:"user,omitempty"`
}
