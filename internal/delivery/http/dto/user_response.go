package dto

// CreateUserRequest keeps Password as a pointer: a missing password is
// rejected, an empty one is accepted.
type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	IsActive bool    `json:"is_active"`
}
