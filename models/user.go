package models

// User is a mock signup record, stored as the original app stored it:
// plain text in the users blob. Real credential handling is out of scope.
type User struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	CreatedAt string `json:"createdAt,omitempty"`
}
