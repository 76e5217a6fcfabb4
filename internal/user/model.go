package user

import "time"

type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"-"`
	Role           string     `json:"role"`
	FullName       *string    `json:"full_name,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	DefaultAddress *string    `json:"default_address,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// UpdateProfileParams leaves nil fields untouched.
type UpdateProfileParams struct {
	FullName       *string `json:"full_name"`
	Phone          *string `json:"phone"`
	DefaultAddress *string `json:"default_address"`
}

func (p UpdateProfileParams) empty() bool {
	return p.FullName == nil && p.Phone == nil && p.DefaultAddress == nil
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
