package models

// RegisterRequest holds the payload for creating an account.
type RegisterRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required"`
	ConfirmPassword string   `json:"confirm_password" validate:"required"`
	Role            UserRole `json:"role"`
	State           string   `json:"state" validate:"required"`
	IP              string   `json:"-"`
	UserAgent       string   `json:"-"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// AuthResult returns the authenticated user and the opaque session token the
// transport layer attaches to the client.
type AuthResult struct {
	User  UserInfo
	Token string
}
