package models

import "time"

// UserRole represents the account roles recognised by the platform.
type UserRole string

const (
	RoleParticipant UserRole = "Participant"
	RoleTrainer     UserRole = "Trainer"
	RoleAdmin       UserRole = "NDMA Admin"
)

// User represents an account stored in the users table. Password hashes never
// leave the server; the json tag keeps them out of every envelope.
type User struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         UserRole   `db:"role" json:"role"`
	State        string     `db:"state" json:"state"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
}

// UserInfo describes a user in API responses.
type UserInfo struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	State string   `json:"state"`
}

// Info projects the public view of a user.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, State: u.State}
}
