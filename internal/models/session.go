package models

import "time"

// Session records one login of a user for audit purposes: originating client
// metadata plus login and logout timestamps. The opaque token handed to the
// client is not stored here; it lives server-side in the token store.
type Session struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	IPAddress  string     `db:"ip_address" json:"ip_address"`
	UserAgent  string     `db:"user_agent" json:"user_agent"`
	LoginTime  time.Time  `db:"login_time" json:"login_time"`
	LogoutTime *time.Time `db:"logout_time" json:"logout_time,omitempty"`
}
