package models

import (
	"time"
)

// User is a row of the users table.
type User struct {
	UserID         string  `db:"user_id"`
	Email          string  `db:"email"`
	PasswordHash   *string `db:"password_hash"`
	AuthProvider   string  `db:"auth_provider"`
	ProviderUserID *string `db:"provider_user_id"`
	DisplayName    string  `db:"display_name"`
	Timezone       string  `db:"timezone"`
	DateFormat     string  `db:"date_format"`
	TimeFormat     string  `db:"time_format"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
