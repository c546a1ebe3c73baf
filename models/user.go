package models

// User represents an account that can log in and author posts.
// It maps to the `user` table in SQLite. Password holds a bcrypt hash,
// never the plaintext credential.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
	Active   bool   `db:"active" json:"active"`
	RoleID   int64  `db:"role_id" json:"role_id"`
	Role     *Role  `json:"role,omitempty"`
}

// UserUpdate carries a partial update. Nil fields are left untouched.
// Password, when set, must already be hashed by the caller.
type UserUpdate struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Active   *bool   `json:"active"`
	RoleID   *int64  `json:"role_id"`
}

// IsZero reports whether the update would change nothing.
func (u UserUpdate) IsZero() bool {
	return u.Username == nil && u.Password == nil && u.Active == nil && u.RoleID == nil
}
