package models

// AdminRoleName is the role granting administrative access to gated endpoints.
const AdminRoleName = "admin"

// Role represents an access role assigned to users.
// It maps to the `role` table in SQLite.
type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
