package models

import "time"

// Post represents a blog post.
// It maps to the `post` table in SQLite. Created is assigned by the server
// on insert and never updated afterwards.
type Post struct {
	ID       int64     `db:"id" json:"id"`
	Title    string    `db:"title" json:"title"`
	Body     string    `db:"body" json:"body"`
	Created  time.Time `db:"created" json:"created"`
	AuthorID int64     `db:"author_id" json:"author_id"`
}

// PostUpdate carries a partial update. Nil fields are left untouched.
// The creation timestamp is deliberately not updatable.
type PostUpdate struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// IsZero reports whether the update would change nothing.
func (p PostUpdate) IsZero() bool {
	return p.Title == nil && p.Body == nil
}
