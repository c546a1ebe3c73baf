package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blogManagement/models"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post. The creation timestamp is assigned here, not
// taken from the caller. Returns ErrIntegrity when the author reference is
// invalid.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	created := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO post (title, body, created, author_id) VALUES (?, ?, ?, ?)`,
		p.Title, p.Body, created, p.AuthorID)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Post{ID: id, Title: p.Title, Body: p.Body, Created: created, AuthorID: p.AuthorID}, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.Post
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, body, created, author_id FROM post WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Body, &p.Created, &p.AuthorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, body, created, author_id FROM post ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Created, &p.AuthorID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update applies the non-nil fields of upd inside a single transaction.
// Title and body are the only mutable columns; created and author_id never
// change after insert. An empty update is a successful no-op.
func (r *PostRepository) Update(ctx context.Context, id int64, upd models.PostUpdate) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if upd.IsZero() {
		return r.GetByID(ctx, id)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM post WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	set := ""
	var args []any
	appendSet := func(col string, val any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, val)
	}
	if upd.Title != nil {
		appendSet("title", *upd.Title)
	}
	if upd.Body != nil {
		appendSet("body", *upd.Body)
	}
	args = append(args, id)

	if _, err := tx.ExecContext(ctx, `UPDATE post SET `+set+` WHERE id = ?`, args...); err != nil {
		return nil, mapSQLiteError(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM post WHERE id = ?`, id)
	if err != nil {
		return mapSQLiteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
