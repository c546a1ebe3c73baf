package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blogManagement/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelect = `SELECT u.id, u.username, u.password, u.active, u.role_id, r.name
FROM user u JOIN role r ON r.id = u.role_id`

// scanUser scans one joined user row and attaches the resolved role.
func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var roleName string
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Active, &u.RoleID, &roleName); err != nil {
		return nil, err
	}
	u.Role = &models.Role{ID: u.RoleID, Name: roleName}
	return &u, nil
}

// Create inserts a new user. The password must already be hashed.
// Returns ErrConflict when the username is taken and ErrIntegrity when the
// role reference is invalid.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user (username, password, active, role_id) VALUES (?, ?, ?, ?)`,
		u.Username, u.Password, u.Active, u.RoleID)
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE u.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, userSelect+` WHERE u.username = ?`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, userSelect+` ORDER BY u.id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Update applies the non-nil fields of upd to the user inside a single
// transaction; the change set is atomic. A username collision surfaces as
// ErrConflict, an invalid role reference as ErrIntegrity, and in both cases
// nothing is retained. An empty update is a successful no-op.
func (r *UserRepository) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
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
	if err := tx.QueryRowContext(ctx, `SELECT id FROM user WHERE id = ?`, id).Scan(&exists); err != nil {
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
	if upd.Username != nil {
		appendSet("username", *upd.Username)
	}
	if upd.Password != nil {
		appendSet("password", *upd.Password)
	}
	if upd.Active != nil {
		appendSet("active", *upd.Active)
	}
	if upd.RoleID != nil {
		appendSet("role_id", *upd.RoleID)
	}
	args = append(args, id)

	if _, err := tx.ExecContext(ctx, `UPDATE user SET `+set+` WHERE id = ?`, args...); err != nil {
		return nil, mapSQLiteError(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, mapSQLiteError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM user WHERE id = ?`, id)
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
