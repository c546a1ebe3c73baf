package repository

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by repositories. Handlers map these onto HTTP
// statuses; everything else is an internal fault.
var (
	// ErrNotFound signals that no row matched the given identifier.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a uniqueness violation (e.g. duplicate username).
	ErrConflict = errors.New("conflict with existing record")
	// ErrIntegrity signals any other constraint failure (e.g. a foreign key
	// referencing a missing row, or a row still referenced on delete).
	ErrIntegrity = errors.New("integrity constraint violated")
)

// mapSQLiteError translates driver-level constraint failures into the
// repository sentinels. Non-constraint errors pass through untouched.
func mapSQLiteError(err error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if se.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	return err
}
