package repo_errors

import "errors"

var (
	ErrNotFound = errors.New("entity not found")

	// ErrConflict means a write's precondition no longer held when the
	// transaction ran, that is the state changed under a concurrent caller.
	ErrConflict = errors.New("precondition no longer holds")

	// ErrRestricted means a delete is blocked by referencing rows.
	ErrRestricted = errors.New("entity is referenced by other records")

	// ErrNoChange means an update diffed to nothing and wrote no rows.
	ErrNoChange = errors.New("update carries no new values")
)
