package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Failure taxonomy raised by the repositories themselves. Anything else that
// comes out of a repository operation is a storage failure wrapped with
// context and passed through unchanged; callers translate, repositories never
// retry.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// rejection (the storage-level backstop behind the explicit pre-checks).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
