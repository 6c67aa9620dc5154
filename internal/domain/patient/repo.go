package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a patient number has no demographics row.
var ErrNotFound = errors.New("patient not found")

// Repository loads patient list rows from the backing store.
type Repository interface {
	// List returns one page of patients ordered by patient number, plus the
	// total patient count for pagination.
	List(ctx context.Context, limit, offset int) ([]*Row, int, error)
}
