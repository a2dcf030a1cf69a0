package repository

import (
	"context"

	"github.com/nexoventlabs/business-tracker/internal/business"
	"github.com/nexoventlabs/business-tracker/pkg/apperr"
)

var (
	ErrNotFound    = apperr.New(apperr.KindNotFound, "Business not found")
	ErrDuplicateID = apperr.New(apperr.KindConflict, "a business with this id already exists")
)

// Repository persists business records. Lookups by id match the client-supplied
// integer "id" field, never the store's internal identifier.
type Repository interface {
	// List returns every record, internal identifier excluded.
	List(ctx context.Context) ([]business.Record, error)
	// Create inserts rec and returns the generated internal identifier as a string.
	Create(ctx context.Context, rec business.Record) (string, error)
	// Update merges fields into the first record whose id equals id.
	Update(ctx context.Context, id int64, fields business.Record) error
	// Delete removes the first record whose id equals id.
	Delete(ctx context.Context, id int64) error
	// Ping checks the backing store is reachable.
	Ping(ctx context.Context) error
}
