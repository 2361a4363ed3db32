// Package crud is the generic resource lifecycle core shared by every
// resource kind (projects, food items, users). Each kind supplies a domain
// model implementing Entity plus a collect-all validation function; crud
// provides the store contract, an in-memory store, and the Service that
// enforces validate-before-write semantics.
package crud

import (
	"context"
	"time"
)

// Entity is implemented by resource aggregates. The type parameter is the
// implementing type itself so Touched can return a refreshed copy without
// losing type information.
type Entity[T any] interface {
	// EntityID returns the immutable string identifier assigned at creation.
	EntityID() string

	// Touched returns a copy of the entity with UpdatedAt set to now.
	// ID and CreatedAt are preserved.
	Touched(now time.Time) T
}

// Query carries list-query options: server-side search, sorting, and
// pagination. The zero value means "everything, in store order".
type Query struct {
	Page      int    // 1-based; values < 1 are treated as 1
	Limit     int    // <= 0 disables pagination
	Search    string // substring filter; store decides which fields match
	SortBy    string // field name; empty keeps store order
	SortOrder string // "asc" (default) or "desc"
}

// Normalize clamps Page and lowercases SortOrder.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.SortOrder != "desc" {
		q.SortOrder = "asc"
	}
	return q
}

// Offset returns the number of records to skip for the current page.
func (q Query) Offset() int {
	if q.Limit <= 0 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Store is the persistence contract for one resource kind. Implementations:
// MemoryStore (process-local) and the per-service postgres stores.
// Get and Delete return ErrNotFound when no entity has the given id.
type Store[T Entity[T]] interface {
	// List returns the matching entities in store order plus the total
	// number of matches ignoring pagination.
	List(ctx context.Context, q Query) ([]T, int, error)

	Get(ctx context.Context, id string) (T, error)

	Insert(ctx context.Context, e T) error

	// Update replaces the stored entity with the same id in place.
	Update(ctx context.Context, e T) error

	// Delete removes the entity and returns it.
	Delete(ctx context.Context, id string) (T, error)
}

// Cacher is an optional read-through cache consulted by Service.Get.
// Implemented by pkg/cache.Cache; a nil Cacher disables caching.
type Cacher[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Set(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
}
