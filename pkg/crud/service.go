package crud

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service orchestrates the validate-then-mutate lifecycle for one resource
// kind. An entity failing validation is never admitted into the store:
// validation runs before Insert and before update-in-place, never after.
type Service[T Entity[T]] struct {
	resource   string // client-facing resource label, e.g. "Project", "Food item"
	store      Store[T]
	validate   func(e T) []string
	beforeSave func(ctx context.Context, s Store[T], e T) error
	cache      Cacher[T]
	now        func() time.Time
}

// ServiceOption configures optional Service collaborators.
type ServiceOption[T Entity[T]] func(*Service[T])

// WithBeforeSave installs a cross-entity rule checked on create, after field
// validation passes (e.g. project title uniqueness → Conflict).
func WithBeforeSave[T Entity[T]](hook func(ctx context.Context, s Store[T], e T) error) ServiceOption[T] {
	return func(svc *Service[T]) { svc.beforeSave = hook }
}

// WithCache installs a read-through cache for Get. Mutations keep the cache
// coherent: update refreshes the entry, delete evicts it.
func WithCache[T Entity[T]](c Cacher[T]) ServiceOption[T] {
	return func(svc *Service[T]) { svc.cache = c }
}

// WithClock overrides the UpdatedAt clock. Tests use this.
func WithClock[T Entity[T]](now func() time.Time) ServiceOption[T] {
	return func(svc *Service[T]) { svc.now = now }
}

// NewService wires a Service for one resource kind. resource is the label
// used in client-facing error messages; validate returns every violation of
// the candidate entity in one pass (empty slice means valid).
func NewService[T Entity[T]](resource string, store Store[T], validate func(e T) []string, opts ...ServiceOption[T]) *Service[T] {
	svc := &Service[T]{
		resource: resource,
		store:    store,
		validate: validate,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// List returns the entities matching q in store order plus the total match
// count ignoring pagination.
func (s *Service[T]) List(ctx context.Context, q Query) ([]T, int, error) {
	items, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.resource, err)
	}
	return items, total, nil
}

// Get returns the entity with the given id, consulting the cache first.
// Returns a NotFound error when absent.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, id); err == nil && ok {
			return cached, nil
		}
	}

	e, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, NotFound(s.resource)
		}
		return zero, fmt.Errorf("get %s: %w", s.resource, err)
	}

	if s.cache != nil {
		go func() { _ = s.cache.Set(context.Background(), id, e) }()
	}
	return e, nil
}

// Create validates the candidate entity and appends it to the store.
// The entity arrives fully constructed (fresh id, CreatedAt == UpdatedAt);
// on any failure the store is left unchanged.
func (s *Service[T]) Create(ctx context.Context, e T) (T, error) {
	var zero T
	if violations := s.validate(e); len(violations) > 0 {
		return zero, Invalid(violations)
	}
	if s.beforeSave != nil {
		if err := s.beforeSave(ctx, s.store, e); err != nil {
			return zero, err
		}
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return zero, fmt.Errorf("create %s: %w", s.resource, err)
	}
	return e, nil
}

// Update applies patch to the stored entity, re-validates the merged result,
// and replaces the stored entity with UpdatedAt refreshed. The patch function
// must return a modified copy; id and CreatedAt are preserved by Touched.
func (s *Service[T]) Update(ctx context.Context, id string, patch func(T) T) (T, error) {
	var zero T
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, NotFound(s.resource)
		}
		return zero, fmt.Errorf("get %s: %w", s.resource, err)
	}

	merged := patch(existing).Touched(s.now())
	if violations := s.validate(merged); len(violations) > 0 {
		return zero, Invalid(violations)
	}

	if err := s.store.Update(ctx, merged); err != nil {
		return zero, fmt.Errorf("update %s: %w", s.resource, err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, id, merged)
	}
	return merged, nil
}

// Delete removes the entity with the given id and returns it.
func (s *Service[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, NotFound(s.resource)
		}
		return zero, fmt.Errorf("delete %s: %w", s.resource, err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, id)
	}
	return removed, nil
}

// Resource returns the client-facing resource label.
func (s *Service[T]) Resource() string { return s.resource }
