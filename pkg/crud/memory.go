package crud

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an ordered in-process Store. It is constructed explicitly at
// start-up and injected into its Service — never a package-level global.
// A RWMutex guards the slice because the HTTP runtime serves requests
// concurrently.
type MemoryStore[T Entity[T]] struct {
	mu      sync.RWMutex
	items   []T
	matches func(e T, search string) bool
	compare func(a, b T, field string) int
}

// MemoryOption configures optional search/sort behavior of a MemoryStore.
type MemoryOption[T Entity[T]] func(*MemoryStore[T])

// WithSearch sets the predicate used for Query.Search filtering.
// Without it, Search is ignored.
func WithSearch[T Entity[T]](matches func(e T, search string) bool) MemoryOption[T] {
	return func(s *MemoryStore[T]) { s.matches = matches }
}

// WithSort sets the comparator used for Query.SortBy ordering. It returns
// <0, 0, >0 like strings.Compare; unknown fields should return 0 so the
// store order is kept. Without it, SortBy is ignored.
func WithSort[T Entity[T]](compare func(a, b T, field string) int) MemoryOption[T] {
	return func(s *MemoryStore[T]) { s.compare = compare }
}

// NewMemoryStore returns an empty MemoryStore. Pass seed entities to
// pre-populate it (seeds bypass validation; callers seed known-good data).
func NewMemoryStore[T Entity[T]](seed []T, opts ...MemoryOption[T]) *MemoryStore[T] {
	s := &MemoryStore[T]{items: append([]T(nil), seed...)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore[T]) List(_ context.Context, q Query) ([]T, int, error) {
	q = q.Normalize()

	s.mu.RLock()
	matched := make([]T, 0, len(s.items))
	for _, e := range s.items {
		if q.Search != "" && s.matches != nil && !s.matches(e, q.Search) {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.RUnlock()

	if q.SortBy != "" && s.compare != nil {
		desc := q.SortOrder == "desc"
		sort.SliceStable(matched, func(i, j int) bool {
			c := s.compare(matched[i], matched[j], q.SortBy)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	total := len(matched)
	if q.Limit > 0 {
		start := q.Offset()
		if start > total {
			start = total
		}
		end := start + q.Limit
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.items {
		if e.EntityID() == id {
			return e, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func (s *MemoryStore[T]) Insert(_ context.Context, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return nil
}

func (s *MemoryStore[T]) Update(_ context.Context, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.EntityID() == e.EntityID() {
			s.items[i] = e
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore[T]) Delete(_ context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return e, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Len reports the current number of stored entities.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
