package crud

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func newNoteService(store Store[note], opts ...ServiceOption[note]) *Service[note] {
	return NewService("Note", store, note.validate, opts...)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid entity lands in the store", func(t *testing.T) {
		store := newNoteStore()
		svc := newNoteService(store)

		created, err := svc.Create(ctx, note{ID: "1", Title: "hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID != "1" {
			t.Errorf("unexpected entity: %v", created)
		}
		if store.Len() != 1 {
			t.Errorf("expected 1 stored entity, got %d", store.Len())
		}
	})

	t.Run("invalid entity never reaches the store", func(t *testing.T) {
		store := newNoteStore()
		svc := newNoteService(store)

		_, err := svc.Create(ctx, note{ID: "1", Title: "  "})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if got := err.Error(); got != "Validation failed: Title is required" {
			t.Errorf("unexpected message: %q", got)
		}
		if store.Len() != 0 {
			t.Errorf("store must stay unchanged, has %d entities", store.Len())
		}
	})

	t.Run("beforeSave rejection keeps the store unchanged", func(t *testing.T) {
		store := newNoteStore(note{ID: "1", Title: "taken"})
		svc := newNoteService(store, WithBeforeSave[note](func(ctx context.Context, s Store[note], e note) error {
			existing, _, err := s.List(ctx, Query{Search: e.Title})
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return Conflict("A note with this title already exists")
			}
			return nil
		}))

		_, err := svc.Create(ctx, note{ID: "2", Title: "taken"})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		if store.Len() != 1 {
			t.Errorf("expected 1 stored entity, got %d", store.Len())
		}
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored entity", func(t *testing.T) {
		svc := newNoteService(newNoteStore(note{ID: "1", Title: "one"}))
		got, err := svc.Get(ctx, "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Title != "one" {
			t.Errorf("unexpected entity: %v", got)
		}
	})

	t.Run("unknown id carries the resource label", func(t *testing.T) {
		svc := newNoteService(newNoteStore())
		_, err := svc.Get(ctx, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if got := err.Error(); got != "Note not found" {
			t.Errorf("unexpected message: %q", got)
		}
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("applies the patch and refreshes UpdatedAt", func(t *testing.T) {
		svc := newNoteService(
			newNoteStore(note{ID: "1", Title: "old"}),
			WithClock[note](func() time.Time { return fixed }),
		)

		updated, err := svc.Update(ctx, "1", func(n note) note {
			n.Title = "new"
			return n
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Title != "new" {
			t.Errorf("patch not applied: %v", updated)
		}
		if !updated.UpdatedAt.Equal(fixed) {
			t.Errorf("expected UpdatedAt %v, got %v", fixed, updated.UpdatedAt)
		}
	})

	t.Run("invalid merge leaves the stored entity untouched", func(t *testing.T) {
		store := newNoteStore(note{ID: "1", Title: "keep"})
		svc := newNoteService(store)

		_, err := svc.Update(ctx, "1", func(n note) note {
			n.Title = ""
			return n
		})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		got, _ := store.Get(ctx, "1")
		if got.Title != "keep" {
			t.Errorf("stored entity was modified: %v", got)
		}
	})

	t.Run("unknown id returns the resource message", func(t *testing.T) {
		svc := newNoteService(newNoteStore())
		_, err := svc.Update(ctx, "missing", func(n note) note { return n })
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err.Error() != "Note not found" {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the removed entity", func(t *testing.T) {
		store := newNoteStore(note{ID: "1", Title: "bye"})
		svc := newNoteService(store)

		removed, err := svc.Delete(ctx, "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed.Title != "bye" {
			t.Errorf("unexpected entity: %v", removed)
		}
		if store.Len() != 0 {
			t.Errorf("expected empty store, got %d", store.Len())
		}
	})

	t.Run("deleting twice returns not found", func(t *testing.T) {
		svc := newNoteService(newNoteStore(note{ID: "1", Title: "bye"}))
		if _, err := svc.Delete(ctx, "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Delete(ctx, "1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

// fakeCache records Cacher calls for assertions.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]note
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]note)}
}

func (c *fakeCache) Get(_ context.Context, id string) (note, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[id]
	return n, ok, nil
}

func (c *fakeCache) Set(_ context.Context, id string, v note) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = v
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.deleted = append(c.deleted, id)
	return nil
}

func TestService_cacheCoherence(t *testing.T) {
	ctx := context.Background()

	t.Run("get prefers the cached entity", func(t *testing.T) {
		c := newFakeCache()
		c.entries["1"] = note{ID: "1", Title: "cached"}
		svc := newNoteService(newNoteStore(note{ID: "1", Title: "stored"}), WithCache[note](c))

		got, err := svc.Get(ctx, "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Title != "cached" {
			t.Errorf("expected cache hit, got %v", got)
		}
	})

	t.Run("update refreshes the cache entry", func(t *testing.T) {
		c := newFakeCache()
		svc := newNoteService(newNoteStore(note{ID: "1", Title: "old"}), WithCache[note](c))

		if _, err := svc.Update(ctx, "1", func(n note) note {
			n.Title = "new"
			return n
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cached, ok, _ := c.Get(ctx, "1"); !ok || cached.Title != "new" {
			t.Errorf("cache not refreshed: ok=%v entry=%v", ok, cached)
		}
	})

	t.Run("delete evicts the cache entry", func(t *testing.T) {
		c := newFakeCache()
		c.entries["1"] = note{ID: "1", Title: "stale"}
		svc := newNoteService(newNoteStore(note{ID: "1", Title: "stale"}), WithCache[note](c))

		if _, err := svc.Delete(ctx, "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.deleted) != 1 || c.deleted[0] != "1" {
			t.Errorf("expected eviction of id 1, got %v", c.deleted)
		}
	})
}

func TestService_validationMessageJoinsAllViolations(t *testing.T) {
	store := NewMemoryStore[note](nil)
	svc := NewService("Note", store, func(n note) []string {
		var v []string
		if n.Title == "" {
			v = append(v, "Title is required")
		}
		if !strings.HasPrefix(n.ID, "n-") {
			v = append(v, "ID must start with n-")
		}
		return v
	})

	_, err := svc.Create(context.Background(), note{})
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Validation failed: Title is required, ID must start with n-"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
