package models

import (
	"testing"
)

func TestNewUser(t *testing.T) {
	u := NewUser("Ada", "ada@example.com", 36)
	if u.ID == "" {
		t.Fatal("expected a fresh id")
	}
	if !u.CreatedAt.Equal(u.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v", u.CreatedAt, u.UpdatedAt)
	}
}

func TestUser_Validate(t *testing.T) {
	t.Run("valid user has no violations", func(t *testing.T) {
		u := NewUser("Ada", "ada@example.com", 36)
		if v := u.Validate(); len(v) != 0 {
			t.Fatalf("unexpected violations: %v", v)
		}
	})

	t.Run("age is optional", func(t *testing.T) {
		u := NewUser("Ada", "ada@example.com", 0)
		if v := u.Validate(); len(v) != 0 {
			t.Fatalf("unexpected violations: %v", v)
		}
	})

	t.Run("missing name and email", func(t *testing.T) {
		u := &User{}
		v := u.Validate()
		if len(v) != 2 {
			t.Fatalf("expected 2 violations, got %v", v)
		}
		if v[0] != "Name is required" || v[1] != "Email is required" {
			t.Errorf("unexpected violations: %v", v)
		}
	})

	t.Run("malformed email", func(t *testing.T) {
		u := &User{Name: "Ada", Email: "not-an-email"}
		v := u.Validate()
		if len(v) != 1 || v[0] != "Email must be a valid email address" {
			t.Fatalf("unexpected violations: %v", v)
		}
	})

	t.Run("negative age", func(t *testing.T) {
		u := &User{Name: "Ada", Email: "ada@example.com", Age: -1}
		v := u.Validate()
		if len(v) != 1 || v[0] != "Age must be a positive number" {
			t.Fatalf("unexpected violations: %v", v)
		}
	})
}

func TestUser_Apply(t *testing.T) {
	u := NewUser("Ada", "ada@example.com", 36)

	email := "lovelace@example.com"
	merged := u.Apply(Patch{Email: &email})

	if merged.Email != "lovelace@example.com" {
		t.Errorf("patch not applied: %+v", merged)
	}
	if merged.Name != "Ada" || merged.Age != 36 {
		t.Errorf("nil patch fields must keep stored values: %+v", merged)
	}
	if u.Email != "ada@example.com" {
		t.Error("Apply must not mutate the receiver")
	}
}

func TestUser_Matches(t *testing.T) {
	u := &User{Name: "Ada Lovelace", Email: "ada@example.com"}

	if !u.Matches("lovelace") || !u.Matches("ADA@") {
		t.Error("expected matches on name and email")
	}
	if u.Matches("turing") {
		t.Error("unexpected match")
	}
}
