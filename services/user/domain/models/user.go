package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the aggregate for the users resource. Age is optional and zero
// means "not provided".
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser constructs a candidate User with a fresh id and
// CreatedAt == UpdatedAt.
func NewUser(name, email string, age int) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityID returns the immutable identifier.
func (u *User) EntityID() string { return u.ID }

// Touched returns a copy with UpdatedAt refreshed.
func (u *User) Touched(now time.Time) *User {
	c := *u
	c.UpdatedAt = now
	return &c
}

// Patch is a partial attribute set for updates; nil fields are left untouched.
type Patch struct {
	Name  *string
	Email *string
	Age   *int
}

// Apply merges patch over u and returns the merged copy.
func (u *User) Apply(patch Patch) *User {
	c := *u
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Age != nil {
		c.Age = *patch.Age
	}
	return &c
}

// Validate collects every rule violation in one pass. An empty slice means
// the user is valid.
func (u *User) Validate() []string {
	var violations []string
	if strings.TrimSpace(u.Name) == "" {
		violations = append(violations, "Name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		violations = append(violations, "Email is required")
	} else if _, err := mail.ParseAddress(u.Email); err != nil {
		violations = append(violations, "Email must be a valid email address")
	}
	if u.Age < 0 {
		violations = append(violations, "Age must be a positive number")
	}
	return violations
}

// Matches reports whether search (case-insensitive) occurs in the name or
// email.
func (u *User) Matches(search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(u.Name), s) ||
		strings.Contains(strings.ToLower(u.Email), s)
}

// Compare orders two users by the given sort field, falling back to store
// order (0) for unknown fields.
func Compare(a, b *User, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "age":
		return a.Age - b.Age
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}
