package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the project lifecycle state, restricted to a fixed set.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on-hold"
)

// Valid reports whether s is one of the allowed status values.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Project is the aggregate for the projects resource. IDs are opaque strings
// assigned at creation and immutable thereafter.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProject constructs a candidate Project with a fresh id and
// CreatedAt == UpdatedAt. An empty status defaults to active.
// Validation happens in the service, before the store admits the entity.
func NewProject(name, description string, status Status) *Project {
	if status == "" {
		status = StatusActive
	}
	now := time.Now().UTC()
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EntityID returns the immutable identifier.
func (p *Project) EntityID() string { return p.ID }

// Touched returns a copy with UpdatedAt refreshed.
func (p *Project) Touched(now time.Time) *Project {
	c := *p
	c.UpdatedAt = now
	return &c
}

// Patch is a partial attribute set for updates; nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Status      *Status
}

// Apply merges patch over p and returns the merged copy. ID and CreatedAt
// are never modified.
func (p *Project) Apply(patch Patch) *Project {
	c := *p
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	return &c
}

// Validate collects every rule violation in one pass so callers can report
// all problems at once. An empty slice means the project is valid.
func (p *Project) Validate() []string {
	var violations []string
	if strings.TrimSpace(p.Name) == "" {
		violations = append(violations, "Project name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		violations = append(violations, "Project description is required")
	}
	if !p.Status.Valid() {
		violations = append(violations, "Status must be one of: active, completed, on-hold")
	}
	return violations
}

// Matches reports whether search (case-insensitive) occurs in the name or
// description. Used by the in-memory store's list filter.
func (p *Project) Matches(search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), s) ||
		strings.Contains(strings.ToLower(p.Description), s)
}

// Compare orders two projects by the given sort field, falling back to store
// order (0) for unknown fields.
func Compare(a, b *Project, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}
