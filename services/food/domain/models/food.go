package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FoodItem is the aggregate for the menu resource.
type FoodItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewFoodItem constructs a candidate FoodItem with a fresh id and
// CreatedAt == UpdatedAt. available is a pointer so the caller can
// distinguish "absent" (defaults to true) from an explicit false.
func NewFoodItem(name, category string, price float64, description string, available *bool) *FoodItem {
	isAvailable := true
	if available != nil {
		isAvailable = *available
	}
	now := time.Now().UTC()
	return &FoodItem{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    category,
		Price:       price,
		Description: description,
		IsAvailable: isAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EntityID returns the immutable identifier.
func (f *FoodItem) EntityID() string { return f.ID }

// Touched returns a copy with UpdatedAt refreshed.
func (f *FoodItem) Touched(now time.Time) *FoodItem {
	c := *f
	c.UpdatedAt = now
	return &c
}

// Patch is a partial attribute set for updates; nil fields are left untouched.
type Patch struct {
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	IsAvailable *bool
}

// Apply merges patch over f and returns the merged copy.
func (f *FoodItem) Apply(patch Patch) *FoodItem {
	c := *f
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Category != nil {
		c.Category = *patch.Category
	}
	if patch.Price != nil {
		c.Price = *patch.Price
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.IsAvailable != nil {
		c.IsAvailable = *patch.IsAvailable
	}
	return &c
}

// Validate collects every rule violation in one pass. An empty slice means
// the item is valid.
func (f *FoodItem) Validate() []string {
	var violations []string
	if strings.TrimSpace(f.Name) == "" {
		violations = append(violations, "Name is required")
	}
	if strings.TrimSpace(f.Category) == "" {
		violations = append(violations, "Category is required")
	}
	if f.Price < 0 {
		violations = append(violations, "Price must be a positive number")
	}
	if strings.TrimSpace(f.Description) == "" {
		violations = append(violations, "Description is required")
	}
	return violations
}

// Matches reports whether search (case-insensitive) occurs in the name,
// category, or description.
func (f *FoodItem) Matches(search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(f.Name), s) ||
		strings.Contains(strings.ToLower(f.Category), s) ||
		strings.Contains(strings.ToLower(f.Description), s)
}

// Compare orders two food items by the given sort field, falling back to
// store order (0) for unknown fields.
func Compare(a, b *FoodItem, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "category":
		return strings.Compare(a.Category, b.Category)
	case "price":
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}
