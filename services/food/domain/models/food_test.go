package models

import (
	"testing"
)

func TestNewFoodItem(t *testing.T) {
	t.Run("availability defaults to true when absent", func(t *testing.T) {
		f := NewFoodItem("Pizza", "Pizza", 12.99, "Classic margherita", nil)
		if !f.IsAvailable {
			t.Error("expected IsAvailable true")
		}
	})

	t.Run("an explicit false is kept", func(t *testing.T) {
		unavailable := false
		f := NewFoodItem("Pizza", "Pizza", 12.99, "Classic margherita", &unavailable)
		if f.IsAvailable {
			t.Error("expected IsAvailable false")
		}
	})

	t.Run("CreatedAt equals UpdatedAt", func(t *testing.T) {
		f := NewFoodItem("Pizza", "Pizza", 12.99, "Classic margherita", nil)
		if !f.CreatedAt.Equal(f.UpdatedAt) {
			t.Errorf("CreatedAt %v != UpdatedAt %v", f.CreatedAt, f.UpdatedAt)
		}
	})
}

func TestFoodItem_Validate(t *testing.T) {
	t.Run("valid item has no violations", func(t *testing.T) {
		f := NewFoodItem("Pizza", "Pizza", 12.99, "Classic margherita", nil)
		if v := f.Validate(); len(v) != 0 {
			t.Fatalf("unexpected violations: %v", v)
		}
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		f := NewFoodItem("Water", "Drinks", 0, "Tap water", nil)
		if v := f.Validate(); len(v) != 0 {
			t.Fatalf("unexpected violations: %v", v)
		}
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		f := NewFoodItem("Pizza", "Pizza", -1, "Classic margherita", nil)
		v := f.Validate()
		if len(v) != 1 || v[0] != "Price must be a positive number" {
			t.Fatalf("unexpected violations: %v", v)
		}
	})

	t.Run("collects every violation at once", func(t *testing.T) {
		f := &FoodItem{Price: -5}
		v := f.Validate()
		want := []string{
			"Name is required",
			"Category is required",
			"Price must be a positive number",
			"Description is required",
		}
		if len(v) != len(want) {
			t.Fatalf("expected %d violations, got %v", len(want), v)
		}
		for i, msg := range want {
			if v[i] != msg {
				t.Errorf("violation %d: expected %q, got %q", i, msg, v[i])
			}
		}
	})
}

func TestFoodItem_Apply(t *testing.T) {
	f := NewFoodItem("Pizza", "Pizza", 12.99, "Classic margherita", nil)

	price := 10.50
	unavailable := false
	merged := f.Apply(Patch{Price: &price, IsAvailable: &unavailable})

	if merged.Price != 10.50 || merged.IsAvailable {
		t.Errorf("patch not applied: %+v", merged)
	}
	if merged.Name != "Pizza" {
		t.Errorf("nil patch field must keep stored value, got %q", merged.Name)
	}
	if f.Price != 12.99 {
		t.Error("Apply must not mutate the receiver")
	}
}

func TestFoodItem_Matches(t *testing.T) {
	f := &FoodItem{Name: "Caesar Salad", Category: "Salad", Description: "Romaine with dressing"}

	if !f.Matches("caesar") || !f.Matches("SALAD") || !f.Matches("romaine") {
		t.Error("expected matches on name, category, and description")
	}
	if f.Matches("pizza") {
		t.Error("unexpected match")
	}
}

func TestCompare_price(t *testing.T) {
	cheap := &FoodItem{Price: 5}
	pricey := &FoodItem{Price: 15}

	if Compare(cheap, pricey, "price") >= 0 {
		t.Error("expected cheap < pricey")
	}
	if Compare(pricey, cheap, "price") <= 0 {
		t.Error("expected pricey > cheap")
	}
	if Compare(cheap, cheap, "price") != 0 {
		t.Error("expected equal prices to compare as 0")
	}
}
