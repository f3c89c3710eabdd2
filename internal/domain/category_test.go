package domain

import (
	"strings"
	"testing"
)

func TestNewCategoryNameBoundary(t *testing.T) {
	atLimit := strings.Repeat("a", 100)
	if _, err := NewCategory(atLimit, ""); err != nil {
		t.Errorf("Expected 100-character name to be accepted, got: %v", err)
	}

	overLimit := strings.Repeat("a", 101)
	if _, err := NewCategory(overLimit, ""); err == nil {
		t.Error("Expected 101-character name to be rejected")
	}
}

func TestNewCategoryEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := NewCategory(name, "description"); err == nil {
			t.Errorf("Expected name %q to be rejected", name)
		}
	}
}

func TestCategoryUpdate(t *testing.T) {
	category, err := NewCategory("Books", "printed things")
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	if err := category.Update("Magazines", "periodicals"); err != nil {
		t.Fatalf("Expected update to succeed, got: %v", err)
	}
	if category.Name != "Magazines" || category.Description != "periodicals" {
		t.Error("Expected updated fields to be applied")
	}
	if category.UpdatedAt == nil {
		t.Error("Expected UpdatedAt to be set after update")
	}

	if err := category.Update("", "x"); err == nil {
		t.Error("Expected empty name to be rejected")
	}
	if category.Name != "Magazines" {
		t.Error("Expected failed update to leave the category unchanged")
	}
}
