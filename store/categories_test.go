package store

import (
	"errors"
	"testing"

	"finapi/models"
)

func TestCategoryVisibilityUnion(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice@example.com")
	bob := mustCreateUser(t, s, "bob@example.com")
	mustCreateGlobalCategory(t, s, "Food")
	if _, err := s.CreateCategory(alice.ID, "Hobby"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateCategory(bob.ID, "Workshop"); err != nil {
		t.Fatalf("create: %v", err)
	}

	cats, err := s.CategoriesVisibleTo(alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	names := map[string]bool{}
	for _, c := range cats {
		names[c.Name] = true
	}
	if !names["Food"] || !names["Hobby"] {
		t.Fatalf("global and own categories must be visible, got %v", names)
	}
	if names["Workshop"] {
		t.Fatal("another user's private category leaked into the listing")
	}
}

func TestDuplicateNamesAcrossScopesPermitted(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice@example.com")
	bob := mustCreateUser(t, s, "bob@example.com")
	mustCreateGlobalCategory(t, s, "Food")

	if _, err := s.CreateCategory(alice.ID, "Food"); err != nil {
		t.Fatalf("duplicate of a global name should be permitted: %v", err)
	}
	if _, err := s.CreateCategory(bob.ID, "Food"); err != nil {
		t.Fatalf("duplicate across users should be permitted: %v", err)
	}
}

func TestMutateOutOfScopeCategoryIsNotFound(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice@example.com")
	bob := mustCreateUser(t, s, "bob@example.com")
	global := mustCreateGlobalCategory(t, s, "Food")
	bobs, err := s.CreateCategory(bob.ID, "Workshop")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// global rows and other users' rows are both NotFound, never Forbidden
	if _, err := s.RenameCategory(alice.ID, global.ID, "Meals"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound renaming a global category, got %v", err)
	}
	if err := s.DeleteCategory(alice.ID, global.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting a global category, got %v", err)
	}
	if _, err := s.RenameCategory(alice.ID, bobs.ID, "Mine"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound renaming another user's category, got %v", err)
	}
}

func TestDeleteCategoryClearsTransactionReferences(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	a := mustCreateAccount(t, s, u.ID, "checking")
	cat, err := s.CreateCategory(u.ID, "Hobby")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	tx := mustRecord(t, s, u.ID, a.ID, "paint", 30, "2024-06-10", &cat.ID)
	if _, err := s.UpsertBudget(u.ID, cat.ID, 100, nil); err != nil {
		t.Fatalf("upsert budget: %v", err)
	}

	if err := s.DeleteCategory(u.ID, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	var got models.Transaction
	if err := s.db.First(&got, tx.ID).Error; err != nil {
		t.Fatalf("transaction must survive category deletion: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("category reference should be cleared, got %v", *got.CategoryID)
	}
	var budgets int64
	s.db.Model(&models.CategoryBudget{}).Where("category_id = ?", cat.ID).Count(&budgets)
	if budgets != 0 {
		t.Fatalf("owner budgets for the deleted category should be removed, got %d", budgets)
	}
}

func TestRenameOwnCategory(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	cat, err := s.CreateCategory(u.ID, "Hoby")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.RenameCategory(u.ID, cat.ID, "Hobby")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got.Name != "Hobby" {
		t.Fatalf("expected renamed category, got %q", got.Name)
	}
}
