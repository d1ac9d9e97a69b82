package store

import (
	"errors"
	"testing"

	"finapi/models"
)

func TestUpsertBudgetOverwritesInPlace(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	food := mustCreateGlobalCategory(t, s, "Food")
	month := "2024-06"

	first, err := s.UpsertBudget(u.ID, food.ID, 300, &month)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := s.UpsertBudget(u.ID, food.ID, 400, &month)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("upsert created a new row: %d vs %d", first.ID, second.ID)
	}
	var count int64
	s.db.Model(&models.CategoryBudget{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one budget row, got %d", count)
	}
	got, err := s.Budget(u.ID, food.ID, &month)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Limit != 400 {
		t.Fatalf("limit should reflect the latest upsert, got %v", got.Limit)
	}
}

func TestNullMonthIsADistinctKey(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	food := mustCreateGlobalCategory(t, s, "Food")
	month := "2024-06"

	if _, err := s.UpsertBudget(u.ID, food.ID, 500, nil); err != nil {
		t.Fatalf("standing upsert: %v", err)
	}
	if _, err := s.UpsertBudget(u.ID, food.ID, 300, &month); err != nil {
		t.Fatalf("monthly upsert: %v", err)
	}

	var count int64
	s.db.Model(&models.CategoryBudget{}).Count(&count)
	if count != 2 {
		t.Fatalf("standing and monthly budgets should coexist, got %d rows", count)
	}

	standing, err := s.Budget(u.ID, food.ID, nil)
	if err != nil || standing.Limit != 500 {
		t.Fatalf("standing lookup: limit=%v err=%v", standing, err)
	}
	monthly, err := s.Budget(u.ID, food.ID, &month)
	if err != nil || monthly.Limit != 300 {
		t.Fatalf("monthly lookup: %+v err=%v", monthly, err)
	}

	// no fallback in either direction
	other := "2024-07"
	if _, err := s.Budget(u.ID, food.ID, &other); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unset month, got %v", err)
	}
}

func TestDeleteBudgetExactKey(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	food := mustCreateGlobalCategory(t, s, "Food")
	month := "2024-06"
	if _, err := s.UpsertBudget(u.ID, food.ID, 300, &month); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	removed, err := s.DeleteBudget(u.ID, food.ID, nil)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed {
		t.Fatal("deleting the standing key should not remove the monthly row")
	}
	removed, err = s.DeleteBudget(u.ID, food.ID, &month)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("expected the monthly row to be removed")
	}
	removed, _ = s.DeleteBudget(u.ID, food.ID, &month)
	if removed {
		t.Fatal("second delete should report no row removed")
	}
}

func TestBudgetsByUserListsAllKeys(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	other := mustCreateUser(t, s, "b@example.com")
	food := mustCreateGlobalCategory(t, s, "Food")
	transport := mustCreateGlobalCategory(t, s, "Transport")
	month := "2024-06"

	s.UpsertBudget(u.ID, food.ID, 300, nil)
	s.UpsertBudget(u.ID, food.ID, 200, &month)
	s.UpsertBudget(u.ID, transport.ID, 100, nil)
	s.UpsertBudget(other.ID, food.ID, 999, nil)

	budgets, err := s.BudgetsByUser(u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 3 {
		t.Fatalf("expected the user's 3 budgets, got %d", len(budgets))
	}
	for _, b := range budgets {
		if b.UserID != u.ID {
			t.Fatalf("foreign budget leaked into listing: %+v", b)
		}
	}
}

func TestUpsertBudgetInvisibleCategory(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	other := mustCreateUser(t, s, "b@example.com")
	private, err := s.CreateCategory(other.ID, "Secret")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := s.UpsertBudget(u.ID, private.ID, 100, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound budgeting someone else's category, got %v", err)
	}
}
