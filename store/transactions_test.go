package store

import (
	"errors"
	"testing"
	"time"

	"finapi/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRecordNormalizesValue(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	a := mustCreateAccount(t, s, u.ID, "checking")

	tx, err := s.RecordTransaction(u.ID, a.ID, TransactionInput{
		Description: "groceries",
		Value:       -50.0,
		Type:        models.TransactionExpense,
		Date:        day("2024-06-10"),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if tx.Value != 50.0 {
		t.Fatalf("expected stored value 50, got %v", tx.Value)
	}

	upd, err := s.UpdateTransaction(u.ID, tx.ID, TransactionUpdate{Value: f64(-75.0)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.Value != 75.0 {
		t.Fatalf("expected re-normalized value 75, got %v", upd.Value)
	}
}

func TestRecordUnownedAccountIsNotFound(t *testing.T) {
	s := newTestStore(t)
	owner := mustCreateUser(t, s, "owner@example.com")
	other := mustCreateUser(t, s, "other@example.com")
	a := mustCreateAccount(t, s, owner.ID, "checking")

	_, err := s.RecordTransaction(other.ID, a.ID, TransactionInput{
		Description: "sneaky", Value: 1, Type: models.TransactionExpense, Date: day("2024-06-10"),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := s.ListTransactions(other.ID, a.ID, TransactionFilters{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound listing someone else's account, got %v", err)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	a := mustCreateAccount(t, s, u.ID, "checking")
	tx, err := s.RecordTransaction(u.ID, a.ID, TransactionInput{
		Description: "rent", Value: 1200, Type: models.TransactionExpense, Date: day("2024-06-01"),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	upd, err := s.UpdateTransaction(u.ID, tx.ID, TransactionUpdate{Description: str("june rent")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.Description != "june rent" {
		t.Fatalf("description not updated: %q", upd.Description)
	}
	if upd.Value != 1200 || upd.Type != models.TransactionExpense || !upd.Date.Equal(day("2024-06-01")) {
		t.Fatalf("untouched fields changed: %+v", upd)
	}
}

func TestMutationOwnership(t *testing.T) {
	s := newTestStore(t)
	owner := mustCreateUser(t, s, "owner@example.com")
	other := mustCreateUser(t, s, "other@example.com")
	a := mustCreateAccount(t, s, owner.ID, "checking")
	tx, err := s.RecordTransaction(owner.ID, a.ID, TransactionInput{
		Description: "x", Value: 10, Type: models.TransactionIncome, Date: day("2024-06-10"),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	// visible transaction behind someone else's account: Forbidden on write
	if _, err := s.UpdateTransaction(other.ID, tx.ID, TransactionUpdate{Value: f64(1)}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on update, got %v", err)
	}
	if _, err := s.SetTransactionPaid(other.ID, tx.ID, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on paid toggle, got %v", err)
	}
	if err := s.DeleteTransaction(other.ID, tx.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}

	// missing transaction: NotFound, also after a successful delete
	if err := s.DeleteTransaction(owner.ID, tx.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := s.DeleteTransaction(owner.ID, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSetPaidTouchesOnlyPaidFlag(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	a := mustCreateAccount(t, s, u.ID, "checking")
	tx, err := s.RecordTransaction(u.ID, a.ID, TransactionInput{
		Description: "bill", Value: 80, Type: models.TransactionExpense, Date: day("2024-06-05"),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	got, err := s.SetTransactionPaid(u.ID, tx.ID, true)
	if err != nil {
		t.Fatalf("set paid: %v", err)
	}
	if !got.Paid || got.Value != 80 || got.Description != "bill" {
		t.Fatalf("unexpected row after paid toggle: %+v", got)
	}
}

func TestListFiltersSubstringCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	a := mustCreateAccount(t, s, u.ID, "checking")
	food := mustCreateGlobalCategory(t, s, "Food")
	transport := mustCreateGlobalCategory(t, s, "Transport")

	mustRecord(t, s, u.ID, a.ID, "Lunch at cafe", 25, "2024-06-01", &food.ID)
	mustRecord(t, s, u.ID, a.ID, "Bus ticket", 5, "2024-06-02", &transport.ID)
	mustRecord(t, s, u.ID, a.ID, "Dinner out", 60, "2024-06-03", &food.ID)

	items, total, err := s.ListTransactions(u.ID, a.ID, TransactionFilters{Category: "foo"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("category filter: expected 2, got total=%d len=%d", total, len(items))
	}

	items, total, err = s.ListTransactions(u.ID, a.ID, TransactionFilters{Search: "LUNCH"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || items[0].Description != "Lunch at cafe" {
		t.Fatalf("search filter: got total=%d items=%+v", total, items)
	}

	// AND-combined
	_, total, err = s.ListTransactions(u.ID, a.ID, TransactionFilters{Category: "food", Search: "dinner"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("combined filter: expected 1, got %d", total)
	}
}

func TestListDateRangeInclusiveAndLenient(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	a := mustCreateAccount(t, s, u.ID, "checking")
	mustRecord(t, s, u.ID, a.ID, "before", 1, "2024-05-31", nil)
	mustRecord(t, s, u.ID, a.ID, "start", 1, "2024-06-01", nil)
	mustRecord(t, s, u.ID, a.ID, "end", 1, "2024-06-30", nil)
	mustRecord(t, s, u.ID, a.ID, "after", 1, "2024-07-01", nil)

	_, total, err := s.ListTransactions(u.ID, a.ID, TransactionFilters{DateFrom: "2024-06-01", DateTo: "2024-06-30"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("inclusive range: expected 2, got %d", total)
	}

	// malformed bounds are treated as absent, not rejected
	_, total, err = s.ListTransactions(u.ID, a.ID, TransactionFilters{DateFrom: "junk", DateTo: "also-junk"})
	if err != nil {
		t.Fatalf("list with malformed bounds: %v", err)
	}
	if total != 4 {
		t.Fatalf("malformed bounds: expected unfiltered 4, got %d", total)
	}

	_, total, err = s.ListTransactions(u.ID, a.ID, TransactionFilters{DateFrom: "not-a-date", DateTo: "2024-06-30"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("one malformed bound: expected 3, got %d", total)
	}
}

func TestListPaginationAndOrder(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "a@example.com")
	a := mustCreateAccount(t, s, u.ID, "checking")
	for i, d := range []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04", "2024-06-05"} {
		mustRecord(t, s, u.ID, a.ID, "tx", float64(i+1), d, nil)
	}

	items, total, err := s.ListTransactions(u.ID, a.ID, TransactionFilters{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("total should reflect the filtered set before pagination, got %d", total)
	}
	if len(items) != 2 {
		t.Fatalf("expected page of 2, got %d", len(items))
	}
	if !items[0].Date.After(items[1].Date) {
		t.Fatalf("expected date-descending order: %v then %v", items[0].Date, items[1].Date)
	}

	items, _, err = s.ListTransactions(u.ID, a.ID, TransactionFilters{Page: 3, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected last page of 1, got %d", len(items))
	}
}

func mustRecord(t *testing.T, s *Store, userID, accountID uint, desc string, value float64, date string, categoryID *uint) *models.Transaction {
	t.Helper()
	tx, err := s.RecordTransaction(userID, accountID, TransactionInput{
		Description: desc,
		Value:       value,
		Type:        models.TransactionExpense,
		Date:        day(date),
		CategoryID:  categoryID,
	})
	if err != nil {
		t.Fatalf("record %s: %v", desc, err)
	}
	return tx
}

func str(s string) *string   { return &s }
func f64(f float64) *float64 { return &f }
