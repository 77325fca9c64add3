package calculator

import (
	"math"
	"testing"

	"tripledger/internal/models"
)

func expense(payer string, amount float64, shares map[string]float64) *models.Expense {
	e := &models.Expense{
		PayerID:     payer,
		Amount:      amount,
		Currency:    "USD",
		Category:    models.CategoryFood,
		SplitPolicy: models.SplitCustom,
		Status:      models.StatusPending,
	}
	for _, id := range []string{"alice", "bob", "charlie", "dave"} {
		if share, ok := shares[id]; ok {
			e.Participants = append(e.Participants, models.Participant{UserID: id, Share: share})
		}
	}
	return e
}

func balanceOf(t *testing.T, summary TripSummary, userID string) MemberBalance {
	t.Helper()
	for _, b := range summary.MemberBalances {
		if b.UserID == userID {
			return b
		}
	}
	t.Fatalf("no balance for %s", userID)
	return MemberBalance{}
}

func TestSummarizeThreeMemberTrip(t *testing.T) {
	roster := []string{"alice", "bob", "charlie"}
	expenses := []*models.Expense{
		expense("alice", 120.0, map[string]float64{"alice": 40, "bob": 40, "charlie": 40}),
		expense("bob", 60.0, map[string]float64{"alice": 20, "bob": 20, "charlie": 20}),
	}

	summary := Summarize(expenses, roster)

	if summary.TotalAmount != 180.0 {
		t.Errorf("TotalAmount = %v, want 180", summary.TotalAmount)
	}
	if summary.TotalExpenses != 2 {
		t.Errorf("TotalExpenses = %v, want 2", summary.TotalExpenses)
	}
	if summary.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", summary.Currency)
	}

	wantBalances := map[string]float64{"alice": 60.0, "bob": 0.0, "charlie": -60.0}
	for userID, want := range wantBalances {
		got := balanceOf(t, summary, userID)
		if math.Abs(got.Balance-want) > 0.01 {
			t.Errorf("%s balance = %v, want %v", userID, got.Balance, want)
		}
	}

	if len(summary.Settlements) != 1 {
		t.Fatalf("expected exactly 1 settlement, got %d: %+v", len(summary.Settlements), summary.Settlements)
	}
	s := summary.Settlements[0]
	if s.FromUserID != "charlie" || s.ToUserID != "alice" {
		t.Errorf("settlement %s -> %s, want charlie -> alice", s.FromUserID, s.ToUserID)
	}
	if math.Abs(s.Amount-60.0) > 0.01 {
		t.Errorf("settlement amount = %v, want 60.00", s.Amount)
	}
}

func TestSummarizeRosterZeroInit(t *testing.T) {
	// Members with no expense activity still get a zero balance row.
	summary := Summarize(nil, []string{"alice", "bob"})

	if summary.TotalAmount != 0 || summary.TotalExpenses != 0 {
		t.Errorf("empty trip totals = %v/%v, want 0/0", summary.TotalAmount, summary.TotalExpenses)
	}
	if summary.Currency != "USD" {
		t.Errorf("Currency = %q, want default USD", summary.Currency)
	}
	if len(summary.MemberBalances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(summary.MemberBalances))
	}
	for _, b := range summary.MemberBalances {
		if b.TotalPaid != 0 || b.TotalOwed != 0 || b.Balance != 0 {
			t.Errorf("%s should be all zero: %+v", b.UserID, b)
		}
	}
	if len(summary.Settlements) != 0 {
		t.Errorf("expected no settlements, got %+v", summary.Settlements)
	}
}

func TestSummarizeDepartedMemberStillCounted(t *testing.T) {
	// dave is on an expense but not on the roster anymore; his balance
	// still appears so the books stay conserved.
	roster := []string{"alice", "bob"}
	expenses := []*models.Expense{
		expense("alice", 30.0, map[string]float64{"alice": 10, "bob": 10, "dave": 10}),
	}

	summary := Summarize(expenses, roster)

	if len(summary.MemberBalances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(summary.MemberBalances))
	}
	dave := balanceOf(t, summary, "dave")
	if math.Abs(dave.Balance-(-10.0)) > 0.01 {
		t.Errorf("dave balance = %v, want -10", dave.Balance)
	}
	// Roster members come first, extras in first-appearance order.
	if summary.MemberBalances[0].UserID != "alice" || summary.MemberBalances[1].UserID != "bob" {
		t.Errorf("roster members should lead: %+v", summary.MemberBalances)
	}
}

func TestSummarizeBalanceConservation(t *testing.T) {
	roster := []string{"alice", "bob", "charlie", "dave"}
	expenses := []*models.Expense{
		expense("alice", 100.0, map[string]float64{"alice": 25, "bob": 25, "charlie": 25, "dave": 25}),
		expense("bob", 33.33, map[string]float64{"bob": 11.11, "charlie": 11.11, "dave": 11.11}),
		expense("charlie", 7.5, map[string]float64{"alice": 3.75, "charlie": 3.75}),
	}

	summary := Summarize(expenses, roster)

	var sum float64
	for _, b := range summary.MemberBalances {
		sum += b.Balance
	}
	if math.Abs(sum) > 0.01 {
		t.Errorf("balances sum to %v, want ~0", sum)
	}
}

func TestSummarizePayerCreditedEvenWhenNotParticipating(t *testing.T) {
	// alice fronts the bill but owes no share of it.
	roster := []string{"alice", "bob"}
	expenses := []*models.Expense{
		expense("alice", 50.0, map[string]float64{"bob": 50}),
	}

	summary := Summarize(expenses, roster)

	alice := balanceOf(t, summary, "alice")
	if alice.TotalPaid != 50.0 || alice.TotalOwed != 0 {
		t.Errorf("alice paid/owed = %v/%v, want 50/0", alice.TotalPaid, alice.TotalOwed)
	}
	if math.Abs(alice.Balance-50.0) > 0.01 {
		t.Errorf("alice balance = %v, want 50", alice.Balance)
	}
}

func TestSummarizeCategoryBreakdown(t *testing.T) {
	roster := []string{"alice", "bob"}
	food := expense("alice", 40.0, map[string]float64{"alice": 20, "bob": 20})
	lodging := expense("bob", 100.0, map[string]float64{"alice": 50, "bob": 50})
	lodging.Category = models.CategoryAccommodation
	moreFood := expense("bob", 10.0, map[string]float64{"alice": 5, "bob": 5})

	summary := Summarize([]*models.Expense{food, lodging, moreFood}, roster)

	if got := summary.CategoryBreakdown[models.CategoryFood]; got != 50.0 {
		t.Errorf("food total = %v, want 50", got)
	}
	if got := summary.CategoryBreakdown[models.CategoryAccommodation]; got != 100.0 {
		t.Errorf("accommodation total = %v, want 100", got)
	}
	if len(summary.CategoryBreakdown) != 2 {
		t.Errorf("breakdown should only hold seen categories: %+v", summary.CategoryBreakdown)
	}
}

func TestSummarizeCurrencyLastSeenWins(t *testing.T) {
	roster := []string{"alice", "bob"}
	first := expense("alice", 10.0, map[string]float64{"alice": 5, "bob": 5})
	second := expense("bob", 10.0, map[string]float64{"alice": 5, "bob": 5})
	second.Currency = "EUR"

	summary := Summarize([]*models.Expense{first, second}, roster)

	if summary.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR (last seen)", summary.Currency)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	roster := []string{"alice", "bob", "charlie"}
	expenses := []*models.Expense{
		expense("alice", 90.0, map[string]float64{"alice": 30, "bob": 30, "charlie": 30}),
		expense("bob", 45.0, map[string]float64{"alice": 15, "bob": 15, "charlie": 15}),
	}

	first := Summarize(expenses, roster)
	for i := 0; i < 10; i++ {
		again := Summarize(expenses, roster)
		for j := range first.MemberBalances {
			if again.MemberBalances[j] != first.MemberBalances[j] {
				t.Fatalf("run %d: balance order changed: %+v vs %+v", i, again.MemberBalances, first.MemberBalances)
			}
		}
		for j := range first.Settlements {
			if again.Settlements[j] != first.Settlements[j] {
				t.Fatalf("run %d: settlements changed: %+v vs %+v", i, again.Settlements, first.Settlements)
			}
		}
	}
}
