package calculator

import "tripledger/internal/models"

// MemberBalance is one member's net position across a trip's expenses.
// Positive Balance means the member is owed money, negative means they
// owe money.
type MemberBalance struct {
	UserID    string
	TotalPaid float64 // sum of expense amounts this member fronted
	TotalOwed float64 // sum of this member's shares across all expenses
	Balance   float64 // TotalPaid - TotalOwed
}

// TripSummary is the consolidated balance sheet for one trip. It is
// rebuilt from scratch on every request; nothing here is persisted.
type TripSummary struct {
	TotalAmount       float64
	TotalExpenses     int
	Currency          string
	MemberBalances    []MemberBalance
	CategoryBreakdown map[models.Category]float64
	Settlements       []Transfer
}

// Summarize folds a trip's expenses into per-member balances, a category
// breakdown, and a settlement plan.
//
// Every roster member gets a zero-initialized balance so members with no
// expenses still appear. Member IDs found only in stored participant lists
// (someone who has since left the trip) are appended after the roster and
// counted all the same.
//
// For each expense the payer's TotalPaid grows by the full amount and each
// participant's TotalOwed grows by their share. A payer who is also a
// participant is counted on both sides; the double count is intentional
// and nets out in Balance.
//
// Arithmetic is plain float64 at full precision; rounding to two decimals
// happens only on the emitted transfer amounts.
func Summarize(expenses []*models.Expense, roster []string) TripSummary {
	summary := TripSummary{
		TotalExpenses:     len(expenses),
		Currency:          "USD",
		CategoryBreakdown: make(map[models.Category]float64),
	}

	balances := make(map[string]*MemberBalance, len(roster))
	order := make([]string, 0, len(roster))
	ensure := func(userID string) *MemberBalance {
		if b, ok := balances[userID]; ok {
			return b
		}
		b := &MemberBalance{UserID: userID}
		balances[userID] = b
		order = append(order, userID)
		return b
	}

	for _, id := range roster {
		ensure(id)
	}

	for _, e := range expenses {
		summary.TotalAmount += e.Amount
		if e.Currency != "" {
			summary.Currency = e.Currency
		}
		summary.CategoryBreakdown[e.Category] += e.Amount

		ensure(e.PayerID).TotalPaid += e.Amount
		for _, p := range e.Participants {
			ensure(p.UserID).TotalOwed += p.Share
		}
	}

	summary.MemberBalances = make([]MemberBalance, len(order))
	for i, id := range order {
		b := balances[id]
		b.Balance = b.TotalPaid - b.TotalOwed
		summary.MemberBalances[i] = *b
	}

	summary.Settlements = Plan(summary.MemberBalances)
	return summary
}
