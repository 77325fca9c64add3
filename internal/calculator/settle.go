package calculator

import (
	"math"
	"sort"
)

// Transfer is one suggested payment in a settlement plan. The debtor
// pays the creditor; Amount is always greater than ShareTolerance.
type Transfer struct {
	FromUserID string
	ToUserID   string
	Amount     float64
}

// Plan produces a list of transfers that brings every balance within
// ShareTolerance of zero.
//
// The matching is a greedy largest-first walk: creditors sorted by
// balance descending, debtors ascending (most negative first), both
// sorts stable so ties keep roster order and identical inputs always
// yield identical plans. Two cursors advance as each side's remaining
// balance enters the dead zone. The result is deterministic and sound
// but not guaranteed transaction-minimal.
func Plan(balances []MemberBalance) []Transfer {
	var creditors, debtors []MemberBalance
	for _, b := range balances {
		switch {
		case b.Balance > ShareTolerance:
			creditors = append(creditors, b)
		case b.Balance < -ShareTolerance:
			debtors = append(debtors, b)
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Balance > creditors[j].Balance
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Balance < debtors[j].Balance
	})

	var transfers []Transfer
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		creditor := &creditors[ci]
		debtor := &debtors[di]

		amount := math.Min(creditor.Balance, -debtor.Balance)
		if amount > ShareTolerance {
			transfers = append(transfers, Transfer{
				FromUserID: debtor.UserID,
				ToUserID:   creditor.UserID,
				Amount:     round2(amount),
			})
			creditor.Balance -= amount
			debtor.Balance += amount
		}

		if creditor.Balance <= ShareTolerance {
			ci++
		}
		if debtor.Balance >= -ShareTolerance {
			di++
		}
	}

	return transfers
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
