// Package calculator implements the expense ledger math: building
// participant shares from a split policy, validating an expense against
// its shares, folding a trip's expenses into per-member balances, and
// producing a settlement plan that zeroes those balances.
//
// Everything in this package is a pure function over its inputs. No I/O,
// no clocks, no shared state.
package calculator

import (
	"fmt"

	"tripledger/internal/models"
)

// BuildShares produces the participant share list for an expense.
//
// For the equal policy, every member in memberIDs gets total/len(memberIDs)
// using real division. The shares may not sum exactly to total due to
// floating-point representation; the residual is accepted as-is (it stays
// within the validator's tolerance) rather than redistributed to one member.
//
// For custom and individual policies the caller-supplied shares are passed
// through untouched; validation is where they get checked.
func BuildShares(total float64, policy models.SplitPolicy, memberIDs []string, shares []models.Participant) ([]models.Participant, error) {
	switch policy {
	case models.SplitEqual:
		if len(memberIDs) == 0 {
			return nil, fmt.Errorf("equal split requires at least one member")
		}
		perPerson := total / float64(len(memberIDs))
		participants := make([]models.Participant, len(memberIDs))
		for i, id := range memberIDs {
			participants[i] = models.Participant{UserID: id, Share: perPerson}
		}
		return participants, nil

	case models.SplitCustom, models.SplitIndividual:
		participants := make([]models.Participant, len(shares))
		for i, s := range shares {
			participants[i] = models.Participant{UserID: s.UserID, Share: s.Share}
		}
		return participants, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSplitPolicy, policy)
	}
}
