package calculator

import (
	"errors"
	"fmt"
	"math"

	"tripledger/internal/models"
)

// ShareTolerance is the absolute threshold under which floating-point
// residue is treated as zero. Equal splits that don't divide evenly
// (e.g. 100/3) leave residuals well below this.
const ShareTolerance = 0.01

// MaxDescriptionLen caps expense descriptions.
const MaxDescriptionLen = 200

// Validation failures. Each is wrapped with field-level detail so the
// caller can render an actionable message; match with errors.Is.
var (
	ErrEmptyParticipants  = errors.New("expense must have at least one participant")
	ErrShareMismatch      = errors.New("participant shares must equal the total amount")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidCategory    = errors.New("unknown category")
	ErrInvalidSplitPolicy = errors.New("unknown split policy")
	ErrInvalidDescription = errors.New("description must be between 1 and 200 characters")
)

// IsValidationError reports whether err is one of the expense validation
// failures above. These are always rejected before any persistence side
// effect, so they are safe to surface to the caller verbatim.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrEmptyParticipants, ErrShareMismatch, ErrInvalidAmount,
		ErrInvalidCategory, ErrInvalidSplitPolicy, ErrInvalidDescription,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Validate checks the expense invariants. It runs before persisting any
// create, and before any update that touches the amount or the shares.
// Violations are hard rejections: the expense is never silently corrected.
func Validate(e *models.Expense) error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidAmount, e.Amount)
	}
	if len(e.Description) == 0 || len(e.Description) > MaxDescriptionLen {
		return fmt.Errorf("%w: got %d characters", ErrInvalidDescription, len(e.Description))
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	if !e.SplitPolicy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSplitPolicy, e.SplitPolicy)
	}
	if len(e.Participants) == 0 {
		return ErrEmptyParticipants
	}

	var sum float64
	for _, p := range e.Participants {
		sum += p.Share
	}
	if diff := math.Abs(sum - e.Amount); diff > ShareTolerance {
		return fmt.Errorf("%w: shares sum to %.2f but total is %.2f (off by %.2f)",
			ErrShareMismatch, sum, e.Amount, diff)
	}

	return nil
}
