package models

// Category classifies an expense for the per-category breakdown.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryAccommodation  Category = "accommodation"
	CategoryActivities     Category = "activities"
	CategoryShopping       Category = "shopping"
	CategoryOther          Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransportation, CategoryAccommodation,
		CategoryActivities, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// SplitPolicy records how an expense's participant shares were derived.
// It is stored for display; the share amounts themselves are the source
// of truth and are what gets validated.
type SplitPolicy string

const (
	SplitEqual      SplitPolicy = "equal"
	SplitCustom     SplitPolicy = "custom"
	SplitIndividual SplitPolicy = "individual"
)

// Valid reports whether p is one of the known split policies.
func (p SplitPolicy) Valid() bool {
	switch p {
	case SplitEqual, SplitCustom, SplitIndividual:
		return true
	}
	return false
}

// ExpenseStatus is the lifecycle state of an expense.
// Settled is terminal; disputed expenses can still be edited or moved
// back to pending.
type ExpenseStatus string

const (
	StatusPending  ExpenseStatus = "pending"
	StatusSettled  ExpenseStatus = "settled"
	StatusDisputed ExpenseStatus = "disputed"
)

// Valid reports whether s is one of the known statuses.
func (s ExpenseStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSettled, StatusDisputed:
		return true
	}
	return false
}

// Participant is one member's share of an expense.
type Participant struct {
	// UserID identifies the member assigned this share.
	UserID string

	// Share is the portion of the expense amount this member owes.
	Share float64

	// Settled is true once this member's share has been marked paid.
	Settled bool
}

// Expense represents one logged cost event and its participant shares.
// The shares are an owned value collection: they have no lifecycle of
// their own and must sum to Amount within ShareTolerance.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to. Immutable after creation.
	TripID string

	// PayerID is the member who fronted the money.
	PayerID string

	// Description is free text, 1-200 characters.
	Description string

	// Amount is the total expense amount, minimum 0.01.
	Amount float64

	// Currency is a 3-letter code. Informational only: no conversion is
	// performed, and a summary over mixed currencies reports the last
	// one seen.
	Currency string

	// Category classifies the expense.
	Category Category

	// SplitPolicy records how Participants was derived.
	SplitPolicy SplitPolicy

	// Participants holds the per-member shares. Never empty.
	Participants []Participant

	// Status is the lifecycle state.
	Status ExpenseStatus

	// CreatedAt and UpdatedAt are Unix timestamps maintained by the store.
	CreatedAt int64
	UpdatedAt int64
}

// IsParticipant reports whether the user is assigned a share of this expense.
func (e *Expense) IsParticipant(userID string) bool {
	for _, p := range e.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// UserShare returns the user's share of this expense, or 0 if the user
// is not a participant.
func (e *Expense) UserShare(userID string) float64 {
	for _, p := range e.Participants {
		if p.UserID == userID {
			return p.Share
		}
	}
	return 0
}

// ParticipantCount returns the number of members splitting this expense.
func (e *Expense) ParticipantCount() int {
	return len(e.Participants)
}

// AverageShare returns the mean share per participant, or 0 for an
// expense with no participants.
func (e *Expense) AverageShare() float64 {
	if len(e.Participants) == 0 {
		return 0
	}
	return e.Amount / float64(len(e.Participants))
}

// Settle marks the expense settled and every participant share paid.
// It is a pure state transform; persistence is the caller's concern.
func (e *Expense) Settle() {
	e.Status = StatusSettled
	for i := range e.Participants {
		e.Participants[i].Settled = true
	}
}
