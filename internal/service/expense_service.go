package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tripledger/internal/calculator"
	"tripledger/internal/middleware"
	"tripledger/internal/models"
	"tripledger/internal/storage"
)

// ExpenseService implements the expense ledger operations: create,
// read, update, delete, settle, and the trip summary. Every operation
// runs behind the trip membership gate.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ShareInput is one caller-supplied participant share for the custom and
// individual split policies.
type ShareInput struct {
	UserID string
	Share  float64
}

// CreateExpenseInput carries everything needed to build a new expense.
// For the equal policy ParticipantIDs drives the split; for custom and
// individual the Shares are taken as-is and validated against Amount.
type CreateExpenseInput struct {
	TripID         string
	PayerID        string // defaults to the authenticated user
	Description    string
	Amount         float64
	Currency       string
	Category       models.Category
	SplitPolicy    models.SplitPolicy
	ParticipantIDs []string
	Shares         []ShareInput
}

// UpdateExpenseInput updates an existing expense. Nil fields are left
// unchanged. Setting Shares re-derives the participant list and re-runs
// validation against the (possibly updated) amount.
type UpdateExpenseInput struct {
	Description *string
	Amount      *float64
	Currency    *string
	Category    *models.Category
	Status      *models.ExpenseStatus
	Shares      []ShareInput
}

// Pagination describes one page of a listing.
type Pagination struct {
	Current int
	Pages   int
	Total   int
}

// Create validates and persists a new expense. The caller must be a
// member of the trip.
func (s *ExpenseService) Create(ctx context.Context, input CreateExpenseInput) (*models.Expense, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	trip, err := s.store.GetTrip(ctx, input.TripID)
	if err != nil {
		slog.Warn("CreateExpense: trip lookup failed", "trip_id", input.TripID, "error", err)
		return nil, err
	}
	if !trip.IsMember(userID) {
		return nil, fmt.Errorf("%w: you must be a member of this trip to add expenses", ErrNotAuthorized)
	}

	expense := &models.Expense{
		TripID:      input.TripID,
		PayerID:     input.PayerID,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Currency:    normalizeCurrency(input.Currency),
		Category:    input.Category,
		SplitPolicy: input.SplitPolicy,
		Status:      models.StatusPending,
	}
	if expense.PayerID == "" {
		expense.PayerID = userID
	}
	if expense.Category == "" {
		expense.Category = models.CategoryOther
	}
	if expense.SplitPolicy == "" {
		expense.SplitPolicy = models.SplitEqual
	}

	participants, err := calculator.BuildShares(expense.Amount, expense.SplitPolicy, input.ParticipantIDs, shareInputs(input.Shares))
	if err != nil {
		slog.Warn("CreateExpense: building shares failed", "trip_id", input.TripID, "error", err)
		return nil, err
	}
	expense.Participants = participants

	if err := calculator.Validate(expense); err != nil {
		slog.Warn("CreateExpense rejected", "trip_id", input.TripID, "error", err)
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "trip_id", input.TripID, "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"trip_id", expense.TripID,
		"amount", expense.Amount,
		"participants_count", len(expense.Participants),
	)
	return expense, nil
}

// Get retrieves an expense. The caller must be a member of its trip.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		slog.Warn("GetExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	if err := s.requireMember(ctx, expense.TripID, userID); err != nil {
		return nil, err
	}

	return expense, nil
}

// List returns a page of a trip's expenses, newest first, optionally
// filtered by category. The caller must be a trip member.
func (s *ExpenseService) List(ctx context.Context, tripID string, filter storage.ExpenseFilter) ([]*models.Expense, Pagination, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, Pagination{}, ErrUnauthenticated
	}

	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, Pagination{}, err
	}

	if filter.Category != "" && !filter.Category.Valid() {
		return nil, Pagination{}, fmt.Errorf("%w: %q", calculator.ErrInvalidCategory, filter.Category)
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	expenses, total, err := s.store.ListExpensesByTrip(ctx, tripID, filter)
	if err != nil {
		slog.Error("ListExpenses failed", "trip_id", tripID, "error", err)
		return nil, Pagination{}, err
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	return expenses, Pagination{Current: filter.Page, Pages: pages, Total: total}, nil
}

// Update edits an expense. Only the payer or a trip admin may update,
// and settled expenses are immutable. Any change to the amount or the
// shares is re-validated before persisting; a failed validation leaves
// the stored record untouched.
func (s *ExpenseService) Update(ctx context.Context, expenseID string, input UpdateExpenseInput) (*models.Expense, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		slog.Warn("UpdateExpense: lookup failed", "expense_id", expenseID, "error", err)
		return nil, err
	}
	if err := s.requireSelfOrAdmin(ctx, expense, userID); err != nil {
		return nil, err
	}
	if expense.Status == models.StatusSettled {
		return nil, ErrExpenseSettled
	}

	if input.Description != nil {
		expense.Description = strings.TrimSpace(*input.Description)
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Currency != nil {
		expense.Currency = normalizeCurrency(*input.Currency)
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Status != nil {
		// Settled is only reachable through the settle action, which
		// also flips the per-participant flags.
		if !input.Status.Valid() || *input.Status == models.StatusSettled {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *input.Status)
		}
		expense.Status = *input.Status
	}
	if input.Shares != nil {
		expense.SplitPolicy = models.SplitCustom
		expense.Participants = shareInputs(input.Shares)
	}

	if err := calculator.Validate(expense); err != nil {
		slog.Warn("UpdateExpense rejected", "expense_id", expenseID, "error", err)
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	slog.Info("Expense updated", "expense_id", expense.ID, "trip_id", expense.TripID)
	return expense, nil
}

// Delete removes an expense. Only the payer or a trip admin may delete.
// Deletion is permitted from any status.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return ErrUnauthenticated
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		slog.Warn("DeleteExpense: lookup failed", "expense_id", expenseID, "error", err)
		return err
	}
	if err := s.requireSelfOrAdmin(ctx, expense, userID); err != nil {
		return err
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "trip_id", expense.TripID)
	return nil
}

// Settle marks an expense settled along with every participant share.
// Any trip member may settle.
func (s *ExpenseService) Settle(ctx context.Context, expenseID string) (*models.Expense, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		slog.Warn("SettleExpense: lookup failed", "expense_id", expenseID, "error", err)
		return nil, err
	}
	if err := s.requireMember(ctx, expense.TripID, userID); err != nil {
		return nil, err
	}

	expense.Settle()
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("SettleExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	slog.Info("Expense settled", "expense_id", expense.ID, "trip_id", expense.TripID)
	return expense, nil
}

// Summary rebuilds the trip's balance sheet and settlement plan from all
// of its expenses. The caller must be a trip member. The computation is
// a pure fold over a single snapshot of the stored expenses; nothing is
// cached between requests.
func (s *ExpenseService) Summary(ctx context.Context, tripID string) (calculator.TripSummary, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return calculator.TripSummary{}, ErrUnauthenticated
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		slog.Warn("Summary: trip lookup failed", "trip_id", tripID, "error", err)
		return calculator.TripSummary{}, err
	}
	if !trip.IsMember(userID) {
		return calculator.TripSummary{}, fmt.Errorf("%w: you must be a member of this trip", ErrNotAuthorized)
	}

	expenses, _, err := s.store.ListExpensesByTrip(ctx, tripID, storage.ExpenseFilter{})
	if err != nil {
		slog.Error("Summary: listing expenses failed", "trip_id", tripID, "error", err)
		return calculator.TripSummary{}, err
	}

	summary := calculator.Summarize(expenses, trip.MemberIDs())

	slog.Info("Summary computed",
		"trip_id", tripID,
		"expenses_count", summary.TotalExpenses,
		"members_count", len(summary.MemberBalances),
		"transfers_count", len(summary.Settlements),
	)
	return summary, nil
}

// requireMember fails with ErrNotAuthorized unless the user is on the trip.
func (s *ExpenseService) requireMember(ctx context.Context, tripID, userID string) error {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if !trip.IsMember(userID) {
		return fmt.Errorf("%w: you must be a member of this trip", ErrNotAuthorized)
	}
	return nil
}

// requireSelfOrAdmin fails unless the user is the expense's payer or a
// trip admin.
func (s *ExpenseService) requireSelfOrAdmin(ctx context.Context, expense *models.Expense, userID string) error {
	if expense.PayerID == userID {
		return nil
	}
	trip, err := s.store.GetTrip(ctx, expense.TripID)
	if err != nil {
		return err
	}
	if !trip.IsAdmin(userID) {
		return fmt.Errorf("%w: only the payer or a trip admin may modify this expense", ErrNotAuthorized)
	}
	return nil
}

func shareInputs(shares []ShareInput) []models.Participant {
	participants := make([]models.Participant, len(shares))
	for i, s := range shares {
		participants[i] = models.Participant{UserID: s.UserID, Share: s.Share}
	}
	return participants
}

func normalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return "USD"
	}
	return currency
}
