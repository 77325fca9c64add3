// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"tripledger/internal/models"
)

// ErrNotFound is wrapped by store implementations when a record does not
// exist. Match with errors.Is.
var ErrNotFound = errors.New("not found")

// ExpenseFilter narrows and pages a trip expense listing.
type ExpenseFilter struct {
	// Category limits results to one category when non-empty.
	Category models.Category

	// Page is 1-based. Zero means page 1.
	Page int

	// Limit is the page size. Zero means no paging.
	Limit int
}

// Store defines the persistence interface the services depend on.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// The store provides no cross-record coordination: concurrent updates to
// the same expense resolve last-writer-wins.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email, or (nil, nil) if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID, or (nil, nil) if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateTrip persists a new trip with its member roster.
	// The trip.ID and trip.CreatedAt fields are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip and its roster by ID.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// CreateExpense persists a new expense and its participant shares.
	// The expense.ID and timestamp fields are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including participants.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense replaces an existing expense and its participants.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense and its participants.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpensesByTrip returns a trip's expenses, newest first, after
	// applying the filter. The second return value is the total number of
	// matching expenses before paging.
	ListExpensesByTrip(ctx context.Context, tripID string, filter ExpenseFilter) ([]*models.Expense, int, error)

	// Close releases any resources held by the store.
	Close() error
}
