// Package service implements the application services around the expense
// ledger: authentication, trips, and expense CRUD plus summaries. Services
// read the authenticated user ID from the request context, enforce trip
// membership, and delegate all ledger math to the calculator package.
package service

import "errors"

var (
	// ErrUnauthenticated is returned when no authenticated user ID is
	// present in the context.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotAuthorized is returned when the authenticated user fails a
	// membership or role check. Handlers surface it as 403 unchanged.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrExpenseSettled is returned when editing an expense that has
	// already been settled. Settled is a terminal state.
	ErrExpenseSettled = errors.New("expense is settled and can no longer be edited")

	// ErrInvalidStatus is returned for unknown status values, or for an
	// attempt to set settled directly instead of using the settle action.
	ErrInvalidStatus = errors.New("invalid status")
)
