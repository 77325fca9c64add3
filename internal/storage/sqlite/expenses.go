package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripledger/internal/models"
	"tripledger/internal/storage"
)

// CreateExpense persists a new expense and its participant shares.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID and timestamps if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, payer_id, description, amount, currency, category, split_policy, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, expense.PayerID, expense.Description,
		expense.Amount, expense.Currency, string(expense.Category),
		string(expense.SplitPolicy), string(expense.Status),
		expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertParticipants(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var category, policy, status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, payer_id, description, amount, currency, category, split_policy, status, created_at, updated_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.TripID, &expense.PayerID, &expense.Description,
		&expense.Amount, &expense.Currency, &category, &policy, &status,
		&expense.CreatedAt, &expense.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Category = models.Category(category)
	expense.SplitPolicy = models.SplitPolicy(policy)
	expense.Status = models.ExpenseStatus(status)

	if err := s.loadParticipants(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// UpdateExpense replaces an existing expense and its participants.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET payer_id = ?, description = ?, amount = ?, currency = ?, category = ?, split_policy = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		expense.PayerID, expense.Description, expense.Amount, expense.Currency,
		string(expense.Category), string(expense.SplitPolicy), string(expense.Status),
		expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	// Replace the participant set wholesale; shares are an owned value
	// collection with no lifecycle of their own.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_participants WHERE expense_id = ?", expense.ID,
	); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteExpense removes an expense; participants go with it via cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ListExpensesByTrip returns a trip's expenses, newest first, with the
// filter applied. The second return value is the total matching count
// before paging.
func (s *SQLiteStore) ListExpensesByTrip(ctx context.Context, tripID string, filter storage.ExpenseFilter) ([]*models.Expense, int, error) {
	where := "WHERE trip_id = ?"
	args := []interface{}{tripID}
	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, string(filter.Category))
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM expenses "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	// Secondary sort on id keeps the order stable for equal timestamps.
	query := `SELECT id, trip_id, payer_id, description, amount, currency, category, split_policy, status, created_at, updated_at
		 FROM expenses ` + where + " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, (page-1)*filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var category, policy, status string
		if err := rows.Scan(&expense.ID, &expense.TripID, &expense.PayerID,
			&expense.Description, &expense.Amount, &expense.Currency,
			&category, &policy, &status,
			&expense.CreatedAt, &expense.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Category = models.Category(category)
		expense.SplitPolicy = models.SplitPolicy(policy)
		expense.Status = models.ExpenseStatus(status)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadParticipants(ctx, expense); err != nil {
			return nil, 0, err
		}
	}

	return expenses, total, nil
}

// insertParticipants writes an expense's share rows inside tx.
func insertParticipants(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for _, p := range expense.Participants {
		settled := 0
		if p.Settled {
			settled = 1
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, user_id, share, settled) VALUES (?, ?, ?, ?)",
			expense.ID, p.UserID, p.Share, settled,
		); err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// loadParticipants fills expense.Participants from the share rows.
func (s *SQLiteStore) loadParticipants(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, share, settled FROM expense_participants WHERE expense_id = ? ORDER BY user_id",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	expense.Participants = nil
	for rows.Next() {
		var p models.Participant
		var settled int
		if err := rows.Scan(&p.UserID, &p.Share, &settled); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		p.Settled = settled != 0
		expense.Participants = append(expense.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	return nil
}
