// Package models defines the core domain models for TripLedger.
//
//   - Expense: one logged cost event with its per-member shares
//   - Trip: the group of members sharing expenses, with roles
//   - User: a registered account (the ledger only uses its ID)
//
// # Design Principles
//
// 1. **Owned value collections**: an Expense owns its Participant shares
// as a flat slice. Shares have no independent lifecycle, which keeps the
// "shares sum to the total" invariant easy to state and check.
//
// 2. **Avoid circular references**: relationships use ID strings, never
// pointers between aggregates.
//
// 3. **No derived state**: balances and settlement plans are computed
// fresh by the calculator package and never stored on these models.
package models
