package api

import (
	"tripledger/internal/calculator"
	"tripledger/internal/models"
	"tripledger/internal/service"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createTripRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

type tripJSON struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedBy string           `json:"createdBy"`
	Members   []tripMemberJSON `json:"members"`
	CreatedAt int64            `json:"createdAt"`
}

type tripMemberJSON struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type shareJSON struct {
	UserID  string  `json:"userId"`
	Share   float64 `json:"share"`
	Settled bool    `json:"settled"`
}

type createExpenseRequest struct {
	TripID         string      `json:"tripId"`
	PayerID        string      `json:"payerId"`
	Description    string      `json:"description"`
	Amount         float64     `json:"amount"`
	Currency       string      `json:"currency"`
	Category       string      `json:"category"`
	SplitPolicy    string      `json:"splitPolicy"`
	ParticipantIDs []string    `json:"participantIds"`
	Shares         []shareJSON `json:"shares"`
}

type updateExpenseRequest struct {
	Description *string     `json:"description"`
	Amount      *float64    `json:"amount"`
	Currency    *string     `json:"currency"`
	Category    *string     `json:"category"`
	Status      *string     `json:"status"`
	Shares      []shareJSON `json:"shares"`
}

type expenseJSON struct {
	ID           string      `json:"id"`
	TripID       string      `json:"tripId"`
	PayerID      string      `json:"payerId"`
	Description  string      `json:"description"`
	Amount       float64     `json:"amount"`
	Currency     string      `json:"currency"`
	Category     string      `json:"category"`
	SplitPolicy  string      `json:"splitPolicy"`
	Participants []shareJSON `json:"participants"`
	Status       string      `json:"status"`
	CreatedAt    int64       `json:"createdAt"`
	UpdatedAt    int64       `json:"updatedAt"`
}

type paginationJSON struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

type expenseListResponse struct {
	Expenses   []expenseJSON  `json:"expenses"`
	Pagination paginationJSON `json:"pagination"`
}

type memberBalanceJSON struct {
	UserID    string  `json:"userId"`
	TotalPaid float64 `json:"totalPaid"`
	TotalOwed float64 `json:"totalOwed"`
	Balance   float64 `json:"balance"`
}

type transferJSON struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type summaryJSON struct {
	TotalAmount       float64             `json:"totalAmount"`
	TotalExpenses     int                 `json:"totalExpenses"`
	Currency          string              `json:"currency"`
	MemberBalances    []memberBalanceJSON `json:"memberBalances"`
	CategoryBreakdown map[string]float64  `json:"categoryBreakdown"`
	Settlements       []transferJSON      `json:"settlements"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toTripJSON(t *models.Trip) tripJSON {
	members := make([]tripMemberJSON, len(t.Members))
	for i, m := range t.Members {
		members[i] = tripMemberJSON{UserID: m.UserID, Role: string(m.Role)}
	}
	return tripJSON{
		ID:        t.ID,
		Name:      t.Name,
		CreatedBy: t.CreatedBy,
		Members:   members,
		CreatedAt: t.CreatedAt,
	}
}

func toExpenseJSON(e *models.Expense) expenseJSON {
	participants := make([]shareJSON, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = shareJSON{UserID: p.UserID, Share: p.Share, Settled: p.Settled}
	}
	return expenseJSON{
		ID:           e.ID,
		TripID:       e.TripID,
		PayerID:      e.PayerID,
		Description:  e.Description,
		Amount:       e.Amount,
		Currency:     e.Currency,
		Category:     string(e.Category),
		SplitPolicy:  string(e.SplitPolicy),
		Participants: participants,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toSummaryJSON(s calculator.TripSummary) summaryJSON {
	balances := make([]memberBalanceJSON, len(s.MemberBalances))
	for i, b := range s.MemberBalances {
		balances[i] = memberBalanceJSON{
			UserID:    b.UserID,
			TotalPaid: b.TotalPaid,
			TotalOwed: b.TotalOwed,
			Balance:   b.Balance,
		}
	}
	breakdown := make(map[string]float64, len(s.CategoryBreakdown))
	for category, sum := range s.CategoryBreakdown {
		breakdown[string(category)] = sum
	}
	transfers := make([]transferJSON, len(s.Settlements))
	for i, t := range s.Settlements {
		transfers[i] = transferJSON{From: t.FromUserID, To: t.ToUserID, Amount: t.Amount}
	}
	return summaryJSON{
		TotalAmount:       s.TotalAmount,
		TotalExpenses:     s.TotalExpenses,
		Currency:          s.Currency,
		MemberBalances:    balances,
		CategoryBreakdown: breakdown,
		Settlements:       transfers,
	}
}

func toShareInputs(shares []shareJSON) []service.ShareInput {
	inputs := make([]service.ShareInput, len(shares))
	for i, s := range shares {
		inputs[i] = service.ShareInput{UserID: s.UserID, Share: s.Share}
	}
	return inputs
}
