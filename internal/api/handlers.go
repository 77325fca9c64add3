package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tripledger/internal/models"
	"tripledger/internal/service"
	"tripledger/internal/storage"
)

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	auth     *service.AuthService
	trips    *service.TripService
	expenses *service.ExpenseService
}

// NewHandlers creates the handler set for the given services.
func NewHandlers(auth *service.AuthService, trips *service.TripService, expenses *service.ExpenseService) *Handlers {
	return &Handlers{auth: auth, trips: trips, expenses: expenses}
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserJSON(user)})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserJSON(user)})
}

func (h *Handlers) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.trips.Create(r.Context(), req.Name, req.MemberIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTripJSON(trip))
}

func (h *Handlers) getTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.trips.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripJSON(trip))
}

func (h *Handlers) createExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	expense, err := h.expenses.Create(r.Context(), service.CreateExpenseInput{
		TripID:         req.TripID,
		PayerID:        req.PayerID,
		Description:    req.Description,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Category:       models.Category(req.Category),
		SplitPolicy:    models.SplitPolicy(req.SplitPolicy),
		ParticipantIDs: req.ParticipantIDs,
		Shares:         toShareInputs(req.Shares),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseJSON(expense))
}

func (h *Handlers) getExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenses.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseJSON(expense))
}

func (h *Handlers) updateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	input := service.UpdateExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
	}
	if req.Category != nil {
		category := models.Category(*req.Category)
		input.Category = &category
	}
	if req.Status != nil {
		status := models.ExpenseStatus(*req.Status)
		input.Status = &status
	}
	if req.Shares != nil {
		input.Shares = toShareInputs(req.Shares)
	}

	expense, err := h.expenses.Update(r.Context(), mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseJSON(expense))
}

func (h *Handlers) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.expenses.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) settleExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenses.Settle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseJSON(expense))
}

func (h *Handlers) listTripExpenses(w http.ResponseWriter, r *http.Request) {
	filter := storage.ExpenseFilter{
		Category: models.Category(r.URL.Query().Get("category")),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}

	expenses, pagination, err := h.expenses.List(r.Context(), mux.Vars(r)["tripId"], filter)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]expenseJSON, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseJSON(e)
	}
	writeJSON(w, http.StatusOK, expenseListResponse{
		Expenses: out,
		Pagination: paginationJSON{
			Current: pagination.Current,
			Pages:   pagination.Pages,
			Total:   pagination.Total,
		},
	})
}

func (h *Handlers) tripSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.expenses.Summary(r.Context(), mux.Vars(r)["tripId"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryJSON(summary))
}
