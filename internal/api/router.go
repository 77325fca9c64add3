package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripledger/internal/auth"
	"tripledger/internal/middleware"
)

// NewRouter wires the HTTP routes. Auth endpoints and health/metrics are
// open; everything under /api besides auth requires a valid Bearer token.
func NewRouter(h *Handlers, jwtManager *auth.JWTManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics, middleware.Logging)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.login).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuth(jwtManager))

	protected.HandleFunc("/trips", h.createTrip).Methods(http.MethodPost)
	protected.HandleFunc("/trips/{id}", h.getTrip).Methods(http.MethodGet)

	protected.HandleFunc("/expenses", h.createExpense).Methods(http.MethodPost)
	protected.HandleFunc("/expenses/trip/{tripId}", h.listTripExpenses).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/trip/{tripId}/summary", h.tripSummary).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/{id}", h.getExpense).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/{id}", h.updateExpense).Methods(http.MethodPut)
	protected.HandleFunc("/expenses/{id}", h.deleteExpense).Methods(http.MethodDelete)
	protected.HandleFunc("/expenses/{id}/settle", h.settleExpense).Methods(http.MethodPut)

	return r
}
