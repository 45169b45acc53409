package budget

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type budgetResponse struct {
	ID        string          `json:"id"`
	Amount    ledger.Amount   `json:"amount"`
	Period    string          `json:"period"`
	Month     string          `json:"month"`
	Expense   decimal.Decimal `json:"expense"`
	Income    decimal.Decimal `json:"income"`
	Balance   decimal.Decimal `json:"balance"`
	Overspent bool            `json:"overspent"`
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	h.respond(w)
}

type updateBudgetRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetBudget(req.Amount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.respond(w)
}

func (h *Handler) respond(w http.ResponseWriter) {
	b := h.svc.Budget()
	s := h.svc.MonthSummary()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(budgetResponse{
		ID:        b.ID,
		Amount:    b.Amount,
		Period:    b.Period,
		Month:     s.Month,
		Expense:   s.Expense,
		Income:    s.Income,
		Balance:   s.Balance,
		Overspent: s.Overspent(),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
