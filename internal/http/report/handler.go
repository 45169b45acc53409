package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

// StatsRoutes and CategoryRoutes are mounted on separate paths.
func (h *Handler) StatsRoutes(r chi.Router) {
	r.Get("/", h.stats)
}

func (h *Handler) CategoryRoutes(r chi.Router) {
	r.Get("/", h.categories)
}

type statsResponse struct {
	Granularity ledger.Granularity `json:"granularity"`
	Periods     []string           `json:"periods"`
	Expense     ledger.Totals      `json:"expense"`
	Income      ledger.Totals      `json:"income"`
	ByCategory  ledger.Totals      `json:"by_category"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	g := ledger.Granularity(r.URL.Query().Get("granularity"))
	if g == "" {
		g = ledger.Daily
	}

	stats, err := h.svc.Statistics(g)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidGranularity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(statsResponse{
		Granularity: stats.Granularity,
		Periods:     stats.Periods(),
		Expense:     stats.Expense,
		Income:      stats.Income,
		ByCategory:  stats.ByCategory,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.svc.Categories()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
