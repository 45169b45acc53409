package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

const maxUploadSize = 10 << 20

type Handler struct {
	parser importer.Importer
	svc    *ledger.Service
}

func NewHandler(parser importer.Importer, svc *ledger.Service) *Handler {
	return &Handler{
		parser: parser,
		svc:    svc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type transactionResponse struct {
	ID       string        `json:"id"`
	Amount   ledger.Amount `json:"amount"`
	Category string        `json:"category"`
	Date     string        `json:"date"`
	Kind     ledger.Kind   `json:"kind"`
	Note     string        `json:"note"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

// importCSV accepts the CSV file as the raw request body.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUploadSize)

	txs, err := h.parser.Parse(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n := h.svc.Import(txs)
	slog.Info("imported transactions", "count", n)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(txs []ledger.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, transactionResponse{
			ID:       tx.ID,
			Amount:   tx.Amount,
			Category: tx.Category,
			Date:     tx.Date,
			Kind:     tx.Kind,
			Note:     tx.Note,
		})
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}
