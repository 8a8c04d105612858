package receipt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/receipt"
)

type Handler struct {
	svc *receipt.Service
}

func NewHandler(svc *receipt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.generate)
}

type receiptResponse struct {
	ID         uuid.UUID `json:"id"`
	PaymentID  uuid.UUID `json:"payment_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OwnerName  string    `json:"owner_name"`
	OwnerEmail string    `json:"owner_email"`
	Amount     int64     `json:"amount"`
	Number     string    `json:"number"`
	IssuerID   uuid.UUID `json:"issuer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(rec *receipt.Receipt) receiptResponse {
	return receiptResponse{
		ID:         rec.ID,
		PaymentID:  rec.PaymentID,
		OwnerID:    rec.OwnerID,
		OwnerName:  rec.OwnerName,
		OwnerEmail: rec.OwnerEmail,
		Amount:     rec.Amount,
		Number:     rec.Number,
		IssuerID:   rec.IssuerID,
		CreatedAt:  rec.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	receipts, err := h.svc.List(r.Context(), caller, receipt.ListFilter{
		Search: r.URL.Query().Get("q"),
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]receiptResponse, len(receipts))
	for i, rec := range receipts {
		resp[i] = toResponse(rec)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type generateRequest struct {
	PaymentID uuid.UUID `json:"payment_id"`
	Amount    int64     `json:"amount"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Generate(r.Context(), caller, req.PaymentID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, receipt.ErrNotFound):
			http.Error(w, "payment not found", http.StatusNotFound)
		case errors.Is(err, receipt.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
