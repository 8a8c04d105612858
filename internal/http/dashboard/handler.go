package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/dashboard"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/stats", h.stats)
}

type monthBucketResponse struct {
	Month    string `json:"month"`
	Total    int    `json:"total"`
	Approved int    `json:"approved"`
}

type estateAllocationResponse struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Sold      int    `json:"sold"`
	Booked    int    `json:"booked"`
}

type paymentProgressResponse struct {
	Pending int `json:"pending"`
	Partial int `json:"partial"`
	Full    int `json:"full"`
}

type statsResponse struct {
	TotalApplications        int                        `json:"total_applications"`
	PendingApplications      int                        `json:"pending_applications"`
	ApprovedApplications     int                        `json:"approved_applications"`
	RejectedApplications     int                        `json:"rejected_applications"`
	TotalSales               int64                      `json:"total_sales"`
	ReceiptsIssued           int                        `json:"receipts_issued"`
	MonthlyApplications      []monthBucketResponse      `json:"monthly_applications"`
	EstateAllocations        []estateAllocationResponse `json:"estate_allocations"`
	EstimatedPaymentProgress paymentProgressResponse    `json:"estimated_payment_progress"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.svc.Stats(r.Context(), caller)
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := statsResponse{
		TotalApplications:    stats.TotalApplications,
		PendingApplications:  stats.PendingApplications,
		ApprovedApplications: stats.ApprovedApplications,
		RejectedApplications: stats.RejectedApplications,
		TotalSales:           stats.TotalSales,
		ReceiptsIssued:       stats.ReceiptsIssued,
		MonthlyApplications:  make([]monthBucketResponse, 0, len(stats.MonthlyApplications)),
		EstateAllocations:    make([]estateAllocationResponse, 0, len(stats.EstateAllocations)),
		EstimatedPaymentProgress: paymentProgressResponse{
			Pending: stats.EstimatedPaymentProgress.Pending,
			Partial: stats.EstimatedPaymentProgress.Partial,
			Full:    stats.EstimatedPaymentProgress.Full,
		},
	}

	for _, b := range stats.MonthlyApplications {
		resp.MonthlyApplications = append(resp.MonthlyApplications, monthBucketResponse(b))
	}

	for _, e := range stats.EstateAllocations {
		resp.EstateAllocations = append(resp.EstateAllocations, estateAllocationResponse(e))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
