package provision

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/provision"
)

// Handler exposes client provisioning. It sits outside the shared auth
// middleware and runs the two-step check itself through the service, so the
// 401/403 split stays exact: bad token first, insufficient privilege second.
type Handler struct {
	svc *provision.Service
}

func NewHandler(svc *provision.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/clients", h.createClient)
}

type createClientRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type createClientResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	token := auth.BearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.svc.CreateClient(r.Context(), token, provision.Params{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		var createErr *provision.CreateError

		switch {
		case errors.Is(err, auth.ErrUnauthorized):
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
		case errors.Is(err, auth.ErrForbidden):
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin privileges required"})
		case errors.Is(err, provision.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.As(err, &createErr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: createErr.Reason})
		default:
			slog.Error("client provisioning failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}

		return
	}

	writeJSON(w, http.StatusOK, createClientResponse{
		Message: "client created successfully",
		UserID:  result.UserID,
		Email:   result.Email,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
