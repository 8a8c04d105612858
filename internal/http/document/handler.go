package document

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/document"
)

type Handler struct {
	svc *document.Service
}

func NewHandler(svc *document.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.upload)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/file", h.download)
	r.Get("/generated", h.listGenerated)
	r.Post("/generated", h.generate)
}

type documentResponse struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
	Type          string     `json:"type"`
	FileName      string     `json:"file_name"`
	ContentType   string     `json:"content_type"`
	Size          int64      `json:"size"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toResponse(d *document.Document) documentResponse {
	return documentResponse{
		ID:            d.ID,
		OwnerID:       d.OwnerID,
		ApplicationID: d.ApplicationID,
		Type:          d.Type,
		FileName:      d.FileName,
		ContentType:   d.ContentType,
		Size:          d.Size,
		CreatedAt:     d.CreatedAt,
	}
}

func toResponseList(docs []*document.Document) []documentResponse {
	resp := make([]documentResponse, len(docs))
	for i, d := range docs {
		resp[i] = toResponse(d)
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := document.ListFilter{
		Type: r.URL.Query().Get("type"),
	}

	if s := r.URL.Query().Get("application_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid application_id", http.StatusBadRequest)
			return
		}

		filter.ApplicationID = &id
	}

	docs, err := h.svc.List(r.Context(), caller, filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(docs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params := document.UploadParams{
		File:        file,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Type:        r.FormValue("type"),
	}

	if s := r.FormValue("application_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid application_id", http.StatusBadRequest)
			return
		}

		params.ApplicationID = &id
	}

	doc, err := h.svc.Upload(r.Context(), caller, params)
	if err != nil {
		if errors.Is(err, document.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(doc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), caller, id); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	doc, rc, err := h.svc.Download(r.Context(), caller, id)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrNotFound):
			http.Error(w, "document not found", http.StatusNotFound)
		case errors.Is(err, document.ErrBlobMissing):
			http.Error(w, "document file is missing", http.StatusInternalServerError)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))

	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("failed to stream document", "id", id, "error", err)
	}
}

type generatedResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	Type          string    `json:"type"`
	Percentage    int       `json:"percentage"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *Handler) listGenerated(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	applicationID, err := uuid.Parse(r.URL.Query().Get("application_id"))
	if err != nil {
		http.Error(w, "application_id is required", http.StatusBadRequest)
		return
	}

	docs, err := h.svc.ListGenerated(r.Context(), caller, applicationID)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Error(w, "application not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]generatedResponse, len(docs))
	for i, d := range docs {
		resp[i] = generatedResponse{
			ID:            d.ID,
			ApplicationID: d.ApplicationID,
			Type:          d.Type,
			Percentage:    d.Percentage,
			CreatedAt:     d.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	applicationID, err := uuid.Parse(r.FormValue("application_id"))
	if err != nil {
		http.Error(w, "application_id is required", http.StatusBadRequest)
		return
	}

	percentage, err := strconv.Atoi(r.FormValue("percentage"))
	if err != nil {
		http.Error(w, "percentage is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	gen, err := h.svc.Generate(r.Context(), caller, document.GenerateParams{
		ApplicationID: applicationID,
		Type:          r.FormValue("type"),
		Percentage:    percentage,
		Content:       file,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		case errors.Is(err, document.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(generatedResponse{
		ID:            gen.ID,
		ApplicationID: gen.ApplicationID,
		Type:          gen.Type,
		Percentage:    gen.Percentage,
		CreatedAt:     gen.CreatedAt,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
