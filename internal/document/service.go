package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
	"github.com/Abba-Jere11/properties-sub001/internal/cache"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=document
type Repository interface {
	ListDocuments(ctx context.Context, filter ListFilter) ([]*Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)
	CreateDocument(ctx context.Context, d *Document) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error

	ListGeneratedDocuments(ctx context.Context, applicationID uuid.UUID) ([]*GeneratedDocument, error)
	CreateGeneratedDocument(ctx context.Context, g *GeneratedDocument) error
	ApplicationOwner(ctx context.Context, applicationID uuid.UUID) (uuid.UUID, error)
}

// BlobStore is the opaque file side of the backend. Paths are derived by this
// service; the store never interprets them.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
}

// ListFilter narrows the documents view. OwnerID is set by the service from
// the caller's scope; handlers must not populate it.
type ListFilter struct {
	OwnerID       *uuid.UUID
	ApplicationID *uuid.UUID
	Type          string
}

type Service struct {
	repo  Repository
	blobs BlobStore
	views *cache.Views

	// seq disambiguates blob paths of concurrent uploads by the same caller.
	seq atomic.Int64
}

func NewService(repo Repository, blobs BlobStore, views *cache.Views) *Service {
	return &Service{repo: repo, blobs: blobs, views: views}
}

// List returns documents newest-first. Non-admin callers only ever see their
// own rows regardless of the filter they pass.
func (s *Service) List(ctx context.Context, caller auth.Caller, filter ListFilter) ([]*Document, error) {
	if !caller.IsAdmin() {
		owner := caller.ID
		filter.OwnerID = &owner
	}

	key := listKey(filter)
	if cached, ok := cache.Get[[]*Document](s.views, cache.KindDocuments, key); ok {
		return cached, nil
	}

	docs, err := s.repo.ListDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	cache.Put(s.views, cache.KindDocuments, key, docs)

	return docs, nil
}

type UploadParams struct {
	File          io.Reader
	FileName      string
	ContentType   string
	Size          int64
	Type          string
	ApplicationID *uuid.UUID
}

// Upload stores the blob first, then the metadata row. If the row insert
// fails the blob is removed best-effort; an orphan blob is preferred over a
// row that references nothing.
func (s *Service) Upload(ctx context.Context, caller auth.Caller, params UploadParams) (*Document, error) {
	if params.File == nil || params.FileName == "" {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}

	if params.Type == "" {
		return nil, fmt.Errorf("%w: document type is required", ErrValidation)
	}

	path := s.blobPath(caller.ID, params.Type, params.FileName)

	if err := s.blobs.Put(ctx, path, params.File); err != nil {
		return nil, fmt.Errorf("storing document blob: %w", err)
	}

	doc := &Document{
		OwnerID:       caller.ID,
		ApplicationID: params.ApplicationID,
		Type:          params.Type,
		FileName:      params.FileName,
		BlobPath:      path,
		ContentType:   params.ContentType,
		Size:          params.Size,
	}

	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		if removeErr := s.blobs.Remove(ctx, path); removeErr != nil {
			slog.Error("failed to clean up blob after insert failure",
				"path", path, "error", removeErr)
		}

		return nil, fmt.Errorf("creating document record: %w", err)
	}

	s.views.Invalidate(cache.KindDocuments)

	return doc, nil
}

// Delete removes the metadata row and its blob. The row is read first so a
// missing id fails with ErrNotFound before any blob call; blob removal failure
// is logged only, since an orphan blob beats undeletable metadata.
func (s *Service) Delete(ctx context.Context, caller auth.Caller, id uuid.UUID) error {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() && doc.OwnerID != caller.ID {
		return ErrNotFound
	}

	if err := s.blobs.Remove(ctx, doc.BlobPath); err != nil {
		slog.Error("failed to remove document blob", "path", doc.BlobPath, "error", err)
	}

	if err := s.repo.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("deleting document record: %w", err)
	}

	s.views.Invalidate(cache.KindDocuments)

	return nil
}

// Download opens the blob behind a document. A row whose blob no longer
// resolves is reported as corrupt via ErrBlobMissing.
func (s *Service) Download(ctx context.Context, caller auth.Caller, id uuid.UUID) (*Document, io.ReadCloser, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if !caller.IsAdmin() && doc.OwnerID != caller.ID {
		return nil, nil, ErrNotFound
	}

	rc, err := s.blobs.Open(ctx, doc.BlobPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBlobMissing, err)
	}

	return doc, rc, nil
}

type GenerateParams struct {
	ApplicationID uuid.UUID
	Type          string
	Percentage    int
	Content       io.Reader
}

// Generate writes a server-produced document (offer/allocation letter) for an
// application. Admin only; the row is immutable once written.
func (s *Service) Generate(ctx context.Context, caller auth.Caller, params GenerateParams) (*GeneratedDocument, error) {
	if !caller.IsAdmin() {
		return nil, auth.ErrForbidden
	}

	if params.Content == nil || params.Type == "" {
		return nil, fmt.Errorf("%w: content and type are required", ErrValidation)
	}

	if params.Percentage < 0 || params.Percentage > 100 {
		return nil, fmt.Errorf("%w: percentage out of range", ErrValidation)
	}

	path := fmt.Sprintf("generated/%s/%s_%d_%d.pdf",
		params.ApplicationID, params.Type, time.Now().UnixMilli(), s.seq.Add(1))

	if err := s.blobs.Put(ctx, path, params.Content); err != nil {
		return nil, fmt.Errorf("storing generated blob: %w", err)
	}

	gen := &GeneratedDocument{
		ApplicationID: params.ApplicationID,
		Type:          params.Type,
		Percentage:    params.Percentage,
		BlobPath:      path,
	}

	if err := s.repo.CreateGeneratedDocument(ctx, gen); err != nil {
		if removeErr := s.blobs.Remove(ctx, path); removeErr != nil {
			slog.Error("failed to clean up generated blob after insert failure",
				"path", path, "error", removeErr)
		}

		return nil, fmt.Errorf("creating generated document record: %w", err)
	}

	s.views.Invalidate(cache.KindDocuments)

	return gen, nil
}

// ListGenerated returns generated documents for an application, newest first.
// Non-admins may only read applications they own.
func (s *Service) ListGenerated(ctx context.Context, caller auth.Caller, applicationID uuid.UUID) ([]*GeneratedDocument, error) {
	if !caller.IsAdmin() {
		owner, err := s.repo.ApplicationOwner(ctx, applicationID)
		if err != nil {
			return nil, err
		}

		if owner != caller.ID {
			return nil, ErrNotFound
		}
	}

	return s.repo.ListGeneratedDocuments(ctx, applicationID)
}

// blobPath derives a collision-free path: deterministic in caller and type,
// disambiguated by wall clock plus a process-wide counter so concurrent
// uploads by the same caller never collide.
func (s *Service) blobPath(owner uuid.UUID, docType, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))

	return fmt.Sprintf("%s/%s_%d_%d%s",
		owner, docType, time.Now().UnixMilli(), s.seq.Add(1), ext)
}

func listKey(filter ListFilter) string {
	owner, app := "", ""
	if filter.OwnerID != nil {
		owner = filter.OwnerID.String()
	}

	if filter.ApplicationID != nil {
		app = filter.ApplicationID.String()
	}

	return fmt.Sprintf("%s|%s|%s", owner, app, filter.Type)
}
