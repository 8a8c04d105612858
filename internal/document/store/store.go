package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Abba-Jere11/properties-sub001/internal/document"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectDocumentColumns = `
	d.id, d.owner_id, d.application_id, d.doc_type, d.file_name,
	d.blob_path, d.content_type, d.file_size, d.created_at
`

func scanDocument(s scanner) (*document.Document, error) {
	var d document.Document

	var contentType sql.NullString

	if err := s.Scan(
		&d.ID, &d.OwnerID, &d.ApplicationID, &d.Type, &d.FileName,
		&d.BlobPath, &contentType, &d.Size, &d.CreatedAt,
	); err != nil {
		return nil, err
	}

	d.ContentType = contentType.String

	return &d, nil
}

func (s *Store) ListDocuments(ctx context.Context, filter document.ListFilter) ([]*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + ` FROM documents d`

	var (
		conditions []string
		args       []any
	)

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("d.owner_id = $%d", len(args)))
	}

	if filter.ApplicationID != nil {
		args = append(args, *filter.ApplicationID)
		conditions = append(conditions, fmt.Sprintf("d.application_id = $%d", len(args)))
	}

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("d.doc_type = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY d.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*document.Document

	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	return docs, nil
}

func (s *Store) GetDocument(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	query := `SELECT ` + selectDocumentColumns + ` FROM documents d WHERE d.id = $1`

	d, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, document.ErrNotFound
		}

		return nil, fmt.Errorf("getting document: %w", err)
	}

	return d, nil
}

func (s *Store) CreateDocument(ctx context.Context, d *document.Document) error {
	query := `
		INSERT INTO documents (owner_id, application_id, doc_type, file_name, blob_path, content_type, file_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		d.OwnerID,
		d.ApplicationID,
		d.Type,
		d.FileName,
		d.BlobPath,
		nullString(d.ContentType),
		d.Size,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	return nil
}

func (s *Store) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	if affected == 0 {
		return document.ErrNotFound
	}

	return nil
}

func (s *Store) ListGeneratedDocuments(ctx context.Context, applicationID uuid.UUID) ([]*document.GeneratedDocument, error) {
	query := `
		SELECT g.id, g.application_id, g.doc_type, g.percentage, g.blob_path, g.created_at
		FROM generated_documents g
		WHERE g.application_id = $1
		ORDER BY g.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("listing generated documents: %w", err)
	}
	defer rows.Close()

	var docs []*document.GeneratedDocument

	for rows.Next() {
		var g document.GeneratedDocument

		if err := rows.Scan(&g.ID, &g.ApplicationID, &g.Type, &g.Percentage, &g.BlobPath, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning generated document: %w", err)
		}

		docs = append(docs, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing generated documents: %w", err)
	}

	return docs, nil
}

func (s *Store) CreateGeneratedDocument(ctx context.Context, g *document.GeneratedDocument) error {
	query := `
		INSERT INTO generated_documents (application_id, doc_type, percentage, blob_path, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.ApplicationID,
		g.Type,
		g.Percentage,
		g.BlobPath,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating generated document: %w", err)
	}

	return nil
}

func (s *Store) ApplicationOwner(ctx context.Context, applicationID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID

	err := s.db.QueryRowContext(ctx,
		`SELECT owner_id FROM applications WHERE id = $1`, applicationID,
	).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, document.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("getting application owner: %w", err)
	}

	return owner, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
