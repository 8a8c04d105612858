package document

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrValidation = errors.New("invalid document input")
	// ErrBlobMissing marks a metadata row whose blob path no longer resolves.
	// Such a row is considered corrupt and the condition is surfaced at read time.
	ErrBlobMissing = errors.New("document blob missing")
)

// Document is a client-uploaded file: the metadata row references a blob held
// in the file store by path.
type Document struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	ApplicationID *uuid.UUID
	Type          string
	FileName      string
	BlobPath      string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// GeneratedDocument is produced server-side for an application (offer letters,
// allocation letters). Immutable once written.
type GeneratedDocument struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	Type          string
	Percentage    int
	BlobPath      string
	CreatedAt     time.Time
}
