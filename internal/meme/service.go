package meme

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/memebin/service/internal/mediaclient"
)

// Store is the metadata persistence surface the service depends on.
// *Repository satisfies it.
type Store interface {
	Create(ctx context.Context, text, storedName, originalName, mimeType string) (*Meme, error)
	GetByID(ctx context.Context, id int64) (*Meme, error)
	List(ctx context.Context, offset, limit int) ([]Meme, error)
	UpdateText(ctx context.Context, id int64, text string) error
	UpdateFile(ctx context.Context, id int64, storedName, originalName, mimeType string) error
	DeleteByID(ctx context.Context, id int64) error
}

// MediaAPI is the remote media proxy surface. *mediaclient.Client satisfies it.
type MediaAPI interface {
	Upload(ctx context.Context, content io.Reader, filename, contentType string) (*mediaclient.UploadResult, error)
	ResolveURL(ctx context.Context, storedName string) (string, error)
	Remove(ctx context.Context, storedName string) error
}

// Service orchestrates meme mutations across the metadata store and the
// remote blob store. Each mutating operation sequences its two writes so
// that a record never points at a blob that was not stored first; the
// accepted failure mode is an unreferenced blob, never a broken record.
type Service struct {
	store     Store
	media     MediaAPI
	validator *Validator
}

// NewService creates a meme Service.
func NewService(store Store, media MediaAPI, validator *Validator) *Service {
	return &Service{store: store, media: media, validator: validator}
}

// GetByID returns the meme record with the given id.
func (s *Service) GetByID(ctx context.Context, id int64) (*Meme, error) {
	return s.store.GetByID(ctx, id)
}

// List returns a stable, id-ordered page of meme records. No storage calls.
func (s *Service) List(ctx context.Context, offset, limit int) ([]Meme, error) {
	return s.store.List(ctx, offset, limit)
}

// DownloadURL resolves a presigned URL for the meme's blob.
func (s *Service) DownloadURL(ctx context.Context, m *Meme) (string, error) {
	return s.media.ResolveURL(ctx, m.StoredName)
}

// Create validates the upload, stores the blob remotely, then inserts the
// metadata row. Validation failures have no side effects; an upload failure
// writes no row. If the insert fails after a successful upload the blob is
// orphaned — logged, surfaced as an error, not rolled back.
func (s *Service) Create(ctx context.Context, text string, up *Upload) (*Meme, error) {
	if err := s.validator.Validate(up); err != nil {
		return nil, err
	}

	result, err := s.media.Upload(ctx, up.Content, up.Filename, up.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload blob: %w", err)
	}

	m, err := s.store.Create(ctx, text, result.StoredName, up.Filename, up.ContentType)
	if err != nil {
		log.Printf("meme: insert failed after upload, blob %q orphaned: %v", result.StoredName, err)
		return nil, fmt.Errorf("insert meme: %w", err)
	}
	return m, nil
}

// Update applies at most two independent sub-operations to a resolved meme:
// a caption change and a file replacement. A text-only update never touches
// storage. If the file sub-operation fails, a caption change already
// committed stays committed. The previous blob is left in place after a
// successful replacement.
func (s *Service) Update(ctx context.Context, m *Meme, newText string, hasText bool, up *Upload) (*Meme, error) {
	if hasText && newText != m.Text {
		if err := s.store.UpdateText(ctx, m.ID, newText); err != nil {
			return nil, fmt.Errorf("update text: %w", err)
		}
	}

	if up != nil {
		if err := s.validator.Validate(up); err != nil {
			return nil, err
		}

		result, err := s.media.Upload(ctx, up.Content, up.Filename, up.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload blob: %w", err)
		}

		if err := s.store.UpdateFile(ctx, m.ID, result.StoredName, up.Filename, up.ContentType); err != nil {
			log.Printf("meme: repoint failed after upload, blob %q orphaned: %v", result.StoredName, err)
			return nil, fmt.Errorf("update file: %w", err)
		}
	}

	return s.store.GetByID(ctx, m.ID)
}

// Delete removes the metadata row first, then the remote blob. If the row
// delete fails the blob stays untouched. If the blob removal fails after the
// row is gone the blob is orphaned — logged and surfaced, not retried.
func (s *Service) Delete(ctx context.Context, m *Meme) error {
	if err := s.store.DeleteByID(ctx, m.ID); err != nil {
		return fmt.Errorf("delete meme row: %w", err)
	}

	if err := s.media.Remove(ctx, m.StoredName); err != nil {
		log.Printf("meme: row %d deleted but blob %q removal failed, blob orphaned: %v", m.ID, m.StoredName, err)
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
