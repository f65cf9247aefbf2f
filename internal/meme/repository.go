// Package meme manages meme records and the cross-service protocol that
// keeps metadata rows and stored blobs in lockstep.
package meme

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Meme is a stored meme record: a caption plus a reference to the blob held
// by the media service. StoredName is server-generated and globally unique;
// OriginalName is whatever the client called the file.
type Meme struct {
	ID           int64  `json:"id"`
	Text         string `json:"text"`
	StoredName   string `json:"storedName"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
}

// ErrNotFound is returned when a meme record does not exist.
var ErrNotFound = errors.New("meme not found")

// ErrDuplicateName is returned when a stored name is already referenced by
// another record.
var ErrDuplicateName = errors.New("stored name already in use")

// Repository handles all meme database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new meme row and returns the created record.
func (r *Repository) Create(ctx context.Context, text, storedName, originalName, mimeType string) (*Meme, error) {
	m := &Meme{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO memes (text, stored_name, original_name, mimetype)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, text, stored_name, original_name, mimetype`,
		text, storedName, originalName, mimeType,
	).Scan(&m.ID, &m.Text, &m.StoredName, &m.OriginalName, &m.MimeType)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create meme: %w", err)
	}
	return m, nil
}

// GetByID fetches a meme by its id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Meme, error) {
	m := &Meme{}
	err := r.db.QueryRow(ctx,
		`SELECT id, text, stored_name, original_name, mimetype
		 FROM memes WHERE id = $1`,
		id,
	).Scan(&m.ID, &m.Text, &m.StoredName, &m.OriginalName, &m.MimeType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meme by id: %w", err)
	}
	return m, nil
}

// List returns an id-ordered page of meme records.
func (r *Repository) List(ctx context.Context, offset, limit int) ([]Meme, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, text, stored_name, original_name, mimetype
		 FROM memes ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list memes: %w", err)
	}
	defer rows.Close()

	memes := []Meme{}
	for rows.Next() {
		var m Meme
		if err := rows.Scan(&m.ID, &m.Text, &m.StoredName, &m.OriginalName, &m.MimeType); err != nil {
			return nil, fmt.Errorf("scan meme row: %w", err)
		}
		memes = append(memes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meme rows: %w", err)
	}
	return memes, nil
}

// UpdateText replaces the caption of the meme with the given id.
func (r *Repository) UpdateText(ctx context.Context, id int64, text string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE memes SET text = $2 WHERE id = $1`,
		id, text,
	)
	if err != nil {
		return fmt.Errorf("update meme text: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFile repoints the record at a freshly uploaded blob.
func (r *Repository) UpdateFile(ctx context.Context, id int64, storedName, originalName, mimeType string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE memes SET stored_name = $2, original_name = $3, mimetype = $4
		 WHERE id = $1`,
		id, storedName, originalName, mimeType,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("update meme file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the meme row with the given id.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM memes WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete meme: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
