package repository

import (
	"context"
	"fmt"
	"io"
	"time"

	"precatorio-backend/db"
	"precatorio-backend/models"
	"precatorio-backend/storage"

	"github.com/jackc/pgx/v5"
)

// DocumentRepository handles database and file operations for documents
type DocumentRepository struct {
	db    *db.DB
	files storage.Storage
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(database *db.DB, files storage.Storage) *DocumentRepository {
	return &DocumentRepository{db: database, files: files}
}

const documentColumns = `id, creditor_id, type, file_url, submitted_at, created_at, updated_at`

// Create validates the attached file and the document, stores the file and
// inserts the record. Nothing is written until both validations pass.
func (r *DocumentRepository) Create(ctx context.Context, document *models.Document, file io.Reader, filename string, size int64) error {
	if violations := ValidateFile(filename, size, models.DocumentAllowedExtensions(), models.DocumentMaxFileSize); len(violations) > 0 {
		return models.NewValidationError(violations)
	}

	storedName := storage.StoredName(filename, time.Now())
	document.FileURL = storedName

	if violations := document.Validate(); len(violations) > 0 {
		return models.NewValidationError(violations)
	}

	path, err := r.files.Upload(ctx, storedName, file)
	if err != nil {
		return fmt.Errorf("failed to store document file: %w", err)
	}
	document.FileURL = path

	query := `
		INSERT INTO documents (creditor_id, type, file_url, submitted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	id, err := r.db.Insert(ctx, query, document.CreditorID, document.Type, document.FileURL, document.SubmittedAt)
	if err != nil {
		// The stored file is not rolled back on insert failure (documented limitation)
		return fmt.Errorf("failed to insert document: %w", err)
	}
	document.ID = id
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	document, err := scanDocument(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return document, nil
}

// GetByType retrieves a creditor's document of a given type
func (r *DocumentRepository) GetByType(ctx context.Context, creditorID int64, docType models.DocumentType) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE creditor_id = $1 AND type = $2`

	document, err := scanDocument(r.db.QueryRow(ctx, query, creditorID, docType))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return document, nil
}

// ListByCreditor retrieves all documents of a creditor
func (r *DocumentRepository) ListByCreditor(ctx context.Context, creditorID int64) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE creditor_id = $1 ORDER BY id`
	return r.list(ctx, query, creditorID)
}

// ListAll retrieves all documents
func (r *DocumentRepository) ListAll(ctx context.Context) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY id`
	return r.list(ctx, query)
}

func (r *DocumentRepository) list(ctx context.Context, query string, args ...any) ([]*models.Document, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}

	return documents, rows.Err()
}

// Update updates a document, optionally replacing the attached file. Both
// validations run before any file is written or removed; the previous stored
// file is only deleted once the replacement is in place.
func (r *DocumentRepository) Update(ctx context.Context, document *models.Document, file io.Reader, filename string, size int64) error {
	if file != nil {
		if violations := ValidateFile(filename, size, models.DocumentAllowedExtensions(), models.DocumentMaxFileSize); len(violations) > 0 {
			return models.NewValidationError(violations)
		}
	}

	if violations := document.Validate(); len(violations) > 0 {
		return models.NewValidationError(violations)
	}

	if file != nil {
		previous := document.FileURL
		path, err := r.files.Upload(ctx, storage.StoredName(filename, time.Now()), file)
		if err != nil {
			return fmt.Errorf("failed to store document file: %w", err)
		}
		document.FileURL = path

		if previous != "" {
			if err := r.files.Delete(ctx, previous); err != nil {
				return fmt.Errorf("failed to remove previous document file: %w", err)
			}
		}
	}

	query := `
		UPDATE documents SET
			type = $2,
			file_url = $3,
			submitted_at = $4,
			updated_at = NOW()
		WHERE id = $1`

	affected, err := r.db.Exec(ctx, query, document.ID, document.Type, document.FileURL, document.SubmittedAt)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete deletes a document and its stored file
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	document, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if document.FileURL != "" {
		if err := r.files.Delete(ctx, document.FileURL); err != nil {
			return fmt.Errorf("failed to remove document file: %w", err)
		}
	}

	_, err = r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}

// DownloadURL returns the opaque path a file-serving layer resolves to the
// stored binary
func (r *DocumentRepository) DownloadURL(ctx context.Context, id int64) (string, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("/documentos/%d/download", id), nil
}

// Open streams the stored file of a document
func (r *DocumentRepository) Open(ctx context.Context, id int64) (io.ReadCloser, *models.Document, error) {
	document, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := r.files.Download(ctx, document.FileURL)
	if err != nil {
		return nil, nil, err
	}
	return reader, document, nil
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	document := &models.Document{}
	err := row.Scan(
		&document.ID,
		&document.CreditorID,
		&document.Type,
		&document.FileURL,
		&document.SubmittedAt,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return document, nil
}
