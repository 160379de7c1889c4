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

// DefaultValidity is how long a newly received certificate is considered
// valid when the clearance authority does not state otherwise
const DefaultValidity = 30 * 24 * time.Hour

// CertificateRepository handles database and file operations for certificates
type CertificateRepository struct {
	db    *db.DB
	files storage.Storage
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(database *db.DB, files storage.Storage) *CertificateRepository {
	return &CertificateRepository{db: database, files: files}
}

const certificateColumns = `id, creditor_id, type, origin, file_url, content_base64, status, received_at, valid_until, created_at, updated_at`

// Create inserts a certificate, optionally storing an attached file first.
// With a file: extension/size are checked, then the entity, then the file is
// written; nothing is persisted until both validations pass. Without a file
// the certificate must carry inline base64 content. A missing valid-until
// defaults to thirty days from now.
func (r *CertificateRepository) Create(ctx context.Context, certificate *models.Certificate, file io.Reader, filename string, size int64) error {
	if file != nil {
		if violations := ValidateFile(filename, size, models.CertificateAllowedExtensions(), models.CertificateMaxFileSize); len(violations) > 0 {
			return models.NewValidationError(violations)
		}
		certificate.FileURL = storage.StoredName(filename, time.Now())
	}

	if violations := certificate.Validate(); len(violations) > 0 {
		return models.NewValidationError(violations)
	}

	if file != nil {
		path, err := r.files.Upload(ctx, certificate.FileURL, file)
		if err != nil {
			return fmt.Errorf("failed to store certificate file: %w", err)
		}
		certificate.FileURL = path
	}

	if certificate.ValidUntil == nil {
		validUntil := time.Now().Add(DefaultValidity)
		certificate.ValidUntil = &validUntil
	}

	query := `
		INSERT INTO certificates (creditor_id, type, origin, file_url, content_base64, status, received_at, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	id, err := r.db.Insert(ctx, query,
		certificate.CreditorID,
		certificate.Type,
		certificate.Origin,
		nullable(certificate.FileURL),
		nullable(certificate.ContentBase64),
		certificate.Status,
		certificate.ReceivedAt,
		certificate.ValidUntil,
	)
	if err != nil {
		// The stored file is not rolled back on insert failure (documented limitation)
		return fmt.Errorf("failed to insert certificate: %w", err)
	}
	certificate.ID = id
	return nil
}

// GetByID retrieves a certificate by ID
func (r *CertificateRepository) GetByID(ctx context.Context, id int64) (*models.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1`

	certificate, err := scanCertificate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return certificate, nil
}

// GetByType retrieves a creditor's certificate of a given jurisdiction type
func (r *CertificateRepository) GetByType(ctx context.Context, creditorID int64, certType models.CertificateType) (*models.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE creditor_id = $1 AND type = $2`

	certificate, err := scanCertificate(r.db.QueryRow(ctx, query, creditorID, certType))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return certificate, nil
}

// ListByCreditor retrieves all certificates of a creditor
func (r *CertificateRepository) ListByCreditor(ctx context.Context, creditorID int64) ([]*models.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE creditor_id = $1 ORDER BY id`
	return r.list(ctx, query, creditorID)
}

// ListAll retrieves all certificates
func (r *CertificateRepository) ListAll(ctx context.Context) ([]*models.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates ORDER BY id`
	return r.list(ctx, query)
}

// ListExpiring retrieves certificates whose validity ends within the given
// window and has not yet passed
func (r *CertificateRepository) ListExpiring(ctx context.Context, within time.Duration) ([]*models.Certificate, error) {
	query := `SELECT ` + certificateColumns + `
		FROM certificates
		WHERE valid_until >= NOW() AND valid_until <= NOW() + make_interval(secs => $1)
		ORDER BY valid_until`
	return r.list(ctx, query, within.Seconds())
}

func (r *CertificateRepository) list(ctx context.Context, query string, args ...any) ([]*models.Certificate, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certificates []*models.Certificate
	for rows.Next() {
		certificate, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certificates = append(certificates, certificate)
	}

	return certificates, rows.Err()
}

// Update updates a certificate, optionally replacing the attached file. Both
// validations run before any file is written or removed; the previous stored
// file is only deleted once the replacement is in place.
func (r *CertificateRepository) Update(ctx context.Context, certificate *models.Certificate, file io.Reader, filename string, size int64) error {
	if file != nil {
		if violations := ValidateFile(filename, size, models.CertificateAllowedExtensions(), models.CertificateMaxFileSize); len(violations) > 0 {
			return models.NewValidationError(violations)
		}
	}

	if violations := certificate.Validate(); len(violations) > 0 {
		return models.NewValidationError(violations)
	}

	if file != nil {
		previous := certificate.FileURL
		path, err := r.files.Upload(ctx, storage.StoredName(filename, time.Now()), file)
		if err != nil {
			return fmt.Errorf("failed to store certificate file: %w", err)
		}
		certificate.FileURL = path

		if previous != "" {
			if err := r.files.Delete(ctx, previous); err != nil {
				return fmt.Errorf("failed to remove previous certificate file: %w", err)
			}
		}
	}

	query := `
		UPDATE certificates SET
			type = $2,
			origin = $3,
			file_url = $4,
			content_base64 = $5,
			status = $6,
			received_at = $7,
			valid_until = $8,
			updated_at = NOW()
		WHERE id = $1`

	affected, err := r.db.Exec(ctx, query,
		certificate.ID,
		certificate.Type,
		certificate.Origin,
		nullable(certificate.FileURL),
		nullable(certificate.ContentBase64),
		certificate.Status,
		certificate.ReceivedAt,
		certificate.ValidUntil,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateStatusAndValidity rewrites a certificate's status and extends its
// validity; used by the clearance sweep
func (r *CertificateRepository) UpdateStatusAndValidity(ctx context.Context, id int64, status models.CertificateStatus, validUntil time.Time) error {
	query := `
		UPDATE certificates SET
			status = $2,
			valid_until = $3,
			updated_at = NOW()
		WHERE id = $1`

	affected, err := r.db.Exec(ctx, query, id, status, validUntil)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete loads the certificate first to discover its stored file, removes
// the file if present, then deletes the row
func (r *CertificateRepository) Delete(ctx context.Context, id int64) error {
	certificate, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if certificate.FileURL != "" {
		if err := r.files.Delete(ctx, certificate.FileURL); err != nil {
			return fmt.Errorf("failed to remove certificate file: %w", err)
		}
	}

	_, err = r.db.Exec(ctx, `DELETE FROM certificates WHERE id = $1`, id)
	return err
}

// DownloadURL returns the opaque path a file-serving layer resolves to the
// stored binary
func (r *CertificateRepository) DownloadURL(ctx context.Context, id int64) (string, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("/certidoes/%d/download", id), nil
}

// Open streams the stored file of a certificate
func (r *CertificateRepository) Open(ctx context.Context, id int64) (io.ReadCloser, *models.Certificate, error) {
	certificate, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := r.files.Download(ctx, certificate.FileURL)
	if err != nil {
		return nil, nil, err
	}
	return reader, certificate, nil
}

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	certificate := &models.Certificate{}
	var fileURL, content *string
	err := row.Scan(
		&certificate.ID,
		&certificate.CreditorID,
		&certificate.Type,
		&certificate.Origin,
		&fileURL,
		&content,
		&certificate.Status,
		&certificate.ReceivedAt,
		&certificate.ValidUntil,
		&certificate.CreatedAt,
		&certificate.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if fileURL != nil {
		certificate.FileURL = *fileURL
	}
	if content != nil {
		certificate.ContentBase64 = *content
	}
	return certificate, nil
}

// nullable maps an empty string to SQL NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
