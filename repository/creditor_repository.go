package repository

import (
	"context"
	"fmt"

	"precatorio-backend/db"
	"precatorio-backend/models"

	"github.com/jackc/pgx/v5"
)

// CreditorRepository handles database operations for creditors
type CreditorRepository struct {
	db *db.DB
}

// NewCreditorRepository creates a new creditor repository
func NewCreditorRepository(database *db.DB) *CreditorRepository {
	return &CreditorRepository{db: database}
}

// Create inserts a creditor together with its first payment order. The two
// inserts run on separate connections; a crash between them leaves an
// orphaned creditor (documented limitation, no cross-statement transaction).
// A duplicate tax id or order number is reported by the unique constraint,
// not by a pre-read, so concurrent creates cannot race past the check.
func (r *CreditorRepository) Create(ctx context.Context, creditor *models.Creditor, order *models.PaymentOrder) error {
	creditorQuery := `
		INSERT INTO creditors (name, tax_id, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	id, err := r.db.Insert(ctx, creditorQuery, creditor.Name, creditor.TaxID, creditor.Email, creditor.Phone)
	if err != nil {
		if db.IsUniqueViolation(err, "creditors_tax_id_key") {
			return models.ErrDuplicateTaxID
		}
		return fmt.Errorf("failed to insert creditor: %w", err)
	}
	creditor.ID = id

	orderQuery := `
		INSERT INTO payment_orders (creditor_id, order_number, nominal_value, venue, publication_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	order.CreditorID = id
	orderID, err := r.db.Insert(ctx, orderQuery,
		order.CreditorID,
		order.OrderNumber,
		order.NominalValue.String(),
		order.Venue,
		order.PublicationDate,
	)
	if err != nil {
		if db.IsUniqueViolation(err, "payment_orders_order_number_key") {
			return models.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("failed to insert payment order: %w", err)
	}
	order.ID = orderID

	return nil
}

// GetByID retrieves a creditor by ID
func (r *CreditorRepository) GetByID(ctx context.Context, id int64) (*models.Creditor, error) {
	query := `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM creditors
		WHERE id = $1`

	creditor, err := scanCreditor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return creditor, nil
}

// GetByTaxID retrieves a creditor by tax id
func (r *CreditorRepository) GetByTaxID(ctx context.Context, taxID string) (*models.Creditor, error) {
	query := `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM creditors
		WHERE tax_id = $1`

	creditor, err := scanCreditor(r.db.QueryRow(ctx, query, taxID))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return creditor, nil
}

// ListAll retrieves all creditors
func (r *CreditorRepository) ListAll(ctx context.Context) ([]*models.Creditor, error) {
	query := `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM creditors
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creditors []*models.Creditor
	for rows.Next() {
		creditor, err := scanCreditor(rows)
		if err != nil {
			return nil, err
		}
		creditors = append(creditors, creditor)
	}

	return creditors, rows.Err()
}

// GetDetails aggregates a creditor with its payment order, documents and
// certificates into one read model. Returns ErrNotFound if the creditor
// itself does not exist; at most one payment order is expected.
func (r *CreditorRepository) GetDetails(ctx context.Context, id int64) (*models.CreditorDetails, error) {
	creditor, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &models.CreditorDetails{Creditor: *creditor}

	orderQuery := `
		SELECT id, creditor_id, order_number, nominal_value::text, venue, publication_date, created_at, updated_at
		FROM payment_orders
		WHERE creditor_id = $1`

	order, err := scanPaymentOrder(r.db.QueryRow(ctx, orderQuery, id))
	if err != nil && !db.IsNoRows(err) {
		return nil, err
	}
	if err == nil {
		details.PaymentOrder = order
	}

	docQuery := `
		SELECT id, creditor_id, type, file_url, submitted_at, created_at, updated_at
		FROM documents
		WHERE creditor_id = $1
		ORDER BY id`

	docRows, err := r.db.Query(ctx, docQuery, id)
	if err != nil {
		return nil, err
	}
	defer docRows.Close()
	for docRows.Next() {
		doc, err := scanDocument(docRows)
		if err != nil {
			return nil, err
		}
		details.Documents = append(details.Documents, *doc)
	}
	if err := docRows.Err(); err != nil {
		return nil, err
	}

	certQuery := `
		SELECT id, creditor_id, type, origin, file_url, content_base64, status, received_at, valid_until, created_at, updated_at
		FROM certificates
		WHERE creditor_id = $1
		ORDER BY id`

	certRows, err := r.db.Query(ctx, certQuery, id)
	if err != nil {
		return nil, err
	}
	defer certRows.Close()
	for certRows.Next() {
		cert, err := scanCertificate(certRows)
		if err != nil {
			return nil, err
		}
		details.Certificates = append(details.Certificates, *cert)
	}

	return details, certRows.Err()
}

// Update updates a creditor's fields
func (r *CreditorRepository) Update(ctx context.Context, creditor *models.Creditor) error {
	query := `
		UPDATE creditors SET
			name = $2,
			tax_id = $3,
			email = $4,
			phone = $5,
			updated_at = NOW()
		WHERE id = $1`

	affected, err := r.db.Exec(ctx, query, creditor.ID, creditor.Name, creditor.TaxID, creditor.Email, creditor.Phone)
	if err != nil {
		if db.IsUniqueViolation(err, "creditors_tax_id_key") {
			return models.ErrDuplicateTaxID
		}
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete deletes a creditor; payment orders, documents and certificates
// follow through the storage layer's ON DELETE CASCADE
func (r *CreditorRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM creditors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanCreditor(row pgx.Row) (*models.Creditor, error) {
	creditor := &models.Creditor{}
	err := row.Scan(
		&creditor.ID,
		&creditor.Name,
		&creditor.TaxID,
		&creditor.Email,
		&creditor.Phone,
		&creditor.CreatedAt,
		&creditor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return creditor, nil
}
