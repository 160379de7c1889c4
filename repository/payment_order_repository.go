package repository

import (
	"context"
	"fmt"

	"precatorio-backend/db"
	"precatorio-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PaymentOrderRepository handles database operations for payment orders
type PaymentOrderRepository struct {
	db *db.DB
}

// NewPaymentOrderRepository creates a new payment order repository
func NewPaymentOrderRepository(database *db.DB) *PaymentOrderRepository {
	return &PaymentOrderRepository{db: database}
}

const paymentOrderColumns = `id, creditor_id, order_number, nominal_value::text, venue, publication_date, created_at, updated_at`

// Create inserts a payment order for an existing creditor
func (r *PaymentOrderRepository) Create(ctx context.Context, order *models.PaymentOrder) error {
	query := `
		INSERT INTO payment_orders (creditor_id, order_number, nominal_value, venue, publication_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	id, err := r.db.Insert(ctx, query,
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
	order.ID = id
	return nil
}

// GetByID retrieves a payment order by ID
func (r *PaymentOrderRepository) GetByID(ctx context.Context, id int64) (*models.PaymentOrder, error) {
	query := `SELECT ` + paymentOrderColumns + ` FROM payment_orders WHERE id = $1`

	order, err := scanPaymentOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetByOrderNumber retrieves a payment order by its unique number
func (r *PaymentOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.PaymentOrder, error) {
	query := `SELECT ` + paymentOrderColumns + ` FROM payment_orders WHERE order_number = $1`

	order, err := scanPaymentOrder(r.db.QueryRow(ctx, query, orderNumber))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListByCreditor retrieves all payment orders of a creditor
func (r *PaymentOrderRepository) ListByCreditor(ctx context.Context, creditorID int64) ([]*models.PaymentOrder, error) {
	query := `SELECT ` + paymentOrderColumns + ` FROM payment_orders WHERE creditor_id = $1 ORDER BY id`
	return r.list(ctx, query, creditorID)
}

// ListByVenue retrieves all payment orders issued by a venue
func (r *PaymentOrderRepository) ListByVenue(ctx context.Context, venue string) ([]*models.PaymentOrder, error) {
	query := `SELECT ` + paymentOrderColumns + ` FROM payment_orders WHERE venue = $1 ORDER BY id`
	return r.list(ctx, query, venue)
}

// ListAll retrieves all payment orders
func (r *PaymentOrderRepository) ListAll(ctx context.Context) ([]*models.PaymentOrder, error) {
	query := `SELECT ` + paymentOrderColumns + ` FROM payment_orders ORDER BY id`
	return r.list(ctx, query)
}

func (r *PaymentOrderRepository) list(ctx context.Context, query string, args ...any) ([]*models.PaymentOrder, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.PaymentOrder
	for rows.Next() {
		order, err := scanPaymentOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// Update updates a payment order
func (r *PaymentOrderRepository) Update(ctx context.Context, order *models.PaymentOrder) error {
	query := `
		UPDATE payment_orders SET
			creditor_id = $2,
			order_number = $3,
			nominal_value = $4,
			venue = $5,
			publication_date = $6,
			updated_at = NOW()
		WHERE id = $1`

	affected, err := r.db.Exec(ctx, query,
		order.ID,
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
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete deletes a payment order
func (r *PaymentOrderRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM payment_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// scanPaymentOrder expects nominal_value selected as text so the monetary
// amount round-trips through decimal without touching floating point
func scanPaymentOrder(row pgx.Row) (*models.PaymentOrder, error) {
	order := &models.PaymentOrder{}
	var value string
	err := row.Scan(
		&order.ID,
		&order.CreditorID,
		&order.OrderNumber,
		&value,
		&order.Venue,
		&order.PublicationDate,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.NominalValue, err = decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid nominal value %q: %w", value, err)
	}
	return order, nil
}
