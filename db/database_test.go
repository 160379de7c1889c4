package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	duplicateTaxID := &pgconn.PgError{Code: "23505", ConstraintName: "creditors_tax_id_key"}

	t.Run("matches the named constraint", func(t *testing.T) {
		assert.True(t, IsUniqueViolation(duplicateTaxID, "creditors_tax_id_key"))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("failed to insert creditor: %w", duplicateTaxID)
		assert.True(t, IsUniqueViolation(wrapped, "creditors_tax_id_key"))
	})

	t.Run("a different constraint does not match", func(t *testing.T) {
		duplicateOrder := &pgconn.PgError{Code: "23505", ConstraintName: "payment_orders_order_number_key"}
		assert.False(t, IsUniqueViolation(duplicateOrder, "creditors_tax_id_key"))
		assert.True(t, IsUniqueViolation(duplicateOrder, "payment_orders_order_number_key"))
	})

	t.Run("other postgres errors do not match", func(t *testing.T) {
		notNull := &pgconn.PgError{Code: "23502", ConstraintName: "creditors_tax_id_key"}
		assert.False(t, IsUniqueViolation(notNull, "creditors_tax_id_key"))
	})

	t.Run("plain errors do not match", func(t *testing.T) {
		assert.False(t, IsUniqueViolation(errors.New("connection refused"), "creditors_tax_id_key"))
		assert.False(t, IsUniqueViolation(nil, "creditors_tax_id_key"))
	})
}
