package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precatorio-backend/models"
	"precatorio-backend/repository"
)

func validCreateRequest() CreateCreditorRequest {
	return CreateCreditorRequest{
		Creditor: models.Creditor{
			Name:  "João da Silva",
			TaxID: "12345678900",
			Email: "joao@email.com",
			Phone: "11999999999",
		},
		Order: models.PaymentOrder{
			OrderNumber:     "0001234-56.2020.8.26.0050",
			NominalValue:    decimal.RequireFromString("50000.00"),
			Venue:           "TJSP",
			PublicationDate: time.Now(),
		},
	}
}

func TestCreateWithOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("missing repository is an error", func(t *testing.T) {
		svc := NewCreditorService()
		_, err := svc.CreateWithOrder(ctx, validCreateRequest())
		assert.EqualError(t, err, "creditor repository not set")
	})

	t.Run("invalid creditor fails before anything is written", func(t *testing.T) {
		// The repository has no live database behind it; validation must
		// reject the request before the write path is reached.
		svc := NewCreditorService(
			WithCreditorRepository(repository.NewCreditorRepository(nil)),
		)

		req := validCreateRequest()
		req.Creditor = models.Creditor{}

		_, err := svc.CreateWithOrder(ctx, req)
		require.Error(t, err)

		ve, ok := models.AsValidationError(err)
		require.True(t, ok)
		assert.Len(t, ve.Violations, 4)
	})

	t.Run("invalid order fails before anything is written", func(t *testing.T) {
		svc := NewCreditorService(
			WithCreditorRepository(repository.NewCreditorRepository(nil)),
		)

		req := validCreateRequest()
		req.Order.NominalValue = decimal.Zero

		_, err := svc.CreateWithOrder(ctx, req)
		require.Error(t, err)

		ve, ok := models.AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Violations[0], "greater than zero")
	})
}

func TestCertificateServiceGuards(t *testing.T) {
	t.Run("missing dependencies is an error", func(t *testing.T) {
		svc := NewCertificateService()
		_, err := svc.FetchFromClearance(context.Background(), 1)
		assert.EqualError(t, err, "certificate service dependencies not set")
	})
}
