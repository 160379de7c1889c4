package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditorValidate(t *testing.T) {
	t.Run("valid creditor has no violations", func(t *testing.T) {
		creditor := Creditor{
			Name:  "João da Silva",
			TaxID: "12345678900",
			Email: "joao@email.com",
			Phone: "11999999999",
		}
		assert.Empty(t, creditor.Validate())
	})

	t.Run("accepts 14-digit CNPJ", func(t *testing.T) {
		creditor := Creditor{
			Name:  "Empresa Ltda",
			TaxID: "12345678000190",
			Email: "contato@empresa.com.br",
			Phone: "1133334444",
		}
		assert.Empty(t, creditor.Validate())
	})

	t.Run("every violated rule is reported", func(t *testing.T) {
		creditor := Creditor{
			Name:  "",
			TaxID: "123",
			Email: "email_invalido",
			Phone: "123",
		}
		violations := creditor.Validate()
		assert.Len(t, violations, 4)
	})

	t.Run("validate is idempotent", func(t *testing.T) {
		creditor := Creditor{TaxID: "123", Email: "nope", Phone: "1"}
		assert.Equal(t, creditor.Validate(), creditor.Validate())
	})
}

func TestPaymentOrderValidate(t *testing.T) {
	t.Run("valid order has no violations", func(t *testing.T) {
		order := PaymentOrder{
			CreditorID:      1,
			OrderNumber:     "0001234-56.2020.8.26.0050",
			NominalValue:    decimal.RequireFromString("50000.00"),
			Venue:           "TJSP",
			PublicationDate: time.Now(),
		}
		assert.Empty(t, order.Validate())
	})

	t.Run("every violated rule is reported", func(t *testing.T) {
		order := PaymentOrder{
			OrderNumber:  "123",
			NominalValue: decimal.Zero,
			Venue:        "",
		}
		violations := order.Validate()
		assert.Len(t, violations, 4)
	})

	t.Run("missing creditor linkage is not a violation", func(t *testing.T) {
		// The order is attached while its creditor is created, so the
		// linkage is deliberately unchecked here.
		order := PaymentOrder{
			OrderNumber:     "0001234-56.2020.8.26.0050",
			NominalValue:    decimal.NewFromInt(100),
			Venue:           "TJSP",
			PublicationDate: time.Now(),
		}
		assert.Empty(t, order.Validate())
	})

	t.Run("negative value is rejected", func(t *testing.T) {
		order := PaymentOrder{
			OrderNumber:     "0001234-56.2020.8.26.0050",
			NominalValue:    decimal.NewFromInt(-1),
			Venue:           "TJSP",
			PublicationDate: time.Now(),
		}
		violations := order.Validate()
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0], "greater than zero")
	})
}

func TestDocumentValidate(t *testing.T) {
	t.Run("valid document has no violations", func(t *testing.T) {
		document := Document{
			CreditorID:  1,
			Type:        DocumentTypeIdentity,
			FileURL:     "uploads/rg.pdf",
			SubmittedAt: time.Now(),
		}
		assert.Empty(t, document.Validate())
	})

	t.Run("every violated rule is reported", func(t *testing.T) {
		document := Document{
			Type: DocumentType("tipo_invalido"),
		}
		violations := document.Validate()
		assert.Len(t, violations, 4)
	})
}

func TestCertificateValidate(t *testing.T) {
	validUntil := time.Now().Add(30 * 24 * time.Hour)

	t.Run("valid certificate has no violations", func(t *testing.T) {
		certificate := Certificate{
			CreditorID:    1,
			Type:          CertificateTypeFederal,
			Origin:        CertificateOriginAPI,
			ContentBase64: "YmFzZTY0",
			Status:        CertificateStatusNegative,
			ReceivedAt:    time.Now(),
			ValidUntil:    &validUntil,
		}
		assert.Empty(t, certificate.Validate())
	})

	t.Run("file reference alone satisfies the either/or rule", func(t *testing.T) {
		certificate := Certificate{
			CreditorID: 1,
			Type:       CertificateTypeLabor,
			Origin:     CertificateOriginManual,
			FileURL:    "uploads/cert.pdf",
			Status:     CertificateStatusPending,
			ReceivedAt: time.Now(),
		}
		assert.Empty(t, certificate.Validate())
	})

	t.Run("every violated rule is reported", func(t *testing.T) {
		certificate := Certificate{
			Type:   CertificateType("tipo_invalido"),
			Origin: CertificateOrigin("origem_invalida"),
			Status: CertificateStatus("status_invalido"),
		}
		violations := certificate.Validate()
		assert.Len(t, violations, 6)
	})

	t.Run("validate is idempotent", func(t *testing.T) {
		certificate := Certificate{}
		assert.Equal(t, certificate.Validate(), certificate.Validate())
	})
}

func TestValidationError(t *testing.T) {
	t.Run("empty list yields nil error", func(t *testing.T) {
		assert.NoError(t, NewValidationError(nil))
	})

	t.Run("violations are preserved in order", func(t *testing.T) {
		err := NewValidationError([]string{"first", "second"})
		require.Error(t, err)

		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"first", "second"}, ve.Violations)
	})
}
