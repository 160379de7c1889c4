package models

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Judicial numbering format: XXXXXXX-XX.XXXX.X.XX.XXXX
var orderNumberPattern = regexp.MustCompile(`^\d{7}-\d{2}\.\d{4}\.\d\.\d{2}\.\d{4}$`)

// PaymentOrder represents a judicially-recognized payment obligation ("precatório")
type PaymentOrder struct {
	ID              int64           `json:"id"`
	CreditorID      int64           `json:"credor_id"`
	OrderNumber     string          `json:"numero_precatorio"`
	NominalValue    decimal.Decimal `json:"valor_nominal"`
	Venue           string          `json:"foro"`
	PublicationDate time.Time       `json:"data_publicacao"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ValidOrderNumber checks the order number against the judicial numbering format
func (p *PaymentOrder) ValidOrderNumber() bool {
	return orderNumberPattern.MatchString(p.OrderNumber)
}

// ValidNominalValue checks that the nominal value is strictly positive
func (p *PaymentOrder) ValidNominalValue() bool {
	return p.NominalValue.IsPositive()
}

// Validate returns the list of violated rules. All rules are evaluated;
// an empty list means the order is valid. Creditor linkage is deliberately
// not checked here: the order is attached while its creditor is created.
func (p *PaymentOrder) Validate() []string {
	var violations []string

	if !p.ValidOrderNumber() {
		violations = append(violations, "order number does not match format NNNNNNN-NN.NNNN.N.NN.NNNN")
	}
	if !p.ValidNominalValue() {
		violations = append(violations, "nominal value must be greater than zero")
	}
	if p.Venue == "" {
		violations = append(violations, "venue is required")
	}
	if p.PublicationDate.IsZero() {
		violations = append(violations, "publication date is required")
	}

	return violations
}
