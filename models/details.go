package models

// CreditorDetails is the aggregated read model for a creditor: the creditor
// itself, its payment order (at most one in this design), and every attached
// document and certificate.
type CreditorDetails struct {
	Creditor     Creditor      `json:"credor"`
	PaymentOrder *PaymentOrder `json:"precatorio,omitempty"`
	Documents    []Document    `json:"documentos"`
	Certificates []Certificate `json:"certidoes"`
}
