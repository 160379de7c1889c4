package models

import "time"

// DocumentType represents the kind of supporting document
type DocumentType string

const (
	DocumentTypeIdentity  DocumentType = "identity"
	DocumentTypeResidence DocumentType = "residence_proof"
	DocumentTypeOther     DocumentType = "other"
)

// IsValid reports whether the type is one of the declared enumerants
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeIdentity, DocumentTypeResidence, DocumentTypeOther:
		return true
	}
	return false
}

// Document represents a supporting identity/residence file tied to a creditor
type Document struct {
	ID          int64        `json:"id"`
	CreditorID  int64        `json:"credor_id"`
	Type        DocumentType `json:"tipo"`
	FileURL     string       `json:"arquivo_url"`
	SubmittedAt time.Time    `json:"enviado_em"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// DocumentAllowedExtensions lists the file extensions accepted for documents
func DocumentAllowedExtensions() []string {
	return []string{".pdf", ".jpg", ".jpeg", ".png"}
}

// DocumentMaxFileSize is the maximum accepted document size in bytes (10 MiB)
const DocumentMaxFileSize = 10 * 1024 * 1024

// Validate returns the list of violated rules. All rules are evaluated;
// an empty list means the document is valid.
func (d *Document) Validate() []string {
	var violations []string

	if d.CreditorID == 0 {
		violations = append(violations, "creditor is required")
	}
	if !d.Type.IsValid() {
		violations = append(violations, "document type is invalid")
	}
	if d.FileURL == "" {
		violations = append(violations, "file reference is required")
	}
	if d.SubmittedAt.IsZero() {
		violations = append(violations, "submission date is required")
	}

	return violations
}
