package models

import "time"

// CertificateType represents the jurisdiction a clearance certificate covers
type CertificateType string

const (
	CertificateTypeFederal   CertificateType = "federal"
	CertificateTypeState     CertificateType = "state"
	CertificateTypeMunicipal CertificateType = "municipal"
	CertificateTypeLabor     CertificateType = "labor"
)

// CertificateTypes returns all jurisdiction types in lookup order
func CertificateTypes() []CertificateType {
	return []CertificateType{
		CertificateTypeFederal,
		CertificateTypeState,
		CertificateTypeMunicipal,
		CertificateTypeLabor,
	}
}

// IsValid reports whether the type is one of the declared enumerants
func (t CertificateType) IsValid() bool {
	switch t {
	case CertificateTypeFederal, CertificateTypeState, CertificateTypeMunicipal, CertificateTypeLabor:
		return true
	}
	return false
}

// CertificateOrigin distinguishes manually uploaded certificates from
// ones fetched through the clearance client
type CertificateOrigin string

const (
	CertificateOriginManual CertificateOrigin = "manual"
	CertificateOriginAPI    CertificateOrigin = "api"
)

// IsValid reports whether the origin is one of the declared enumerants
func (o CertificateOrigin) IsValid() bool {
	return o == CertificateOriginManual || o == CertificateOriginAPI
}

// CertificateStatus represents the clearance result carried by a certificate
type CertificateStatus string

const (
	CertificateStatusNegative CertificateStatus = "negative"
	CertificateStatusPositive CertificateStatus = "positive"
	CertificateStatusInvalid  CertificateStatus = "invalid"
	CertificateStatusPending  CertificateStatus = "pending"
)

// CertificateStatuses returns all statuses in declaration order
func CertificateStatuses() []CertificateStatus {
	return []CertificateStatus{
		CertificateStatusNegative,
		CertificateStatusPositive,
		CertificateStatusInvalid,
		CertificateStatusPending,
	}
}

// IsValid reports whether the status is one of the declared enumerants
func (s CertificateStatus) IsValid() bool {
	switch s {
	case CertificateStatusNegative, CertificateStatusPositive, CertificateStatusInvalid, CertificateStatusPending:
		return true
	}
	return false
}

// Certificate represents a tax/labor clearance record with a status and
// an expiration window
type Certificate struct {
	ID            int64             `json:"id"`
	CreditorID    int64             `json:"credor_id"`
	Type          CertificateType   `json:"tipo"`
	Origin        CertificateOrigin `json:"origem"`
	FileURL       string            `json:"arquivo_url,omitempty"`
	ContentBase64 string            `json:"conteudo_base64,omitempty"`
	Status        CertificateStatus `json:"status"`
	ReceivedAt    time.Time         `json:"recebida_em"`
	ValidUntil    *time.Time        `json:"valida_ate,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CertificateAllowedExtensions lists the file extensions accepted for
// manually uploaded certificates
func CertificateAllowedExtensions() []string {
	return []string{".pdf"}
}

// CertificateMaxFileSize is the maximum accepted certificate size in bytes (5 MiB)
const CertificateMaxFileSize = 5 * 1024 * 1024

// HasFileOrContent reports whether the certificate carries a stored file
// reference or inline base64 content. At least one is required; both is fine.
func (c *Certificate) HasFileOrContent() bool {
	return c.FileURL != "" || c.ContentBase64 != ""
}

// IsCurrentlyValid reports whether the certificate is inside its validity
// window: ValidUntil must be set and strictly in the future.
func (c *Certificate) IsCurrentlyValid() bool {
	if c.ValidUntil == nil {
		return false
	}
	return time.Now().Before(*c.ValidUntil)
}

// Validate returns the list of violated rules. All rules are evaluated;
// an empty list means the certificate is valid.
func (c *Certificate) Validate() []string {
	var violations []string

	if c.CreditorID == 0 {
		violations = append(violations, "creditor is required")
	}
	if !c.Type.IsValid() {
		violations = append(violations, "certificate type is invalid")
	}
	if !c.Origin.IsValid() {
		violations = append(violations, "certificate origin is invalid")
	}
	if !c.HasFileOrContent() {
		violations = append(violations, "either a file reference or base64 content is required")
	}
	if !c.Status.IsValid() {
		violations = append(violations, "certificate status is invalid")
	}
	if c.ReceivedAt.IsZero() {
		violations = append(violations, "received date is required")
	}

	return violations
}
