package service

import (
	"context"
	"errors"
	"time"

	"precatorio-backend/clearance"
	"precatorio-backend/models"
	"precatorio-backend/repository"
)

// CertificateService orchestrates clearance lookups against the certificate
// and creditor repositories
type CertificateService struct {
	certificateRepo *repository.CertificateRepository
	creditorRepo    *repository.CreditorRepository
	client          *clearance.Client
}

// CertificateServiceOption is a functional option for CertificateService
type CertificateServiceOption func(*CertificateService)

// WithCertificateRepository sets the certificate repository
func WithCertificateRepository(repo *repository.CertificateRepository) CertificateServiceOption {
	return func(s *CertificateService) {
		s.certificateRepo = repo
	}
}

// CertificateWithCreditorRepository sets the creditor repository
func CertificateWithCreditorRepository(repo *repository.CreditorRepository) CertificateServiceOption {
	return func(s *CertificateService) {
		s.creditorRepo = repo
	}
}

// WithClearanceClient sets the clearance authority client
func WithClearanceClient(client *clearance.Client) CertificateServiceOption {
	return func(s *CertificateService) {
		s.client = client
	}
}

// NewCertificateService creates a new certificate service
func NewCertificateService(opts ...CertificateServiceOption) *CertificateService {
	s := &CertificateService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchFromClearanceResult represents the outcome of a clearance fetch
type FetchFromClearanceResult struct {
	Results      []clearance.LookupResult
	Certificates []*models.Certificate
}

// FetchFromClearance looks the creditor's tax id up at the clearance
// authority and stores one API-origin certificate per jurisdiction type.
// The creditor existence check runs before anything is written.
func (s *CertificateService) FetchFromClearance(ctx context.Context, creditorID int64) (*FetchFromClearanceResult, error) {
	if s.certificateRepo == nil || s.creditorRepo == nil || s.client == nil {
		return nil, errors.New("certificate service dependencies not set")
	}

	creditor, err := s.creditorRepo.GetByID(ctx, creditorID)
	if err != nil {
		return nil, err
	}

	results := s.client.Lookup(creditor.TaxID)
	now := time.Now()
	validUntil := now.Add(repository.DefaultValidity)

	stored := make([]*models.Certificate, 0, len(results))
	for _, result := range results {
		certificate := &models.Certificate{
			CreditorID:    creditorID,
			Type:          result.Type,
			Origin:        models.CertificateOriginAPI,
			ContentBase64: result.ContentBase64,
			Status:        result.Status,
			ReceivedAt:    now,
			ValidUntil:    &validUntil,
		}

		if err := s.certificateRepo.Create(ctx, certificate, nil, "", 0); err != nil {
			return nil, err
		}
		stored = append(stored, certificate)
	}

	return &FetchFromClearanceResult{Results: results, Certificates: stored}, nil
}
