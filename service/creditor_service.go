package service

import (
	"context"
	"errors"

	"precatorio-backend/models"
	"precatorio-backend/repository"
)

// CreditorService handles business logic for creditors and their payment orders
type CreditorService struct {
	creditorRepo *repository.CreditorRepository
}

// CreditorServiceOption is a functional option for CreditorService
type CreditorServiceOption func(*CreditorService)

// WithCreditorRepository sets the creditor repository
func WithCreditorRepository(repo *repository.CreditorRepository) CreditorServiceOption {
	return func(s *CreditorService) {
		s.creditorRepo = repo
	}
}

// NewCreditorService creates a new creditor service
func NewCreditorService(opts ...CreditorServiceOption) *CreditorService {
	s := &CreditorService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCreditorRequest represents a request to register a creditor with its
// first payment order
type CreateCreditorRequest struct {
	Creditor models.Creditor
	Order    models.PaymentOrder
}

// CreateCreditorResult represents the result of registering a creditor
type CreateCreditorResult struct {
	Creditor *models.Creditor
	Order    *models.PaymentOrder
}

// CreateWithOrder validates the creditor and its order, then persists both
// in one logical operation. Validation failures carry the full violation
// list; a duplicate tax id or order number surfaces as a conflict error.
func (s *CreditorService) CreateWithOrder(ctx context.Context, req CreateCreditorRequest) (*CreateCreditorResult, error) {
	if s.creditorRepo == nil {
		return nil, errors.New("creditor repository not set")
	}

	if err := models.NewValidationError(req.Creditor.Validate()); err != nil {
		return nil, err
	}
	if err := models.NewValidationError(req.Order.Validate()); err != nil {
		return nil, err
	}

	creditor := req.Creditor
	order := req.Order
	if err := s.creditorRepo.Create(ctx, &creditor, &order); err != nil {
		return nil, err
	}

	return &CreateCreditorResult{Creditor: &creditor, Order: &order}, nil
}

// GetDetails retrieves the aggregated read model for a creditor
func (s *CreditorService) GetDetails(ctx context.Context, id int64) (*models.CreditorDetails, error) {
	if s.creditorRepo == nil {
		return nil, errors.New("creditor repository not set")
	}
	return s.creditorRepo.GetDetails(ctx, id)
}

// List retrieves all creditors
func (s *CreditorService) List(ctx context.Context) ([]*models.Creditor, error) {
	if s.creditorRepo == nil {
		return nil, errors.New("creditor repository not set")
	}
	return s.creditorRepo.ListAll(ctx)
}

// Update validates and persists changed creditor fields
func (s *CreditorService) Update(ctx context.Context, creditor *models.Creditor) error {
	if s.creditorRepo == nil {
		return errors.New("creditor repository not set")
	}

	if err := models.NewValidationError(creditor.Validate()); err != nil {
		return err
	}
	return s.creditorRepo.Update(ctx, creditor)
}

// Delete removes a creditor; dependent rows cascade in the storage layer
func (s *CreditorService) Delete(ctx context.Context, id int64) error {
	if s.creditorRepo == nil {
		return errors.New("creditor repository not set")
	}
	return s.creditorRepo.Delete(ctx, id)
}
