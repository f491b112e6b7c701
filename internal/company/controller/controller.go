// Package controller implements the core business logic (service layer)
// for managing Company entities, orchestrating repository operations
// and sending relevant events.
package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/hiringboard/internal/company/errors"
	"github.com/gartstein/hiringboard/internal/company/events"
	"github.com/gartstein/hiringboard/internal/company/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(eventType events.EventType, company *models.Company)
}

// Repository defines the storage interface for Company objects.
type Repository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	GetCompanyByName(ctx context.Context, name string) (*models.Company, error)
	UpdateCompany(ctx context.Context, company *models.Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	CompanyExistsByName(ctx context.Context, name string) (bool, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CompanyService provides methods to manage companies via repository
// operations and event production.
type CompanyService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
	validate *validator.Validate
}

// NewCompanyService constructs a CompanyService with a repository,
// an event producer, and a logger.
func NewCompanyService(repo Repository, producer EventProducer, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("company_service"),
		validate: newValidator(),
	}
}

// ListCompanies returns every stored company in creation order.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// CreateCompany applies defaults, validates the fields, and inserts the
// company if its name is free. The name check and the insert share one
// transaction.
func (s *CompanyService) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	company.Normalize()
	company.ApplyDefaults()
	if err := s.validateCompany(company); err != nil {
		return nil, err
	}

	err := s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.CompanyExistsByName(ctx, company.Name)
		if err != nil {
			return fmt.Errorf("failed to check name existence: %w", err)
		}
		if exists {
			return e.ErrDuplicateName
		}

		company.ID = uuid.New()
		if err := s.repo.CreateCompany(ctx, company); err != nil {
			if errors.Is(err, e.ErrDuplicateName) {
				return err
			}
			return fmt.Errorf("failed to create company: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("company created", zap.String("company", company.Name))
	s.publish(events.CompanyCreated, company)
	return company, nil
}

// GetCompany retrieves a Company by name, returning an error if not found.
func (s *CompanyService) GetCompany(ctx context.Context, name string) (*models.Company, error) {
	company, err := s.repo.GetCompanyByName(ctx, name)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// UpdateCompany applies a partial update to the company called name.
// Supplied fields follow the same rules as on create, and a rename must
// not collide with another company.
func (s *CompanyService) UpdateCompany(ctx context.Context, name string, update *models.CompanyUpdate) (*models.Company, error) {
	if update == nil {
		return nil, fmt.Errorf("%w: nil update", e.ErrInvalidInput)
	}

	var updated *models.Company
	err := s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetCompanyByName(ctx, name)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return err
			}
			return fmt.Errorf("failed to get company for update: %w", err)
		}

		update.Apply(current)
		current.Normalize()
		if err := s.validateCompany(current); err != nil {
			return err
		}

		if current.Name != name {
			exists, err := s.repo.CompanyExistsByName(ctx, current.Name)
			if err != nil {
				return fmt.Errorf("failed to check name existence: %w", err)
			}
			if exists {
				return e.ErrDuplicateName
			}
		}

		if err := s.repo.UpdateCompany(ctx, current); err != nil {
			if errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrDuplicateName) {
				return err
			}
			return fmt.Errorf("failed to update company: %w", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.CompanyUpdated, updated)
	return updated, nil
}

// DeleteCompany removes a Company by name and fires a deletion event.
func (s *CompanyService) DeleteCompany(ctx context.Context, name string) error {
	var deleted *models.Company
	err := s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		company, err := s.repo.GetCompanyByName(ctx, name)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return err
			}
			return fmt.Errorf("failed to get company for deletion: %w", err)
		}

		if err := s.repo.DeleteCompany(ctx, company.ID); err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return err
			}
			return fmt.Errorf("failed to delete company: %w", err)
		}
		deleted = company
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("company deleted", zap.String("company", name))
	s.publish(events.CompanyDeleted, deleted)
	return nil
}

// publish hands a snapshot of company to the producer without blocking the caller.
func (s *CompanyService) publish(eventType events.EventType, company *models.Company) {
	snapshot := *company
	go func() {
		s.producer.Produce(eventType, &snapshot)
	}()
}
