package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ecompjr/company-service/internal/domain"
	"github.com/ecompjr/company-service/internal/events"
	"github.com/ecompjr/company-service/internal/repository"
	apperrors "github.com/ecompjr/company-service/pkg/util/errorutil"
)

// CompanyService manages the company portfolio.
type CompanyService struct {
	companies  repository.CompanyRepository
	cache      CompanyCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// CompanyDependencies encapsulates collaborators for the company service.
type CompanyDependencies struct {
	CompanyRepo repository.CompanyRepository
	Cache       CompanyCache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewCompanyService constructs the service. Cache and Dispatcher are optional.
func NewCompanyService(deps CompanyDependencies) *CompanyService {
	svc := &CompanyService{
		companies:  deps.CompanyRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
	if svc.cache == nil {
		svc.cache = NewNoopCompanyCache()
	}
	if svc.dispatcher == nil {
		svc.dispatcher = events.NewInMemoryDispatcher(deps.Logger)
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Create registers a new company. CNPJ and contact email must be unused.
func (s *CompanyService) Create(ctx context.Context, actor *domain.Administrator, company *domain.Company) (*domain.Company, error) {
	if err := s.companies.Create(ctx, company); err != nil {
		if conflict, ok := repository.AsConflict(err); ok {
			return nil, companyConflict(conflict)
		}
		return nil, storageError(err)
	}
	s.publish(ctx, events.EventCompanyCreated, company.ID, actor)
	return company, nil
}

// List returns companies matching every non-empty filter field.
func (s *CompanyService) List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	companies, err := s.companies.List(ctx, filter)
	if err != nil {
		return nil, storageError(err)
	}
	return companies, nil
}

// Get fetches one company, consulting the cache first.
func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	if company, ok := s.cache.Get(ctx, id); ok {
		return company, nil
	}
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, companyLookupError(err, id)
	}
	s.cache.Set(ctx, company)
	return company, nil
}

// Update replaces the mutable fields of a company.
func (s *CompanyService) Update(ctx context.Context, actor *domain.Administrator, id int64, update domain.CompanyUpdate) (*domain.Company, error) {
	company, err := s.companies.Update(ctx, id, update)
	if err != nil {
		return nil, companyLookupError(err, id)
	}
	s.publish(ctx, events.EventCompanyUpdated, id, actor)
	return company, nil
}

// Delete removes a company.
func (s *CompanyService) Delete(ctx context.Context, actor *domain.Administrator, id int64) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		return companyLookupError(err, id)
	}
	s.publish(ctx, events.EventCompanyDeleted, id, actor)
	return nil
}

func (s *CompanyService) publish(ctx context.Context, eventType events.EventType, companyID int64, actor *domain.Administrator) {
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		CompanyID: companyID,
		Timestamp: s.now().UTC(),
	}
	if actor != nil {
		event.Actor = actor.Username
	}
	s.dispatcher.Publish(ctx, event)
}

func companyLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("company", map[string]any{"id": id})
	}
	return storageError(err)
}

func companyConflict(conflict *repository.ConflictError) error {
	switch conflict.Constraint {
	case repository.CompanyCNPJConstraint:
		return apperrors.NewConflict("CNPJ already registered", map[string]any{"field": "cnpj"})
	case repository.CompanyEmailConstraint:
		return apperrors.NewConflict("contact email already registered", map[string]any{"field": "email_contato"})
	default:
		return apperrors.NewConflict("company already registered", nil)
	}
}
