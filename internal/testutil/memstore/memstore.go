// Package memstore provides in-memory repositories for tests. They enforce
// the same unique constraints as the Postgres schema.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ecompjr/company-service/internal/domain"
	"github.com/ecompjr/company-service/internal/repository"
)

// Administrators is an in-memory repository.AdministratorRepository.
type Administrators struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]domain.Administrator
	err    error
}

// NewAdministrators returns an empty store.
func NewAdministrators() *Administrators {
	return &Administrators{byName: make(map[string]domain.Administrator)}
}

var _ repository.AdministratorRepository = (*Administrators)(nil)

// FailWith makes every subsequent call return err. Pass nil to recover.
func (s *Administrators) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Remove deletes an administrator by username.
func (s *Administrators) Remove(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byName, username)
}

// Len reports the number of stored administrators.
func (s *Administrators) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byName)
}

func (s *Administrators) Create(_ context.Context, admin *domain.Administrator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, taken := s.byName[admin.Username]; taken {
		return &repository.ConflictError{Constraint: repository.AdministratorUsernameConstraint}
	}
	s.nextID++
	admin.ID = s.nextID
	admin.CreatedAt = time.Now().UTC()
	s.byName[admin.Username] = *admin
	return nil
}

func (s *Administrators) GetByUsername(_ context.Context, username string) (*domain.Administrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	admin, ok := s.byName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &admin, nil
}

// Companies is an in-memory repository.CompanyRepository.
type Companies struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Company
	err    error
}

// NewCompanies returns an empty store.
func NewCompanies() *Companies {
	return &Companies{rows: make(map[int64]domain.Company)}
}

var _ repository.CompanyRepository = (*Companies)(nil)

// FailWith makes every subsequent call return err. Pass nil to recover.
func (s *Companies) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Companies) Create(_ context.Context, company *domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.rows {
		if existing.CNPJ == company.CNPJ {
			return &repository.ConflictError{Constraint: repository.CompanyCNPJConstraint}
		}
		if existing.ContactEmail == company.ContactEmail {
			return &repository.ConflictError{Constraint: repository.CompanyEmailConstraint}
		}
	}
	s.nextID++
	company.ID = s.nextID
	company.CreatedAt = time.Now().UTC()
	s.rows[company.ID] = *company
	return nil
}

func (s *Companies) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	company, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &company, nil
}

func (s *Companies) List(_ context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []domain.Company{}
	for _, company := range s.rows {
		if contains(company.City, filter.City) &&
			contains(company.Industry, filter.Industry) &&
			contains(company.Name, filter.Name) {
			out = append(out, company)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Companies) Update(_ context.Context, id int64, update domain.CompanyUpdate) (*domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	company, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	company.Name = update.Name
	company.City = update.City
	company.Industry = update.Industry
	company.Phone = update.Phone
	s.rows[id] = company
	return &company, nil
}

func (s *Companies) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func contains(value, pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}
