package dto

import (
	"time"

	"github.com/ecompjr/company-service/internal/domain"
)

// CreateCompanyRequest payload. Field names follow the frontend contract.
type CreateCompanyRequest struct {
	Name         string `json:"nome" validate:"required,max=255"`
	CNPJ         string `json:"cnpj" validate:"required,len=14,number"`
	City         string `json:"cidade" validate:"required,max=120"`
	Industry     string `json:"ramo_atuacao" validate:"required,max=120"`
	Phone        string `json:"telefone" validate:"required,max=20"`
	ContactEmail string `json:"email_contato" validate:"required,email,max=255"`
}

// ToDomain converts the payload into a new company record.
func (r CreateCompanyRequest) ToDomain() *domain.Company {
	return &domain.Company{
		Name:         r.Name,
		CNPJ:         r.CNPJ,
		City:         r.City,
		Industry:     r.Industry,
		Phone:        r.Phone,
		ContactEmail: r.ContactEmail,
	}
}

// UpdateCompanyRequest payload. CNPJ and contact email cannot change.
type UpdateCompanyRequest struct {
	Name     string `json:"nome" validate:"required,max=255"`
	City     string `json:"cidade" validate:"required,max=120"`
	Industry string `json:"ramo_atuacao" validate:"required,max=120"`
	Phone    string `json:"telefone" validate:"required,max=20"`
}

// ToDomain converts the payload into an update.
func (r UpdateCompanyRequest) ToDomain() domain.CompanyUpdate {
	return domain.CompanyUpdate{
		Name:     r.Name,
		City:     r.City,
		Industry: r.Industry,
		Phone:    r.Phone,
	}
}

// CompanyListQuery captures list filters.
type CompanyListQuery struct {
	Name     string `query:"nome"`
	City     string `query:"cidade"`
	Industry string `query:"ramo_atuacao"`
}

// ToDomain converts the query into a filter.
func (q CompanyListQuery) ToDomain() domain.CompanyFilter {
	return domain.CompanyFilter{Name: q.Name, City: q.City, Industry: q.Industry}
}

// CompanyResponse is the wire form of a company.
type CompanyResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nome"`
	CNPJ         string    `json:"cnpj"`
	City         string    `json:"cidade"`
	Industry     string    `json:"ramo_atuacao"`
	Phone        string    `json:"telefone"`
	ContactEmail string    `json:"email_contato"`
	CreatedAt    time.Time `json:"data_cadastro"`
}

// NewCompanyResponse maps a domain company.
func NewCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:           company.ID,
		Name:         company.Name,
		CNPJ:         company.CNPJ,
		City:         company.City,
		Industry:     company.Industry,
		Phone:        company.Phone,
		ContactEmail: company.ContactEmail,
		CreatedAt:    company.CreatedAt,
	}
}
