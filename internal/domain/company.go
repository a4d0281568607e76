package domain

import "time"

// Company is a client company in the portfolio. CNPJ and ContactEmail are
// unique and fixed at creation.
type Company struct {
	ID           int64
	Name         string
	CNPJ         string
	City         string
	Industry     string
	Phone        string
	ContactEmail string
	CreatedAt    time.Time
}

// CompanyFilter narrows a company listing. Empty fields are ignored; set
// fields match as case-insensitive substrings.
type CompanyFilter struct {
	Name     string
	City     string
	Industry string
}

// CompanyUpdate carries the mutable company fields.
type CompanyUpdate struct {
	Name     string
	City     string
	Industry string
	Phone    string
}
