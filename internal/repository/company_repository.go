package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ecompjr/company-service/internal/domain"
)

// Unique constraints on companies.
const (
	CompanyCNPJConstraint  = "companies_cnpj_key"
	CompanyEmailConstraint = "companies_contact_email_key"
)

// CompanyRepository encapsulates company persistence.
type CompanyRepository interface {
	// Create inserts the company and fills ID and CreatedAt. A taken CNPJ or
	// contact email yields a *ConflictError naming the constraint.
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error)
	Update(ctx context.Context, id int64, update domain.CompanyUpdate) (*domain.Company, error)
	Delete(ctx context.Context, id int64) error
}

type companyRepository struct {
	db DBTX
}

// NewCompanyRepository instantiates repository.
func NewCompanyRepository(db DBTX) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, cnpj, city, industry, phone, contact_email, created_at`

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (name, cnpj, city, industry, phone, contact_email)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		company.Name,
		company.CNPJ,
		company.City,
		company.Industry,
		company.Phone,
		company.ContactEmail,
	).Scan(&company.ID, &company.CreatedAt)
	return mapError(err)
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id=$1`
	company, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return company, nil
}

func (r *companyRepository) List(ctx context.Context, filter domain.CompanyFilter) ([]domain.Company, error) {
	clauses := []string{"1=1"}
	args := []any{}

	addLike := func(column, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		args = append(args, "%"+escapeLike(value)+"%")
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}
	addLike("city", filter.City)
	addLike("industry", filter.Industry)
	addLike("name", filter.Name)

	query := fmt.Sprintf(`SELECT %s FROM companies WHERE %s ORDER BY id`,
		companyColumns, strings.Join(clauses, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *company)
	}
	return result, rows.Err()
}

func (r *companyRepository) Update(ctx context.Context, id int64, update domain.CompanyUpdate) (*domain.Company, error) {
	query := `
        UPDATE companies SET name=$1, city=$2, industry=$3, phone=$4
        WHERE id=$5
        RETURNING ` + companyColumns
	company, err := scanCompany(r.db.QueryRow(ctx, query,
		update.Name,
		update.City,
		update.Industry,
		update.Phone,
		id,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return company, nil
}

func (r *companyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var company domain.Company
	if err := row.Scan(
		&company.ID,
		&company.Name,
		&company.CNPJ,
		&company.City,
		&company.Industry,
		&company.Phone,
		&company.ContactEmail,
		&company.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
