package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ecompjr/company-service/internal/api/dto"
	"github.com/ecompjr/company-service/internal/auth"
	"github.com/ecompjr/company-service/internal/domain"
	"github.com/ecompjr/company-service/internal/service"
	apperrors "github.com/ecompjr/company-service/pkg/util/errorutil"
)

// CompaniesHandler manages the /empresas endpoints.
type CompaniesHandler struct {
	service *service.CompanyService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companyService *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{service: companyService}
}

// Create POST /empresas.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	trimAll(&req.Name, &req.CNPJ, &req.City, &req.Industry, &req.Phone, &req.ContactEmail)
	if err := validateStruct(req); err != nil {
		return err
	}

	company, err := h.service.Create(c.UserContext(), actor(c), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCompanyResponse(company))
}

// List GET /empresas.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	var query dto.CompanyListQuery
	if err := c.QueryParser(&query); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	companies, err := h.service.List(c.UserContext(), query.ToDomain())
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.NewCompanyResponse(&companies[i]))
	}
	return c.JSON(items)
}

// Get GET /empresas/:id.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	company, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCompanyResponse(company))
}

// Update PUT /empresas/:id.
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCompanyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	trimAll(&req.Name, &req.City, &req.Industry, &req.Phone)
	if err := validateStruct(req); err != nil {
		return err
	}

	company, err := h.service.Update(c.UserContext(), actor(c), id, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCompanyResponse(company))
}

// Delete DELETE /empresas/:id.
func (h *CompaniesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actor(c), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func actor(c *fiber.Ctx) *domain.Administrator {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Administrator
	}
	return nil
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
