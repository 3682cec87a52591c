package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/metering-service/internal/api/dto"
	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/service"
)

// CompaniesHandler exposes company CRUD endpoints.
type CompaniesHandler struct {
	companies *service.CompanyService
}

// NewCompaniesHandler constructs the handler.
func NewCompaniesHandler(companies *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{companies: companies}
}

// Create handles POST /api/v1/companies.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	company := companyFromRequest(req)
	if err := h.companies.Create(c.UserContext(), company); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": companyResponse(company)})
}

// Update handles PUT /api/v1/companies/:id.
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	company := companyFromRequest(req)
	company.ID = c.Params("id")
	if err := h.companies.Update(c.UserContext(), company); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": companyResponse(company)})
}

// Delete handles DELETE /api/v1/companies/:id.
func (h *CompaniesHandler) Delete(c *fiber.Ctx) error {
	if err := h.companies.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Get handles GET /api/v1/companies/:id.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	company, err := h.companies.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": companyResponse(company)})
}

// List handles GET /api/v1/companies.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	companies, err := h.companies.List(c.UserContext(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}

	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, companyResponse(company))
	}
	return c.JSON(fiber.Map{"data": out})
}

func companyFromRequest(req dto.CompanyRequest) *domain.Company {
	return &domain.Company{
		Name:         req.Name,
		TaxID:        req.TaxID,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
	}
}

func companyResponse(company *domain.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:           company.ID,
		Name:         company.Name,
		TaxID:        company.TaxID,
		Address:      company.Address,
		ContactEmail: company.ContactEmail,
		CreatedAt:    company.CreatedAt,
		UpdatedAt:    company.UpdatedAt,
	}
}
