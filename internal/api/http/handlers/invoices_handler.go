package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/metering-service/internal/api/dto"
	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/service"
)

// InvoicesHandler exposes invoice endpoints.
type InvoicesHandler struct {
	invoices *service.InvoiceService
}

// NewInvoicesHandler constructs the handler.
func NewInvoicesHandler(invoices *service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{invoices: invoices}
}

// Issue handles POST /api/v1/invoices.
func (h *InvoicesHandler) Issue(c *fiber.Ctx) error {
	var req dto.InvoiceIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CompanyID == "" {
		return fiber.NewError(http.StatusBadRequest, "company_id required")
	}

	invoice, err := h.invoices.Issue(c.UserContext(), req.CompanyID, req.PeriodFrom, req.PeriodTo)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": invoiceResponse(invoice)})
}

// MarkPaid handles POST /api/v1/invoices/:id/pay.
func (h *InvoicesHandler) MarkPaid(c *fiber.Ctx) error {
	if err := h.invoices.MarkPaid(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": string(domain.InvoiceStatusPaid)}})
}

// Get handles GET /api/v1/invoices/:id.
func (h *InvoicesHandler) Get(c *fiber.Ctx) error {
	invoice, err := h.invoices.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": invoiceResponse(invoice)})
}

// ListByCompany handles GET /api/v1/companies/:id/invoices.
func (h *InvoicesHandler) ListByCompany(c *fiber.Ctx) error {
	invoices, err := h.invoices.ListByCompany(c.UserContext(), c.Params("id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}

	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		out = append(out, invoiceResponse(invoice))
	}
	return c.JSON(fiber.Map{"data": out})
}

func invoiceResponse(invoice *domain.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:          invoice.ID,
		Number:      invoice.Number,
		CompanyID:   invoice.CompanyID,
		PeriodFrom:  invoice.PeriodFrom,
		PeriodTo:    invoice.PeriodTo,
		TotalAmount: invoice.TotalAmount,
		Status:      string(invoice.Status),
		IssuedAt:    invoice.IssuedAt,
		PaidAt:      invoice.PaidAt,
	}
}
