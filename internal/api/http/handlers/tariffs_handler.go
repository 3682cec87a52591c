package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/metering-service/internal/api/dto"
	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/service"
)

// TariffsHandler exposes tariff CRUD endpoints.
type TariffsHandler struct {
	tariffs *service.TariffService
}

// NewTariffsHandler constructs the handler.
func NewTariffsHandler(tariffs *service.TariffService) *TariffsHandler {
	return &TariffsHandler{tariffs: tariffs}
}

// Create handles POST /api/v1/tariffs.
func (h *TariffsHandler) Create(c *fiber.Ctx) error {
	var req dto.TariffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	tariff := tariffFromRequest(req)
	if err := h.tariffs.Create(c.UserContext(), tariff); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": tariffResponse(tariff)})
}

// Update handles PUT /api/v1/tariffs/:id.
func (h *TariffsHandler) Update(c *fiber.Ctx) error {
	var req dto.TariffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	tariff := tariffFromRequest(req)
	tariff.ID = c.Params("id")
	if err := h.tariffs.Update(c.UserContext(), tariff); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tariffResponse(tariff)})
}

// Get handles GET /api/v1/tariffs/:id.
func (h *TariffsHandler) Get(c *fiber.Ctx) error {
	tariff, err := h.tariffs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tariffResponse(tariff)})
}

// List handles GET /api/v1/tariffs.
func (h *TariffsHandler) List(c *fiber.Ctx) error {
	tariffs, err := h.tariffs.List(c.UserContext(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}

	out := make([]dto.TariffResponse, 0, len(tariffs))
	for _, tariff := range tariffs {
		out = append(out, tariffResponse(tariff))
	}
	return c.JSON(fiber.Map{"data": out})
}

func tariffFromRequest(req dto.TariffRequest) *domain.Tariff {
	return &domain.Tariff{
		Name:         req.Name,
		MeterType:    domain.MeterType(req.MeterType),
		PricePerUnit: req.PricePerUnit,
		ValidFrom:    req.ValidFrom,
		ValidTo:      req.ValidTo,
	}
}

func tariffResponse(tariff *domain.Tariff) dto.TariffResponse {
	return dto.TariffResponse{
		ID:           tariff.ID,
		Name:         tariff.Name,
		MeterType:    string(tariff.MeterType),
		PricePerUnit: tariff.PricePerUnit,
		ValidFrom:    tariff.ValidFrom,
		ValidTo:      tariff.ValidTo,
	}
}
