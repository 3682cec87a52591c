package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/metering-service/internal/api/dto"
	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/service"
)

// MetersHandler exposes meter and reading endpoints.
type MetersHandler struct {
	meters *service.MeterService
}

// NewMetersHandler constructs the handler.
func NewMetersHandler(meters *service.MeterService) *MetersHandler {
	return &MetersHandler{meters: meters}
}

// Create handles POST /api/v1/meters.
func (h *MetersHandler) Create(c *fiber.Ctx) error {
	var req dto.MeterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	meter := &domain.Meter{
		CompanyID: req.CompanyID,
		Serial:    req.Serial,
		Type:      domain.MeterType(req.Type),
		Status:    domain.MeterStatus(req.Status),
	}
	if err := h.meters.Create(c.UserContext(), meter); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": meterResponse(meter)})
}

// Update handles PUT /api/v1/meters/:id.
func (h *MetersHandler) Update(c *fiber.Ctx) error {
	var req dto.MeterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	meter := &domain.Meter{
		ID:     c.Params("id"),
		Serial: req.Serial,
		Type:   domain.MeterType(req.Type),
		Status: domain.MeterStatus(req.Status),
	}
	if err := h.meters.Update(c.UserContext(), meter); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": meterResponse(meter)})
}

// Get handles GET /api/v1/meters/:id.
func (h *MetersHandler) Get(c *fiber.Ctx) error {
	meter, err := h.meters.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": meterResponse(meter)})
}

// ListByCompany handles GET /api/v1/companies/:id/meters.
func (h *MetersHandler) ListByCompany(c *fiber.Ctx) error {
	meters, err := h.meters.ListByCompany(c.UserContext(), c.Params("id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}

	out := make([]dto.MeterResponse, 0, len(meters))
	for _, meter := range meters {
		out = append(out, meterResponse(meter))
	}
	return c.JSON(fiber.Map{"data": out})
}

// RecordReading handles POST /api/v1/meters/:id/readings.
func (h *MetersHandler) RecordReading(c *fiber.Ctx) error {
	var req dto.ReadingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.TakenAt.IsZero() {
		return fiber.NewError(http.StatusBadRequest, "taken_at required")
	}

	reading := &domain.Reading{
		MeterID: c.Params("id"),
		Value:   req.Value,
		TakenAt: req.TakenAt,
	}
	if err := h.meters.RecordReading(c.UserContext(), reading); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": readingResponse(reading)})
}

// ListReadings handles GET /api/v1/meters/:id/readings.
func (h *MetersHandler) ListReadings(c *fiber.Ctx) error {
	readings, err := h.meters.ListReadings(c.UserContext(), c.Params("id"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}

	out := make([]dto.ReadingResponse, 0, len(readings))
	for _, reading := range readings {
		out = append(out, readingResponse(reading))
	}
	return c.JSON(fiber.Map{"data": out})
}

func meterResponse(meter *domain.Meter) dto.MeterResponse {
	return dto.MeterResponse{
		ID:        meter.ID,
		CompanyID: meter.CompanyID,
		Serial:    meter.Serial,
		Type:      string(meter.Type),
		Status:    string(meter.Status),
		CreatedAt: meter.CreatedAt,
		UpdatedAt: meter.UpdatedAt,
	}
}

func readingResponse(reading *domain.Reading) dto.ReadingResponse {
	return dto.ReadingResponse{
		ID:      reading.ID,
		MeterID: reading.MeterID,
		Value:   reading.Value,
		TakenAt: reading.TakenAt,
	}
}
