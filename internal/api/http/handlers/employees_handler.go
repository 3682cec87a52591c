package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/metering-service/internal/api/dto"
	"github.com/spec-kit/metering-service/internal/domain"
	"github.com/spec-kit/metering-service/internal/service"
)

// EmployeesHandler exposes admin-only employee management endpoints.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs the handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// Create handles POST /api/v1/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	employee, err := h.employees.Create(c.UserContext(), req.Username, req.FullName, req.Password, domain.EmployeeRole(req.Role))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": employeeResponse(employee)})
}

// List handles GET /api/v1/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.employees.List(c.UserContext(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return err
	}

	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		out = append(out, employeeResponse(employee))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Deactivate handles POST /api/v1/employees/:id/deactivate.
func (h *EmployeesHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.employees.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func employeeResponse(employee *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:        employee.ID,
		Username:  employee.Username,
		FullName:  employee.FullName,
		Role:      string(employee.Role),
		Active:    employee.Active,
		CreatedAt: employee.CreatedAt,
	}
}
