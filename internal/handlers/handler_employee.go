package handlers

import (
	"net/http"

	portssvc "github.com/hourstack/time_billing_app/internal/core/ports/services"
	"github.com/hourstack/time_billing_app/internal/dto"
	"github.com/hourstack/time_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// employeeHandler handles HTTP requests related to employees.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

// newEmployeeHandler creates a new employeeHandler.
func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{
		employeeService: es,
	}
}

// registerEmployeeRoutes registers employee specific routes
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := newEmployeeHandler(employeeService)

	employees := rg.Group("/employees")
	{
		employees.GET("", h.listEmployees)
		employees.GET("/:employeeID", h.getEmployee)
	}
}

// listEmployees godoc
// @Summary List employees
// @Description Retrieves all employees available for project assignment.
// @Tags employees
// @Produce  json
// @Success 200 {array} dto.EmployeeResponse
// @Failure 500 {object} map[string]string "Failed to list employees"
// @Security BearerAuth
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employees, err := h.employeeService.ListEmployees(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list employees")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEmployeeResponse(employees))
}

// getEmployee godoc
// @Summary Get an employee
// @Description Retrieves a single employee by ID.
// @Tags employees
// @Produce  json
// @Param   employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 500 {object} map[string]string "Failed to retrieve employee"
// @Security BearerAuth
// @Router /employees/{employeeID} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), employeeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve employee")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}
