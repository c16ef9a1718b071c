package controller

import (
	"net/http"
	"procurement-workflow-api/internal/service"

	"github.com/labstack/echo"
)

type departmentRoutesHandler struct {
	orgService service.Org
}

func newDepartmentRoutesHandler(outer *echo.Group, services *service.Services) *departmentRoutesHandler {
	h := &departmentRoutesHandler{orgService: services.Org}

	outer.GET("/departments", h.GetDepartments)
	outer.GET("/departments/:departmentId", h.GetDepartment)
	outer.GET("/departments/:departmentId/units", h.GetDepartmentUnits)
	outer.GET("/units/:unitId", h.GetUnit)

	return h
}

// /departments
func (h *departmentRoutesHandler) GetDepartments(c echo.Context) error {
	departments, err := h.orgService.ListDepartments(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, departments); e != nil {
		return e
	}

	return nil
}

// /departments/:departmentId
func (h *departmentRoutesHandler) GetDepartment(c echo.Context) error {
	dept, err := h.orgService.GetDepartmentById(c.Request().Context(), c.Param("departmentId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, dept); e != nil {
		return e
	}

	return nil
}

// /departments/:departmentId/units
func (h *departmentRoutesHandler) GetDepartmentUnits(c echo.Context) error {
	units, err := h.orgService.ListUnitsByDepartment(c.Request().Context(), c.Param("departmentId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, units); e != nil {
		return e
	}

	return nil
}

// /units/:unitId
func (h *departmentRoutesHandler) GetUnit(c echo.Context) error {
	unit, err := h.orgService.GetUnitById(c.Request().Context(), c.Param("unitId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, unit); e != nil {
		return e
	}

	return nil
}
