package controller

import (
	"procurement-workflow-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")

	newDiagnosticRoutesHandler(api, services)
	newAuthRoutesHandler(api, services, validate)

	authed := api.Group("", authMiddleware(services.Auth))
	newProjectRoutesHandler(authed, services, validate)
	newSubmissionRoutesHandler(authed, services, validate)
	newUserRoutesHandler(authed, services, validate)
	newDelegationRoutesHandler(authed, services, validate)
	newDepartmentRoutesHandler(authed, services)
}
