package controller

import (
	"net/http"
	"procurement-workflow-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type authRoutesHandler struct {
	authService service.Auth
	userService service.User
	validate    *validator.Validate
}

func newAuthRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *authRoutesHandler {
	h := &authRoutesHandler{authService: services.Auth, userService: services.User, validate: v}

	outer.POST("/auth/login", h.Login)
	outer.GET("/auth/me", h.GetMe, authMiddleware(services.Auth))

	return h
}

type loginInput struct {
	Username string `json:"username" validate:"required,max=100"`
	FullName string `json:"fullName" validate:"required,max=200"`
}

// /auth/login
func (h *authRoutesHandler) Login(c echo.Context) error {
	var input loginInput
	if err := c.Bind(&input); err != nil {
		if e := bindError(c); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	out, err := h.authService.Login(c.Request().Context(), input.Username, input.FullName)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, out); e != nil {
		return e
	}

	return nil
}

// /auth/me
func (h *authRoutesHandler) GetMe(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUserById(c.Request().Context(), actor.UserId.String())
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, user); e != nil {
		return e
	}

	return nil
}
