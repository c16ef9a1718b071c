package controller

import (
	"net/http"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type userRoutesHandler struct {
	userService service.User
	validate    *validator.Validate
}

func newUserRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *userRoutesHandler {
	h := &userRoutesHandler{userService: services.User, validate: v}

	outer.GET("/users", h.GetUsers)
	outer.POST("/users", h.PostUser)
	outer.GET("/users/:userId", h.GetUser)
	outer.PUT("/users/:userId/role", h.UpdateUserRole)
	outer.DELETE("/users/:userId", h.DeleteUser)
	outer.POST("/units/:unitId/staff", h.AddUsersToSupplyUnit)
	outer.POST("/units/:unitId/representative", h.AddRepresentative)

	return h
}

type getUsersInput struct {
	DepartmentId string `query:"departmentId" validate:"omitempty,uuid"`
	UnitId       string `query:"unitId" validate:"omitempty,uuid"`
}

// /users
func (h *userRoutesHandler) GetUsers(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input getUsersInput
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

	filter := &entity.UserListFilter{DepartmentId: input.DepartmentId, UnitId: input.UnitId}
	users, err := h.userService.ListUsers(c.Request().Context(), actor, filter)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, users); e != nil {
		return e
	}

	return nil
}

type postUserInput struct {
	Username     string `json:"username" validate:"required,max=100"`
	FullName     string `json:"fullName" validate:"required,max=200"`
	Email        string `json:"email" validate:"omitempty,email"`
	Role         string `json:"role" validate:"required,oneof=SUPER_ADMIN ADMIN HEAD_OF_DEPARTMENT HEAD_OF_UNIT GENERAL_STAFF FINANCE_STAFF DOCUMENT_STAFF REPRESENTATIVE GUEST"`
	DepartmentId string `json:"departmentId" validate:"required,uuid"`
	UnitId       string `json:"unitId" validate:"omitempty,uuid"`
}

// /users
func (h *userRoutesHandler) PostUser(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input postUserInput
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

	model := &entity.RegisterUserInput{
		Username: input.Username, FullName: input.FullName, Email: input.Email,
		Role: input.Role, DepartmentId: input.DepartmentId, UnitId: input.UnitId,
	}

	user, err := h.userService.RegisterUser(c.Request().Context(), actor, model)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusCreated, user); e != nil {
		return e
	}

	return nil
}

// /users/:userId
func (h *userRoutesHandler) GetUser(c echo.Context) error {
	user, err := h.userService.GetUserById(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, user); e != nil {
		return e
	}

	return nil
}

type updateUserRoleInput struct {
	Role         string `json:"role" validate:"required,oneof=SUPER_ADMIN ADMIN HEAD_OF_DEPARTMENT HEAD_OF_UNIT GENERAL_STAFF FINANCE_STAFF DOCUMENT_STAFF REPRESENTATIVE GUEST"`
	DepartmentId string `json:"departmentId" validate:"required,uuid"`
	UnitId       string `json:"unitId" validate:"omitempty,uuid"`
}

// /users/:userId/role
func (h *userRoutesHandler) UpdateUserRole(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input updateUserRoleInput
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

	user, err := h.userService.UpdateUserRole(c.Request().Context(), actor,
		c.Param("userId"), input.Role, input.DepartmentId, input.UnitId)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, user); e != nil {
		return e
	}

	return nil
}

// /users/:userId
func (h *userRoutesHandler) DeleteUser(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), actor, c.Param("userId")); err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type addUnitStaffInput struct {
	UserIds []string `json:"userIds" validate:"required,min=1,dive,uuid"`
}

// /units/:unitId/staff
func (h *userRoutesHandler) AddUsersToSupplyUnit(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input addUnitStaffInput
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

	err = h.userService.AddUsersToSupplyUnit(c.Request().Context(), actor, c.Param("unitId"), input.UserIds)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type addRepresentativeInput struct {
	UserId string `json:"userId" validate:"required,uuid"`
}

// /units/:unitId/representative
func (h *userRoutesHandler) AddRepresentative(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input addRepresentativeInput
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

	user, err := h.userService.AddRepresentative(c.Request().Context(), actor, c.Param("unitId"), input.UserId)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, user); e != nil {
		return e
	}

	return nil
}
