package controller

import (
	"net/http"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/service"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type delegationRoutesHandler struct {
	delegationService service.Delegation
	validate          *validator.Validate
}

func newDelegationRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *delegationRoutesHandler {
	h := &delegationRoutesHandler{delegationService: services.Delegation, validate: v}

	outer.POST("/delegations", h.PostDelegation)
	outer.GET("/delegations/:delegationId", h.GetDelegation)
	outer.DELETE("/delegations/:delegationId", h.CancelDelegation)

	return h
}

type postDelegationInput struct {
	DelegatorId string `json:"delegatorId" validate:"required,uuid"`
	DelegateeId string `json:"delegateeId" validate:"required,uuid"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"omitempty"`
}

// /delegations
func (h *delegationRoutesHandler) PostDelegation(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input postDelegationInput
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

	startDate, err := time.Parse(time.RFC3339, input.StartDate)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"'startDate': should be an RFC3339 timestamp"}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateDelegationInput{
		DelegatorId: input.DelegatorId,
		DelegateeId: input.DelegateeId,
		StartDate:   startDate,
	}
	if input.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, input.EndDate)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"'endDate': should be an RFC3339 timestamp"}); e != nil {
				return e
			}

			return err
		}
		model.EndDate = &endDate
	}

	delegation, err := h.delegationService.CreateDelegation(c.Request().Context(), actor, model)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusCreated, delegation); e != nil {
		return e
	}

	return nil
}

// /delegations/:delegationId
func (h *delegationRoutesHandler) GetDelegation(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	delegation, err := h.delegationService.GetDelegationById(c.Request().Context(), actor, c.Param("delegationId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, delegation); e != nil {
		return e
	}

	return nil
}

// /delegations/:delegationId
func (h *delegationRoutesHandler) CancelDelegation(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	if err := h.delegationService.CancelDelegation(c.Request().Context(), actor, c.Param("delegationId")); err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}
