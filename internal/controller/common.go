package controller

import (
	"fmt"
	"net/http"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/service"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 20
	defaultOffset = 0

	actorContextKey = "actor"
)

type errorResponse struct {
	Reason string `json:"reason"`
}

// actorFromContext pulls the actor the auth middleware resolved for this
// request.
func actorFromContext(c echo.Context) (*entity.ActorContext, error) {
	actor, ok := c.Get(actorContextKey).(*entity.ActorContext)
	if !ok || actor == nil {
		if e := c.JSON(http.StatusUnauthorized, errorResponse{"Missing actor context"}); e != nil {
			return nil, e
		}

		return nil, echo.ErrUnauthorized
	}

	return actor, nil
}

// handleServiceError maps the service sentinel taxonomy onto HTTP statuses:
// absent entities 404, precondition and state-machine violations 400,
// authorization 403, concurrent-change conflicts 409.
func handleServiceError(c echo.Context, err error) error {
	status := http.StatusBadRequest
	switch err {
	case service.ErrProjectNotFound, service.ErrSubmissionNotFound, service.ErrUserNotFound,
		service.ErrDepartmentNotFound, service.ErrUnitNotFound, service.ErrDelegationNotFound,
		service.ErrStepNotFound:
		status = http.StatusNotFound
	case service.ErrForbidden, service.ErrWrongDepartment, service.ErrNotDelegationOwner:
		status = http.StatusForbidden
	case service.ErrInvalidCredentials:
		status = http.StatusUnauthorized
	case service.ErrStateConflict, service.ErrProjectReferenced:
		status = http.StatusConflict
	case service.ErrProjectNotUnassigned, service.ErrProjectAlreadyAssigned,
		service.ErrProjectNotWaitingAccept, service.ErrProjectNotInProgress,
		service.ErrNotProjectAssignee, service.ErrAssigneeLimitReached,
		service.ErrAssigneeAlreadyAdded, service.ErrProjectHasSubmissions,
		service.ErrCancellationPending, service.ErrCancellationNotFound,
		service.ErrProjectCancelled, service.ErrWrongSubmissionStatus,
		service.ErrMissingRequiredFields, service.ErrCommentRequired,
		service.ErrWorkflowTypeMismatch, service.ErrProcurementNotCompleted,
		service.ErrRoleScopeMismatch, service.ErrDelegationDateOrder,
		service.ErrNoNewChanges:
		status = http.StatusBadRequest
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(status, errorResponse{err.Error()}); e != nil {
		return e
	}

	return err
}

func bindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
}

func getAllErrorMessages(err error) string {
	var builder strings.Builder
	for _, fe := range err.(validator.ValidationErrors) {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s, i := "", int32(0)
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	if fe.Type() == reflect.TypeOf(i) {
		return getMessageForInt(fe)
	}

	if fe.Type() == reflect.TypeOf(0) {
		return getMessageForInt(fe)
	}

	return "Unknown error (2)"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "uuid":
		return "should be a valid uuid"
	case "email":
		return "should be a valid email"
	}

	return "incorrect value passed"
}
