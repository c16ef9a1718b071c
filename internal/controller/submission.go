package controller

import (
	"encoding/json"
	"net/http"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type submissionRoutesHandler struct {
	submissionService service.Submission
	validate          *validator.Validate
}

func newSubmissionRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *submissionRoutesHandler {
	h := &submissionRoutesHandler{submissionService: services.Submission, validate: v}

	outer.POST("/submissions", h.PostSubmission)
	outer.GET("/projects/:projectId/submissions", h.GetProjectSubmissions)
	outer.POST("/submissions/:submissionId/approve", h.ApproveSubmission)
	outer.POST("/submissions/:submissionId/propose", h.ProposeSubmission)
	outer.POST("/submissions/:submissionId/sign", h.SignSubmission)
	outer.POST("/submissions/:submissionId/reject", h.RejectSubmission)

	return h
}

type postSubmissionInput struct {
	ProjectId    string              `json:"projectId" validate:"required,uuid"`
	WorkflowType string              `json:"workflowType" validate:"required,oneof=LT100K LT500K MT500K SELECTION EBIDDING INTERNAL CONTRACT"`
	StepOrder    int                 `json:"stepOrder" validate:"required,min=1"`
	Metadata     json.RawMessage     `json:"metadata" validate:"omitempty"`
	Files        []documentFileInput `json:"files" validate:"omitempty,dive"`
}

type documentFileInput struct {
	FieldKey string `json:"fieldKey" validate:"required,max=100"`
	FileName string `json:"fileName" validate:"required,max=255"`
	FilePath string `json:"filePath" validate:"required,max=1000"`
}

// /submissions
func (h *submissionRoutesHandler) PostSubmission(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input postSubmissionInput
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

	model := &entity.CreateSubmissionInput{
		ProjectId:    input.ProjectId,
		WorkflowType: input.WorkflowType,
		StepOrder:    input.StepOrder,
		Metadata:     input.Metadata,
		Files:        make([]entity.DocumentInput, 0, len(input.Files)),
	}
	for _, f := range input.Files {
		model.Files = append(model.Files, entity.DocumentInput{
			FieldKey: f.FieldKey, FileName: f.FileName, FilePath: f.FilePath,
		})
	}

	submission, err := h.submissionService.CreateSubmission(c.Request().Context(), actor, model)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusCreated, submission); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId/submissions
func (h *submissionRoutesHandler) GetProjectSubmissions(c echo.Context) error {
	submissions, err := h.submissionService.GetProjectSubmissions(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, submissions); e != nil {
		return e
	}

	return nil
}

// /submissions/:submissionId/approve
func (h *submissionRoutesHandler) ApproveSubmission(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	submission, err := h.submissionService.ApproveSubmission(c.Request().Context(), actor, c.Param("submissionId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, submission); e != nil {
		return e
	}

	return nil
}

// /submissions/:submissionId/propose
func (h *submissionRoutesHandler) ProposeSubmission(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	submission, err := h.submissionService.ProposeSubmission(c.Request().Context(), actor, c.Param("submissionId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, submission); e != nil {
		return e
	}

	return nil
}

// /submissions/:submissionId/sign
func (h *submissionRoutesHandler) SignSubmission(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	submission, err := h.submissionService.SignSubmission(c.Request().Context(), actor, c.Param("submissionId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, submission); e != nil {
		return e
	}

	return nil
}

type rejectSubmissionInput struct {
	Comment string `json:"comment" validate:"required,max=1000"`
}

// /submissions/:submissionId/reject
func (h *submissionRoutesHandler) RejectSubmission(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input rejectSubmissionInput
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

	submission, err := h.submissionService.RejectSubmission(c.Request().Context(), actor, c.Param("submissionId"), input.Comment)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, submission); e != nil {
		return e
	}

	return nil
}
