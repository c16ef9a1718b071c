package controller

import (
	"net/http"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/service"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

type projectRoutesHandler struct {
	projectService service.Project
	validate       *validator.Validate
}

func newProjectRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *projectRoutesHandler {
	h := &projectRoutesHandler{projectService: services.Project, validate: v}

	outer.GET("/projects", h.GetProjects)
	outer.POST("/projects", h.PostProject)
	outer.GET("/projects/unassigned", h.GetUnassignedProjects)
	outer.GET("/projects/assigned", h.GetAssignedProjects)
	outer.POST("/projects/assign", h.AssignProjects)
	outer.POST("/projects/accept", h.AcceptProjects)
	outer.GET("/projects/:projectId", h.GetProject)
	outer.PATCH("/projects/:projectId", h.UpdateProject)
	outer.DELETE("/projects/:projectId", h.DeleteProject)
	outer.GET("/projects/:projectId/history", h.GetProjectHistory)
	outer.PUT("/projects/:projectId/assignee", h.ChangeAssignee)
	outer.POST("/projects/:projectId/assignees", h.AddAssignee)
	outer.POST("/projects/:projectId/claim", h.ClaimProject)
	outer.POST("/projects/:projectId/return", h.ReturnProject)
	outer.POST("/projects/:projectId/cancel", h.CancelProject)
	outer.POST("/projects/:projectId/cancellation/approve", h.ApproveCancellation)
	outer.POST("/projects/:projectId/cancellation/reject", h.RejectCancellation)

	return h
}

type getProjectsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /projects
func (h *projectRoutesHandler) GetProjects(c echo.Context) error {
	input := getProjectsInput{Limit: defaultLimit, Offset: defaultOffset}
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	projects, err := h.projectService.ListProjects(c.Request().Context(), pg)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, projects); e != nil {
		return e
	}

	return nil
}

type postProjectInput struct {
	Title                string  `json:"title" validate:"required,max=200"`
	Description          string  `json:"description" validate:"max=2000"`
	Budget               float64 `json:"budget" validate:"gte=0"`
	PrNo                 string  `json:"prNo" validate:"max=50"`
	LessNo               string  `json:"lessNo" validate:"max=50"`
	ProcurementType      string  `json:"procurementType" validate:"required,oneof=LT100K LT500K MT500K SELECTION EBIDDING INTERNAL"`
	IsUrgent             string  `json:"isUrgent" validate:"omitempty,oneof=NORMAL URGENT"`
	ExpectedApprovalDate string  `json:"expectedApprovalDate" validate:"omitempty"`
	RequestingDeptId     string  `json:"requestingDeptId" validate:"required,uuid"`
	RequestingUnitId     string  `json:"requestingUnitId" validate:"required,uuid"`
}

// /projects
func (h *projectRoutesHandler) PostProject(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input postProjectInput
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

	model := &entity.CreateProjectInput{
		Title: input.Title, Description: input.Description, Budget: input.Budget,
		PrNo: input.PrNo, LessNo: input.LessNo, ProcurementType: input.ProcurementType,
		IsUrgent: input.IsUrgent, RequestingDeptId: input.RequestingDeptId,
		RequestingUnitId: input.RequestingUnitId,
	}
	if input.ExpectedApprovalDate != "" {
		parsed, err := time.Parse(time.RFC3339, input.ExpectedApprovalDate)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"'expectedApprovalDate': should be an RFC3339 timestamp"}); e != nil {
				return e
			}

			return err
		}
		model.ExpectedApprovalDate = &parsed
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), actor, model)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusCreated, project); e != nil {
		return e
	}

	return nil
}

// /projects/unassigned
func (h *projectRoutesHandler) GetUnassignedProjects(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	projects, err := h.projectService.ListUnassignedProjects(c.Request().Context(), actor)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, projects); e != nil {
		return e
	}

	return nil
}

// /projects/assigned
func (h *projectRoutesHandler) GetAssignedProjects(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	day := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"'date': should be formatted as 2006-01-02"}); e != nil {
				return e
			}

			return err
		}
		day = parsed
	}

	projects, err := h.projectService.ListAssignedProjects(c.Request().Context(), actor, day)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, projects); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId
func (h *projectRoutesHandler) GetProject(c echo.Context) error {
	project, err := h.projectService.GetProjectById(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, project); e != nil {
		return e
	}

	return nil
}

type assignProjectsInput struct {
	Items []assignProjectItemInput `json:"items" validate:"required,min=1,dive"`
}

type assignProjectItemInput struct {
	ProjectId string `json:"projectId" validate:"required,uuid"`
	UserId    string `json:"userId" validate:"required,uuid"`
}

// /projects/assign
func (h *projectRoutesHandler) AssignProjects(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input assignProjectsInput
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

	items := make([]entity.AssignProjectItem, 0, len(input.Items))
	for _, item := range input.Items {
		projectId, _ := uuid.Parse(item.ProjectId)
		userId, _ := uuid.Parse(item.UserId)
		items = append(items, entity.AssignProjectItem{ProjectId: projectId, UserId: userId})
	}

	if err := h.projectService.AssignProjects(c.Request().Context(), actor, items); err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type acceptProjectsInput struct {
	ProjectIds []string `json:"projectIds" validate:"required,min=1,dive,uuid"`
}

// /projects/accept
func (h *projectRoutesHandler) AcceptProjects(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input acceptProjectsInput
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

	if err := h.projectService.AcceptProjects(c.Request().Context(), actor, input.ProjectIds); err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type changeAssigneeInput struct {
	UserId string `json:"userId" validate:"required,uuid"`
}

// /projects/:projectId/assignee
func (h *projectRoutesHandler) ChangeAssignee(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input changeAssigneeInput
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

	err = h.projectService.ChangeAssignee(c.Request().Context(), actor, c.Param("projectId"), input.UserId)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId/assignees
func (h *projectRoutesHandler) AddAssignee(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input changeAssigneeInput
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

	err = h.projectService.AddAssignee(c.Request().Context(), actor, c.Param("projectId"), input.UserId)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId/claim
func (h *projectRoutesHandler) ClaimProject(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	if err := h.projectService.ClaimProject(c.Request().Context(), actor, c.Param("projectId")); err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId/return
func (h *projectRoutesHandler) ReturnProject(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	if err := h.projectService.ReturnProject(c.Request().Context(), actor, c.Param("projectId")); err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type cancelProjectInput struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// /projects/:projectId/cancel
func (h *projectRoutesHandler) CancelProject(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input cancelProjectInput
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

	err = h.projectService.CancelProject(c.Request().Context(), actor, c.Param("projectId"), input.Reason)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId/cancellation/approve
func (h *projectRoutesHandler) ApproveCancellation(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	err = h.projectService.ApproveCancellation(c.Request().Context(), actor, c.Param("projectId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId/cancellation/reject
func (h *projectRoutesHandler) RejectCancellation(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	err = h.projectService.RejectCancellation(c.Request().Context(), actor, c.Param("projectId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type updateProjectInput struct {
	Title                *string  `json:"title" validate:"omitempty,max=200"`
	Description          *string  `json:"description" validate:"omitempty,max=2000"`
	Budget               *float64 `json:"budget" validate:"omitempty,gte=0"`
	PrNo                 *string  `json:"prNo" validate:"omitempty,max=50"`
	PoNo                 *string  `json:"poNo" validate:"omitempty,max=50"`
	LessNo               *string  `json:"lessNo" validate:"omitempty,max=50"`
	RequestingUnitId     *string  `json:"requestingUnitId" validate:"omitempty,uuid"`
	IsUrgent             *string  `json:"isUrgent" validate:"omitempty,oneof=NORMAL URGENT"`
	ExpectedApprovalDate *string  `json:"expectedApprovalDate" validate:"omitempty"`
	VendorName           *string  `json:"vendorName" validate:"omitempty,max=200"`
	VendorTaxId          *string  `json:"vendorTaxId" validate:"omitempty,max=50"`
	VendorEmail          *string  `json:"vendorEmail" validate:"omitempty,email"`
	CurrentWorkflowType  *string  `json:"currentWorkflowType" validate:"omitempty,oneof=LT100K LT500K MT500K SELECTION EBIDDING INTERNAL CONTRACT"`
}

// /projects/:projectId
func (h *projectRoutesHandler) UpdateProject(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var input updateProjectInput
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

	model := &entity.UpdateProjectInput{
		Title: input.Title, Description: input.Description, Budget: input.Budget,
		PrNo: input.PrNo, PoNo: input.PoNo, LessNo: input.LessNo,
		RequestingUnitId: input.RequestingUnitId, IsUrgent: input.IsUrgent,
		VendorName: input.VendorName, VendorTaxId: input.VendorTaxId,
		VendorEmail: input.VendorEmail, CurrentWorkflowType: input.CurrentWorkflowType,
	}
	if input.ExpectedApprovalDate != nil {
		parsed, err := time.Parse(time.RFC3339, *input.ExpectedApprovalDate)
		if err != nil {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"'expectedApprovalDate': should be an RFC3339 timestamp"}); e != nil {
				return e
			}

			return err
		}
		model.ExpectedApprovalDate = &parsed
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), actor, c.Param("projectId"), model)
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, project); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId
func (h *projectRoutesHandler) DeleteProject(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	if err := h.projectService.DeleteProject(c.Request().Context(), actor, c.Param("projectId")); err != nil {
		return handleServiceError(c, err)
	}

	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /projects/:projectId/history
func (h *projectRoutesHandler) GetProjectHistory(c echo.Context) error {
	history, err := h.projectService.GetProjectHistory(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return handleServiceError(c, err)
	}

	if e := c.JSON(http.StatusOK, history); e != nil {
		return e
	}

	return nil
}
