package service

import (
	"context"
	"errors"
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo"
	"procurement-workflow-api/internal/repo/repo_errors"
	"time"

	"github.com/google/uuid"
)

type ProjectService struct {
	projectRepo    repo.Project
	submissionRepo repo.Submission
	workflowRepo   repo.Workflow
	userRepo       repo.User
	orgRepo        repo.Org
}

func NewProjectService(repos *repo.Repositories) *ProjectService {
	return &ProjectService{
		projectRepo:    repos.Project,
		submissionRepo: repos.Submission,
		workflowRepo:   repos.Workflow,
		userRepo:       repos.User,
		orgRepo:        repos.Org,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, actor *entity.ActorContext, input *entity.CreateProjectInput) (*entity.ProjectOutputModel, error) {
	err := authorize(actor, common.RoleRepresentative, common.RoleGeneralStaff,
		common.RoleHeadOfUnit, common.RoleHeadOfDepartment, common.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if input.ProcurementType == common.TypeContract {
		return nil, ErrWorkflowTypeMismatch
	}
	if _, err := s.workflowRepo.GetTemplateByType(ctx, input.ProcurementType); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrWorkflowTypeMismatch
		}

		return nil, err
	}

	if _, err := s.orgRepo.GetDepartmentById(ctx, input.RequestingDeptId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}

		return nil, err
	}
	unit, err := s.orgRepo.GetUnitById(ctx, input.RequestingUnitId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUnitNotFound
		}

		return nil, err
	}
	if unit.DepartmentId.String() != input.RequestingDeptId {
		return nil, ErrUnitNotFound
	}

	if input.IsUrgent == "" {
		input.IsUrgent = common.UrgencyNormal
	}
	input.CreatedBy = actor.UserId

	id, err := s.projectRepo.CreateProject(ctx, input)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetProjectById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapProject(project), nil
}

func (s *ProjectService) GetProjectById(ctx context.Context, id string) (*entity.ProjectDetailOutputModel, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	procurement, contract, err := s.phaseStatuses(ctx, project)
	if err != nil {
		return nil, err
	}

	detail := &entity.ProjectDetailOutputModel{
		ProjectOutputModel: *mapProject(project),
		ProcurementPhase:   mapPhaseStatus(procurement),
		ContractPhase:      mapPhaseStatus(contract),
	}

	cancellation, err := s.projectRepo.GetActiveCancellation(ctx, id)
	switch {
	case err == nil:
		detail.Cancellation = mapCancellation(cancellation)
	case !errors.Is(err, repo_errors.ErrNotFound):
		return nil, err
	}

	return detail, nil
}

// phaseStatuses runs the aggregator for both phases of the project.
func (s *ProjectService) phaseStatuses(ctx context.Context, project *entity.Project) (entity.PhaseStatus, entity.PhaseStatus, error) {
	var zero entity.PhaseStatus

	procurementSteps, err := s.workflowRepo.GetStepsByType(ctx, project.ProcurementType)
	if err != nil {
		return zero, zero, err
	}
	procurementSubmissions, err := s.submissionRepo.GetStaffSubmissionsByType(ctx, project.Id.String(), project.ProcurementType)
	if err != nil {
		return zero, zero, err
	}
	procurement := derivePhaseStatus(procurementSteps, procurementSubmissions)

	contractSteps, err := s.workflowRepo.GetStepsByType(ctx, common.TypeContract)
	if err != nil {
		return zero, zero, err
	}
	contractSubmissions, err := s.submissionRepo.GetStaffSubmissionsByType(ctx, project.Id.String(), common.TypeContract)
	if err != nil {
		return zero, zero, err
	}
	contract := gateContractPhase(project, procurement, derivePhaseStatus(contractSteps, contractSubmissions))

	return procurement, contract, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, pg *entity.PaginationInput) (*entity.PaginatedProjectsOutputModel, error) {
	projects, total, err := s.projectRepo.ListProjects(ctx, pg)
	if err != nil {
		return nil, err
	}

	return &entity.PaginatedProjectsOutputModel{Total: total, Data: mapProjects(projects)}, nil
}

// ListUnassignedProjects shows the pool filtered to the workflow types the
// actor's supply units handle.
func (s *ProjectService) ListUnassignedProjects(ctx context.Context, actor *entity.ActorContext) (*entity.PaginatedProjectsOutputModel, error) {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit, common.RoleGeneralStaff)
	if err != nil {
		return nil, err
	}

	workflowTypes, err := s.actorWorkflowTypes(ctx, actor)
	if err != nil {
		return nil, err
	}

	projects, total, err := s.projectRepo.ListUnassignedProjects(ctx, workflowTypes)
	if err != nil {
		return nil, err
	}

	return &entity.PaginatedProjectsOutputModel{Total: total, Data: mapProjects(projects)}, nil
}

// ListAssignedProjects answers "what is my unit working on today": everything
// waiting for acceptance plus everything moved to IN_PROGRESS within the day.
// Unit heads see the whole unit, general staff only their own assignments.
func (s *ProjectService) ListAssignedProjects(ctx context.Context, actor *entity.ActorContext, day time.Time) (*entity.PaginatedProjectsOutputModel, error) {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit, common.RoleGeneralStaff)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	filter := &entity.AssignedProjectsFilter{
		DayStart: dayStart,
		DayEnd:   dayStart.AddDate(0, 0, 1),
	}

	if authorizeDept(actor, common.SupplyDeptCode, common.RoleHeadOfDepartment, common.RoleHeadOfUnit) == nil {
		filter.WorkflowTypes, err = s.actorWorkflowTypes(ctx, actor)
		if err != nil {
			return nil, err
		}
	} else {
		filter.AssigneeId = actor.UserId
	}

	projects, total, err := s.projectRepo.ListAssignedProjects(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &entity.PaginatedProjectsOutputModel{Total: total, Data: mapProjects(projects)}, nil
}

// actorWorkflowTypes unions the workflow-type tags of every unit the actor
// belongs to.
func (s *ProjectService) actorWorkflowTypes(ctx context.Context, actor *entity.ActorContext) ([]string, error) {
	seen := make(map[string]struct{})
	types := make([]string, 0)
	for _, unitId := range unitIdsForActor(actor) {
		unit, err := s.orgRepo.GetUnitById(ctx, unitId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				continue
			}

			return nil, err
		}
		for _, t := range unit.WorkflowTypes {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}

	return types, nil
}

func (s *ProjectService) AssignProjects(ctx context.Context, actor *entity.ActorContext, items []entity.AssignProjectItem) error {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit)
	if err != nil {
		return err
	}

	for i := range items {
		project, err := s.getProject(ctx, items[i].ProjectId.String())
		if err != nil {
			return err
		}
		if project.Status != common.Unassigned {
			return ErrProjectNotUnassigned
		}
		phase := common.PhaseForWorkflowType(project.CurrentWorkflowType)
		if len(project.AssigneesForPhase(phase)) > 0 {
			return ErrProjectAlreadyAssigned
		}
		items[i].Phase = phase

		if _, err := s.userRepo.GetUserById(ctx, items[i].UserId.String()); err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrUserNotFound
			}

			return err
		}
	}

	return s.mapMutation(s.projectRepo.AssignProjects(ctx, items, actor.UserId))
}

func (s *ProjectService) ChangeAssignee(ctx context.Context, actor *entity.ActorContext, projectId string, newUserId string) error {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit)
	if err != nil {
		return err
	}

	project, err := s.getProject(ctx, projectId)
	if err != nil {
		return err
	}
	if project.Status != common.WaitingAccept {
		return ErrProjectNotWaitingAccept
	}

	newUser, err := s.userRepo.GetUserById(ctx, newUserId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	return s.mapMutation(s.projectRepo.ChangeAssignee(ctx, project.Id, newUser.Id, actor.UserId))
}

func (s *ProjectService) AddAssignee(ctx context.Context, actor *entity.ActorContext, projectId string, userId string) error {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit)
	if err != nil {
		return err
	}

	project, err := s.getProject(ctx, projectId)
	if err != nil {
		return err
	}
	if project.Status == common.Cancelled || project.Status == common.WaitingCancel {
		return ErrProjectCancelled
	}

	phase := common.PhaseForWorkflowType(project.CurrentWorkflowType)
	assignees := project.AssigneesForPhase(phase)
	if len(assignees) >= common.MaxAssigneesPerPhase {
		return ErrAssigneeLimitReached
	}

	user, err := s.userRepo.GetUserById(ctx, userId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrUserNotFound
		}

		return err
	}
	for _, id := range assignees {
		if id == user.Id {
			return ErrAssigneeAlreadyAdded
		}
	}

	return s.mapMutation(s.projectRepo.AddAssignee(ctx, project.Id, user.Id, actor.UserId))
}

func (s *ProjectService) ClaimProject(ctx context.Context, actor *entity.ActorContext, projectId string) error {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit, common.RoleGeneralStaff)
	if err != nil {
		return err
	}

	project, err := s.getProject(ctx, projectId)
	if err != nil {
		return err
	}
	if project.Status != common.Unassigned {
		return ErrProjectNotUnassigned
	}
	phase := common.PhaseForWorkflowType(project.CurrentWorkflowType)
	if len(project.AssigneesForPhase(phase)) > 0 {
		return ErrProjectAlreadyAssigned
	}

	return s.mapMutation(s.projectRepo.ClaimProject(ctx, project.Id, actor.UserId))
}

func (s *ProjectService) AcceptProjects(ctx context.Context, actor *entity.ActorContext, projectIds []string) error {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit, common.RoleGeneralStaff)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(projectIds))
	for _, id := range projectIds {
		project, err := s.getProject(ctx, id)
		if err != nil {
			return err
		}
		if project.Status != common.WaitingAccept {
			return ErrProjectNotWaitingAccept
		}
		phase := common.PhaseForWorkflowType(project.CurrentWorkflowType)
		if !containsAssignee(project.AssigneesForPhase(phase), actor.UserId) {
			return ErrNotProjectAssignee
		}
		ids = append(ids, project.Id)
	}

	return s.mapMutation(s.projectRepo.AcceptProjects(ctx, ids, actor.UserId))
}

func (s *ProjectService) ReturnProject(ctx context.Context, actor *entity.ActorContext, projectId string) error {
	project, err := s.getProject(ctx, projectId)
	if err != nil {
		return err
	}
	if project.Status != common.InProgress {
		return ErrProjectNotInProgress
	}

	phase := common.PhaseForWorkflowType(project.CurrentWorkflowType)
	if !containsAssignee(project.AssigneesForPhase(phase), actor.UserId) {
		return ErrNotProjectAssignee
	}

	count, err := s.submissionRepo.CountSubmissionsByProject(ctx, projectId)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProjectHasSubmissions
	}

	return s.mapMutation(s.projectRepo.ReturnProject(ctx, project.Id, actor.UserId))
}

// CancelProject is immediate for supply heads; for everyone else it opens a
// cancellation request that a head has to resolve.
func (s *ProjectService) CancelProject(ctx context.Context, actor *entity.ActorContext, projectId string, reason string) error {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit, common.RoleGeneralStaff)
	if err != nil {
		return err
	}

	project, err := s.getProject(ctx, projectId)
	if err != nil {
		return err
	}
	if project.Status == common.Cancelled {
		return ErrProjectCancelled
	}

	if isSupplyHead(actor) {
		return s.mapMutation(s.projectRepo.CancelProjectImmediate(ctx, project.Id, reason, actor.UserId))
	}

	if project.Status != common.InProgress {
		return ErrProjectNotInProgress
	}
	if _, err := s.projectRepo.GetActiveCancellation(ctx, projectId); err == nil {
		return ErrCancellationPending
	} else if !errors.Is(err, repo_errors.ErrNotFound) {
		return err
	}

	return s.mapMutation(s.projectRepo.RequestCancellation(ctx, project.Id, reason, actor.UserId))
}

func (s *ProjectService) ApproveCancellation(ctx context.Context, actor *entity.ActorContext, projectId string) error {
	return s.resolveCancellation(ctx, actor, projectId, true)
}

func (s *ProjectService) RejectCancellation(ctx context.Context, actor *entity.ActorContext, projectId string) error {
	return s.resolveCancellation(ctx, actor, projectId, false)
}

func (s *ProjectService) resolveCancellation(ctx context.Context, actor *entity.ActorContext, projectId string, approve bool) error {
	if !isSupplyHead(actor) {
		return ErrForbidden
	}

	project, err := s.getProject(ctx, projectId)
	if err != nil {
		return err
	}
	if project.Status != common.WaitingCancel {
		return ErrCancellationNotFound
	}

	if approve {
		return s.mapMutation(s.projectRepo.ApproveCancellation(ctx, project.Id, actor.UserId))
	}

	return s.mapMutation(s.projectRepo.RejectCancellation(ctx, project.Id, actor.UserId))
}

func (s *ProjectService) UpdateProject(ctx context.Context, actor *entity.ActorContext, projectId string, input *entity.UpdateProjectInput) (*entity.ProjectOutputModel, error) {
	if authorize(actor, common.RoleAdmin) != nil {
		err := authorizeDept(actor, common.SupplyDeptCode,
			common.RoleHeadOfDepartment, common.RoleHeadOfUnit, common.RoleGeneralStaff)
		if err != nil {
			return nil, err
		}
	}

	project, err := s.getProject(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if project.Status == common.Cancelled {
		return nil, ErrProjectCancelled
	}

	if input.CurrentWorkflowType != nil && *input.CurrentWorkflowType != project.CurrentWorkflowType {
		if err := s.checkPhaseAdvance(ctx, project, *input.CurrentWorkflowType); err != nil {
			return nil, err
		}
	}

	if err := s.mapMutation(s.projectRepo.UpdateProject(ctx, project.Id, input, actor.UserId)); err != nil {
		return nil, err
	}

	project, err = s.projectRepo.GetProjectById(ctx, projectId)
	if err != nil {
		return nil, err
	}

	return mapProject(project), nil
}

// checkPhaseAdvance guards the one legal workflow-type switch: procurement
// type to CONTRACT, and only once the procurement phase aggregates COMPLETED.
func (s *ProjectService) checkPhaseAdvance(ctx context.Context, project *entity.Project, target string) error {
	if target != common.TypeContract || project.CurrentWorkflowType == common.TypeContract {
		return ErrWorkflowTypeMismatch
	}

	procurement, _, err := s.phaseStatuses(ctx, project)
	if err != nil {
		return err
	}
	if procurement.Status != common.PhaseCompleted {
		return ErrProcurementNotCompleted
	}

	return nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, actor *entity.ActorContext, projectId string) error {
	if err := authorize(actor, common.RoleAdmin); err != nil {
		return err
	}

	project, err := s.getProject(ctx, projectId)
	if err != nil {
		return err
	}

	err = s.projectRepo.DeleteProject(ctx, project.Id)
	if errors.Is(err, repo_errors.ErrRestricted) {
		return ErrProjectReferenced
	}

	return s.mapMutation(err)
}

func (s *ProjectService) GetProjectHistory(ctx context.Context, projectId string) ([]entity.ProjectHistoryOutputModel, error) {
	if _, err := s.getProject(ctx, projectId); err != nil {
		return nil, err
	}

	history, err := s.projectRepo.GetProjectHistory(ctx, projectId)
	if err != nil {
		return nil, err
	}

	return mapHistories(history), nil
}

func (s *ProjectService) getProject(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.projectRepo.GetProjectById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, err
	}

	return project, nil
}

// mapMutation translates a repo-level CAS failure into the service conflict
// sentinel.
func (s *ProjectService) mapMutation(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo_errors.ErrNotFound):
		return ErrProjectNotFound
	case errors.Is(err, repo_errors.ErrConflict):
		return ErrStateConflict
	case errors.Is(err, repo_errors.ErrNoChange):
		return ErrNoNewChanges
	}

	return err
}

func containsAssignee(ids []uuid.UUID, target uuid.UUID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}

	return false
}
