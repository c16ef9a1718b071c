package service

import (
	"context"
	"encoding/json"
	"errors"
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo"
	"procurement-workflow-api/internal/repo/repo_errors"
)

type SubmissionService struct {
	submissionRepo repo.Submission
	projectRepo    repo.Project
	workflowRepo   repo.Workflow
}

func NewSubmissionService(repos *repo.Repositories) *SubmissionService {
	return &SubmissionService{
		submissionRepo: repos.Submission,
		projectRepo:    repos.Project,
		workflowRepo:   repos.Workflow,
	}
}

func (s *SubmissionService) CreateSubmission(ctx context.Context, actor *entity.ActorContext, input *entity.CreateSubmissionInput) (*entity.SubmissionOutputModel, error) {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit, common.RoleGeneralStaff)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetProjectById(ctx, input.ProjectId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, err
	}
	if project.Status != common.InProgress {
		return nil, ErrProjectNotInProgress
	}
	if input.WorkflowType != project.CurrentWorkflowType {
		return nil, ErrWorkflowTypeMismatch
	}

	phase := common.PhaseForWorkflowType(project.CurrentWorkflowType)
	if !containsAssignee(project.AssigneesForPhase(phase), actor.UserId) {
		return nil, ErrNotProjectAssignee
	}

	step, err := s.workflowRepo.GetStepByTypeAndOrder(ctx, input.WorkflowType, input.StepOrder)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrStepNotFound
		}

		return nil, err
	}

	if err := checkRequiredFields(step, input); err != nil {
		return nil, err
	}

	input.SubmittedBy = actor.UserId
	id, err := s.submissionRepo.CreateSubmission(ctx, input, step.Id)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetSubmissionById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapSubmission(submission), nil
}

// checkRequiredFields accepts a required field from either an uploaded file's
// field key or a metadata key.
func checkRequiredFields(step *entity.WorkflowStep, input *entity.CreateSubmissionInput) error {
	if len(step.RequiredFields) == 0 {
		return nil
	}

	provided := make(map[string]struct{})
	for _, f := range input.Files {
		provided[f.FieldKey] = struct{}{}
	}
	if len(input.Metadata) > 0 {
		var meta map[string]json.RawMessage
		if err := json.Unmarshal(input.Metadata, &meta); err == nil {
			for key := range meta {
				provided[key] = struct{}{}
			}
		}
	}

	for _, field := range step.RequiredFields {
		if _, ok := provided[field]; !ok {
			return ErrMissingRequiredFields
		}
	}

	return nil
}

func (s *SubmissionService) GetProjectSubmissions(ctx context.Context, projectId string) (*entity.ProjectSubmissionsOutputModel, error) {
	if _, err := s.projectRepo.GetProjectById(ctx, projectId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, err
	}

	submissions, err := s.submissionRepo.GetSubmissionsByProject(ctx, projectId)
	if err != nil {
		return nil, err
	}

	out := &entity.ProjectSubmissionsOutputModel{
		Procurement: make([]entity.SubmissionOutputModel, 0),
		Contract:    make([]entity.SubmissionOutputModel, 0),
	}
	for i := range submissions {
		mapped := *mapSubmission(&submissions[i])
		if common.PhaseForWorkflowType(submissions[i].WorkflowType) == common.PhaseContract {
			out.Contract = append(out.Contract, mapped)
		} else {
			out.Procurement = append(out.Procurement, mapped)
		}
	}

	return out, nil
}

func (s *SubmissionService) ApproveSubmission(ctx context.Context, actor *entity.ActorContext, id string) (*entity.SubmissionOutputModel, error) {
	err := authorize(actor, common.RoleHeadOfDepartment, common.RoleHeadOfUnit,
		common.RoleDocumentStaff, common.RoleFinanceStaff)
	if err != nil {
		return nil, err
	}

	submission, err := s.getSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.Status != common.Submitted {
		return nil, ErrWrongSubmissionStatus
	}

	step, err := s.workflowRepo.GetStepById(ctx, submission.StepId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrStepNotFound
		}

		return nil, err
	}

	err = s.submissionRepo.ApproveSubmission(ctx, submission.Id, step.RequiresSignature, actor.UserId, submission.SubmittedBy)
	if err != nil {
		return nil, s.mapMutation(err)
	}

	return s.refresh(ctx, id)
}

func (s *SubmissionService) ProposeSubmission(ctx context.Context, actor *entity.ActorContext, id string) (*entity.SubmissionOutputModel, error) {
	err := authorizeDept(actor, common.SupplyDeptCode,
		common.RoleHeadOfDepartment, common.RoleHeadOfUnit, common.RoleGeneralStaff)
	if err != nil {
		return nil, err
	}

	submission, err := s.getSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.Status != common.PendingProposal {
		return nil, ErrWrongSubmissionStatus
	}

	if err := s.submissionRepo.ProposeSubmission(ctx, submission.Id, actor.UserId); err != nil {
		return nil, s.mapMutation(err)
	}

	return s.refresh(ctx, id)
}

func (s *SubmissionService) SignSubmission(ctx context.Context, actor *entity.ActorContext, id string) (*entity.SubmissionOutputModel, error) {
	err := authorize(actor, common.RoleHeadOfDepartment, common.RoleHeadOfUnit,
		common.RoleDocumentStaff, common.RoleFinanceStaff)
	if err != nil {
		return nil, err
	}

	submission, err := s.getSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.Status != common.Proposing {
		return nil, ErrWrongSubmissionStatus
	}

	if err := s.submissionRepo.CompleteSubmission(ctx, submission.Id, actor.UserId); err != nil {
		return nil, s.mapMutation(err)
	}

	return s.refresh(ctx, id)
}

// RejectSubmission is legal from any non-terminal status and always carries a
// comment. The round stays; a retry opens a new round.
func (s *SubmissionService) RejectSubmission(ctx context.Context, actor *entity.ActorContext, id string, comment string) (*entity.SubmissionOutputModel, error) {
	err := authorize(actor, common.RoleHeadOfDepartment, common.RoleHeadOfUnit,
		common.RoleDocumentStaff, common.RoleFinanceStaff)
	if err != nil {
		return nil, err
	}

	if comment == "" {
		return nil, ErrCommentRequired
	}

	submission, err := s.getSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission.Status == common.Completed || submission.Status == common.Rejected {
		return nil, ErrWrongSubmissionStatus
	}

	if err := s.submissionRepo.RejectSubmission(ctx, submission.Id, comment, actor.UserId); err != nil {
		return nil, s.mapMutation(err)
	}

	return s.refresh(ctx, id)
}

func (s *SubmissionService) getSubmission(ctx context.Context, id string) (*entity.Submission, error) {
	submission, err := s.submissionRepo.GetSubmissionById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}

		return nil, err
	}

	return submission, nil
}

func (s *SubmissionService) refresh(ctx context.Context, id string) (*entity.SubmissionOutputModel, error) {
	submission, err := s.submissionRepo.GetSubmissionById(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapSubmission(submission), nil
}

func (s *SubmissionService) mapMutation(err error) error {
	switch {
	case errors.Is(err, repo_errors.ErrNotFound):
		return ErrSubmissionNotFound
	case errors.Is(err, repo_errors.ErrConflict):
		return ErrStateConflict
	}

	return err
}
