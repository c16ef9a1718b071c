package service

import (
	"context"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo/repo_errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Hand-rolled repository mocks: every method defers to an overridable Func
// field and falls back to a harmless default.

type mockProjectRepo struct {
	CreateProjectFunc          func(ctx context.Context, input *entity.CreateProjectInput) (uuid.UUID, error)
	GetProjectByIdFunc         func(ctx context.Context, id string) (*entity.Project, error)
	ListProjectsFunc           func(ctx context.Context, pg *entity.PaginationInput) ([]entity.Project, int, error)
	ListUnassignedProjectsFunc func(ctx context.Context, workflowTypes []string) ([]entity.Project, int, error)
	ListAssignedProjectsFunc   func(ctx context.Context, filter *entity.AssignedProjectsFilter) ([]entity.Project, int, error)
	AssignProjectsFunc         func(ctx context.Context, items []entity.AssignProjectItem, actorId uuid.UUID) error
	ChangeAssigneeFunc         func(ctx context.Context, projectId, newUserId, actorId uuid.UUID) error
	AddAssigneeFunc            func(ctx context.Context, projectId, userId, actorId uuid.UUID) error
	ClaimProjectFunc           func(ctx context.Context, projectId, userId uuid.UUID) error
	AcceptProjectsFunc         func(ctx context.Context, projectIds []uuid.UUID, userId uuid.UUID) error
	ReturnProjectFunc          func(ctx context.Context, projectId, userId uuid.UUID) error
	CancelProjectImmediateFunc func(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error
	RequestCancellationFunc    func(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error
	ApproveCancellationFunc    func(ctx context.Context, projectId, actorId uuid.UUID) error
	RejectCancellationFunc     func(ctx context.Context, projectId, actorId uuid.UUID) error
	GetActiveCancellationFunc  func(ctx context.Context, projectId string) (*entity.ProjectCancellation, error)
	UpdateProjectFunc          func(ctx context.Context, projectId uuid.UUID, input *entity.UpdateProjectInput, actorId uuid.UUID) error
	DeleteProjectFunc          func(ctx context.Context, projectId uuid.UUID) error
	GetProjectHistoryFunc      func(ctx context.Context, projectId string) ([]entity.ProjectHistory, error)
}

func (m *mockProjectRepo) CreateProject(ctx context.Context, input *entity.CreateProjectInput) (uuid.UUID, error) {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, input)
	}
	return uuid.New(), nil
}

func (m *mockProjectRepo) GetProjectById(ctx context.Context, id string) (*entity.Project, error) {
	if m.GetProjectByIdFunc != nil {
		return m.GetProjectByIdFunc(ctx, id)
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockProjectRepo) ListProjects(ctx context.Context, pg *entity.PaginationInput) ([]entity.Project, int, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx, pg)
	}
	return nil, 0, nil
}

func (m *mockProjectRepo) ListUnassignedProjects(ctx context.Context, workflowTypes []string) ([]entity.Project, int, error) {
	if m.ListUnassignedProjectsFunc != nil {
		return m.ListUnassignedProjectsFunc(ctx, workflowTypes)
	}
	return nil, 0, nil
}

func (m *mockProjectRepo) ListAssignedProjects(ctx context.Context, filter *entity.AssignedProjectsFilter) ([]entity.Project, int, error) {
	if m.ListAssignedProjectsFunc != nil {
		return m.ListAssignedProjectsFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockProjectRepo) AssignProjects(ctx context.Context, items []entity.AssignProjectItem, actorId uuid.UUID) error {
	if m.AssignProjectsFunc != nil {
		return m.AssignProjectsFunc(ctx, items, actorId)
	}
	return nil
}

func (m *mockProjectRepo) ChangeAssignee(ctx context.Context, projectId, newUserId, actorId uuid.UUID) error {
	if m.ChangeAssigneeFunc != nil {
		return m.ChangeAssigneeFunc(ctx, projectId, newUserId, actorId)
	}
	return nil
}

func (m *mockProjectRepo) AddAssignee(ctx context.Context, projectId, userId, actorId uuid.UUID) error {
	if m.AddAssigneeFunc != nil {
		return m.AddAssigneeFunc(ctx, projectId, userId, actorId)
	}
	return nil
}

func (m *mockProjectRepo) ClaimProject(ctx context.Context, projectId, userId uuid.UUID) error {
	if m.ClaimProjectFunc != nil {
		return m.ClaimProjectFunc(ctx, projectId, userId)
	}
	return nil
}

func (m *mockProjectRepo) AcceptProjects(ctx context.Context, projectIds []uuid.UUID, userId uuid.UUID) error {
	if m.AcceptProjectsFunc != nil {
		return m.AcceptProjectsFunc(ctx, projectIds, userId)
	}
	return nil
}

func (m *mockProjectRepo) ReturnProject(ctx context.Context, projectId, userId uuid.UUID) error {
	if m.ReturnProjectFunc != nil {
		return m.ReturnProjectFunc(ctx, projectId, userId)
	}
	return nil
}

func (m *mockProjectRepo) CancelProjectImmediate(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error {
	if m.CancelProjectImmediateFunc != nil {
		return m.CancelProjectImmediateFunc(ctx, projectId, reason, actorId)
	}
	return nil
}

func (m *mockProjectRepo) RequestCancellation(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error {
	if m.RequestCancellationFunc != nil {
		return m.RequestCancellationFunc(ctx, projectId, reason, actorId)
	}
	return nil
}

func (m *mockProjectRepo) ApproveCancellation(ctx context.Context, projectId, actorId uuid.UUID) error {
	if m.ApproveCancellationFunc != nil {
		return m.ApproveCancellationFunc(ctx, projectId, actorId)
	}
	return nil
}

func (m *mockProjectRepo) RejectCancellation(ctx context.Context, projectId, actorId uuid.UUID) error {
	if m.RejectCancellationFunc != nil {
		return m.RejectCancellationFunc(ctx, projectId, actorId)
	}
	return nil
}

func (m *mockProjectRepo) GetActiveCancellation(ctx context.Context, projectId string) (*entity.ProjectCancellation, error) {
	if m.GetActiveCancellationFunc != nil {
		return m.GetActiveCancellationFunc(ctx, projectId)
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockProjectRepo) UpdateProject(ctx context.Context, projectId uuid.UUID, input *entity.UpdateProjectInput, actorId uuid.UUID) error {
	if m.UpdateProjectFunc != nil {
		return m.UpdateProjectFunc(ctx, projectId, input, actorId)
	}
	return nil
}

func (m *mockProjectRepo) DeleteProject(ctx context.Context, projectId uuid.UUID) error {
	if m.DeleteProjectFunc != nil {
		return m.DeleteProjectFunc(ctx, projectId)
	}
	return nil
}

func (m *mockProjectRepo) GetProjectHistory(ctx context.Context, projectId string) ([]entity.ProjectHistory, error) {
	if m.GetProjectHistoryFunc != nil {
		return m.GetProjectHistoryFunc(ctx, projectId)
	}
	return nil, nil
}

type mockSubmissionRepo struct {
	CreateSubmissionFunc          func(ctx context.Context, input *entity.CreateSubmissionInput, stepId uuid.UUID) (uuid.UUID, error)
	GetSubmissionByIdFunc         func(ctx context.Context, id string) (*entity.Submission, error)
	GetSubmissionsByProjectFunc   func(ctx context.Context, projectId string) ([]entity.Submission, error)
	GetStaffSubmissionsByTypeFunc func(ctx context.Context, projectId, workflowType string) ([]entity.Submission, error)
	CountSubmissionsByProjectFunc func(ctx context.Context, projectId string) (int, error)
	ApproveSubmissionFunc         func(ctx context.Context, id uuid.UUID, requiresSignature bool, approverId, submitterId uuid.UUID) error
	ProposeSubmissionFunc         func(ctx context.Context, id, proposerId uuid.UUID) error
	CompleteSubmissionFunc        func(ctx context.Context, id, signerId uuid.UUID) error
	RejectSubmissionFunc          func(ctx context.Context, id uuid.UUID, comment string, actorId uuid.UUID) error
}

func (m *mockSubmissionRepo) CreateSubmission(ctx context.Context, input *entity.CreateSubmissionInput, stepId uuid.UUID) (uuid.UUID, error) {
	if m.CreateSubmissionFunc != nil {
		return m.CreateSubmissionFunc(ctx, input, stepId)
	}
	return uuid.New(), nil
}

func (m *mockSubmissionRepo) GetSubmissionById(ctx context.Context, id string) (*entity.Submission, error) {
	if m.GetSubmissionByIdFunc != nil {
		return m.GetSubmissionByIdFunc(ctx, id)
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockSubmissionRepo) GetSubmissionsByProject(ctx context.Context, projectId string) ([]entity.Submission, error) {
	if m.GetSubmissionsByProjectFunc != nil {
		return m.GetSubmissionsByProjectFunc(ctx, projectId)
	}
	return nil, nil
}

func (m *mockSubmissionRepo) GetStaffSubmissionsByType(ctx context.Context, projectId, workflowType string) ([]entity.Submission, error) {
	if m.GetStaffSubmissionsByTypeFunc != nil {
		return m.GetStaffSubmissionsByTypeFunc(ctx, projectId, workflowType)
	}
	return nil, nil
}

func (m *mockSubmissionRepo) CountSubmissionsByProject(ctx context.Context, projectId string) (int, error) {
	if m.CountSubmissionsByProjectFunc != nil {
		return m.CountSubmissionsByProjectFunc(ctx, projectId)
	}
	return 0, nil
}

func (m *mockSubmissionRepo) ApproveSubmission(ctx context.Context, id uuid.UUID, requiresSignature bool, approverId, submitterId uuid.UUID) error {
	if m.ApproveSubmissionFunc != nil {
		return m.ApproveSubmissionFunc(ctx, id, requiresSignature, approverId, submitterId)
	}
	return nil
}

func (m *mockSubmissionRepo) ProposeSubmission(ctx context.Context, id, proposerId uuid.UUID) error {
	if m.ProposeSubmissionFunc != nil {
		return m.ProposeSubmissionFunc(ctx, id, proposerId)
	}
	return nil
}

func (m *mockSubmissionRepo) CompleteSubmission(ctx context.Context, id, signerId uuid.UUID) error {
	if m.CompleteSubmissionFunc != nil {
		return m.CompleteSubmissionFunc(ctx, id, signerId)
	}
	return nil
}

func (m *mockSubmissionRepo) RejectSubmission(ctx context.Context, id uuid.UUID, comment string, actorId uuid.UUID) error {
	if m.RejectSubmissionFunc != nil {
		return m.RejectSubmissionFunc(ctx, id, comment, actorId)
	}
	return nil
}

type mockWorkflowRepo struct {
	GetTemplateByTypeFunc     func(ctx context.Context, workflowType string) (*entity.WorkflowTemplate, error)
	GetStepsByTypeFunc        func(ctx context.Context, workflowType string) ([]entity.WorkflowStep, error)
	GetStepByTypeAndOrderFunc func(ctx context.Context, workflowType string, order int) (*entity.WorkflowStep, error)
	GetStepByIdFunc           func(ctx context.Context, id string) (*entity.WorkflowStep, error)
}

func (m *mockWorkflowRepo) GetTemplateByType(ctx context.Context, workflowType string) (*entity.WorkflowTemplate, error) {
	if m.GetTemplateByTypeFunc != nil {
		return m.GetTemplateByTypeFunc(ctx, workflowType)
	}
	return &entity.WorkflowTemplate{Id: uuid.New(), Type: workflowType}, nil
}

func (m *mockWorkflowRepo) GetStepsByType(ctx context.Context, workflowType string) ([]entity.WorkflowStep, error) {
	if m.GetStepsByTypeFunc != nil {
		return m.GetStepsByTypeFunc(ctx, workflowType)
	}
	return nil, nil
}

func (m *mockWorkflowRepo) GetStepByTypeAndOrder(ctx context.Context, workflowType string, order int) (*entity.WorkflowStep, error) {
	if m.GetStepByTypeAndOrderFunc != nil {
		return m.GetStepByTypeAndOrderFunc(ctx, workflowType, order)
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockWorkflowRepo) GetStepById(ctx context.Context, id string) (*entity.WorkflowStep, error) {
	if m.GetStepByIdFunc != nil {
		return m.GetStepByIdFunc(ctx, id)
	}
	return nil, repo_errors.ErrNotFound
}

type mockUserRepo struct {
	CreateUserFunc            func(ctx context.Context, input *entity.RegisterUserInput) (uuid.UUID, error)
	GetUserByIdFunc           func(ctx context.Context, id string) (*entity.User, error)
	GetUserByCredentialsFunc  func(ctx context.Context, username, fullName string) (*entity.User, error)
	ListUsersFunc             func(ctx context.Context, filter *entity.UserListFilter) ([]entity.User, error)
	GetRoleAssignmentsFunc    func(ctx context.Context, userId string) ([]entity.RoleAssignment, error)
	UpsertRoleAssignmentFunc  func(ctx context.Context, input *entity.UpsertRoleInput) (*entity.RoleAssignment, error)
	UpsertRoleAssignmentsFunc func(ctx context.Context, inputs []entity.UpsertRoleInput) error
	DeleteUserFunc            func(ctx context.Context, id string) error
}

func (m *mockUserRepo) CreateUser(ctx context.Context, input *entity.RegisterUserInput) (uuid.UUID, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, input)
	}
	return uuid.New(), nil
}

func (m *mockUserRepo) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	if m.GetUserByIdFunc != nil {
		return m.GetUserByIdFunc(ctx, id)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	return &entity.User{Id: parsed, Username: "someone"}, nil
}

func (m *mockUserRepo) GetUserByCredentials(ctx context.Context, username, fullName string) (*entity.User, error) {
	if m.GetUserByCredentialsFunc != nil {
		return m.GetUserByCredentialsFunc(ctx, username, fullName)
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockUserRepo) ListUsers(ctx context.Context, filter *entity.UserListFilter) ([]entity.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockUserRepo) GetRoleAssignments(ctx context.Context, userId string) ([]entity.RoleAssignment, error) {
	if m.GetRoleAssignmentsFunc != nil {
		return m.GetRoleAssignmentsFunc(ctx, userId)
	}
	return nil, nil
}

func (m *mockUserRepo) UpsertRoleAssignment(ctx context.Context, input *entity.UpsertRoleInput) (*entity.RoleAssignment, error) {
	if m.UpsertRoleAssignmentFunc != nil {
		return m.UpsertRoleAssignmentFunc(ctx, input)
	}
	return &entity.RoleAssignment{Id: uuid.New(), UserId: input.UserId, Role: input.Role}, nil
}

func (m *mockUserRepo) UpsertRoleAssignments(ctx context.Context, inputs []entity.UpsertRoleInput) error {
	if m.UpsertRoleAssignmentsFunc != nil {
		return m.UpsertRoleAssignmentsFunc(ctx, inputs)
	}
	return nil
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

type mockOrgRepo struct {
	ListDepartmentsFunc       func(ctx context.Context) ([]entity.Department, error)
	GetDepartmentByIdFunc     func(ctx context.Context, id string) (*entity.Department, error)
	ListUnitsByDepartmentFunc func(ctx context.Context, deptId string) ([]entity.Unit, error)
	GetUnitByIdFunc           func(ctx context.Context, id string) (*entity.Unit, error)
}

func (m *mockOrgRepo) ListDepartments(ctx context.Context) ([]entity.Department, error) {
	if m.ListDepartmentsFunc != nil {
		return m.ListDepartmentsFunc(ctx)
	}
	return nil, nil
}

func (m *mockOrgRepo) GetDepartmentById(ctx context.Context, id string) (*entity.Department, error) {
	if m.GetDepartmentByIdFunc != nil {
		return m.GetDepartmentByIdFunc(ctx, id)
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockOrgRepo) ListUnitsByDepartment(ctx context.Context, deptId string) ([]entity.Unit, error) {
	if m.ListUnitsByDepartmentFunc != nil {
		return m.ListUnitsByDepartmentFunc(ctx, deptId)
	}
	return nil, nil
}

func (m *mockOrgRepo) GetUnitById(ctx context.Context, id string) (*entity.Unit, error) {
	if m.GetUnitByIdFunc != nil {
		return m.GetUnitByIdFunc(ctx, id)
	}
	return nil, repo_errors.ErrNotFound
}

type mockDelegationRepo struct {
	CreateDelegationFunc            func(ctx context.Context, input *entity.CreateDelegationInput) (uuid.UUID, error)
	CancelDelegationFunc            func(ctx context.Context, id string) error
	GetDelegationByIdFunc           func(ctx context.Context, id string) (*entity.Delegation, error)
	ListDelegationsForDelegateeFunc func(ctx context.Context, delegateeId uuid.UUID) ([]entity.Delegation, error)
}

func (m *mockDelegationRepo) CreateDelegation(ctx context.Context, input *entity.CreateDelegationInput) (uuid.UUID, error) {
	if m.CreateDelegationFunc != nil {
		return m.CreateDelegationFunc(ctx, input)
	}
	return uuid.New(), nil
}

func (m *mockDelegationRepo) CancelDelegation(ctx context.Context, id string) error {
	if m.CancelDelegationFunc != nil {
		return m.CancelDelegationFunc(ctx, id)
	}
	return nil
}

func (m *mockDelegationRepo) GetDelegationById(ctx context.Context, id string) (*entity.Delegation, error) {
	if m.GetDelegationByIdFunc != nil {
		return m.GetDelegationByIdFunc(ctx, id)
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockDelegationRepo) ListDelegationsForDelegatee(ctx context.Context, delegateeId uuid.UUID) ([]entity.Delegation, error) {
	if m.ListDelegationsForDelegateeFunc != nil {
		return m.ListDelegationsForDelegateeFunc(ctx, delegateeId)
	}
	return nil, nil
}

// actor helpers shared across the service tests

func actorWith(claims ...entity.RoleClaim) *entity.ActorContext {
	return &entity.ActorContext{UserId: uuid.New(), OwnRoles: claims}
}

func supplyClaim(role string) entity.RoleClaim {
	return entity.RoleClaim{Role: role, DepartmentCode: "SUPPLY", DepartmentId: uuid.NewString(), UnitId: uuid.NewString()}
}

func deptClaim(role string, code string) entity.RoleClaim {
	return entity.RoleClaim{Role: role, DepartmentCode: code, DepartmentId: uuid.NewString()}
}

func timeMustParse(t *testing.T, day string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}
