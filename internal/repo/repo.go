package repo

import (
	"context"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo/pgdb"
	"procurement-workflow-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Org interface {
	ListDepartments(ctx context.Context) ([]entity.Department, error)
	GetDepartmentById(ctx context.Context, id string) (*entity.Department, error)
	ListUnitsByDepartment(ctx context.Context, deptId string) ([]entity.Unit, error)
	GetUnitById(ctx context.Context, id string) (*entity.Unit, error)
}

type User interface {
	CreateUser(ctx context.Context, input *entity.RegisterUserInput) (uuid.UUID, error)
	GetUserById(ctx context.Context, id string) (*entity.User, error)
	GetUserByCredentials(ctx context.Context, username string, fullName string) (*entity.User, error)
	ListUsers(ctx context.Context, filter *entity.UserListFilter) ([]entity.User, error)
	GetRoleAssignments(ctx context.Context, userId string) ([]entity.RoleAssignment, error)
	UpsertRoleAssignment(ctx context.Context, input *entity.UpsertRoleInput) (*entity.RoleAssignment, error)
	UpsertRoleAssignments(ctx context.Context, inputs []entity.UpsertRoleInput) error
	DeleteUser(ctx context.Context, id string) error
}

type Delegation interface {
	CreateDelegation(ctx context.Context, input *entity.CreateDelegationInput) (uuid.UUID, error)
	CancelDelegation(ctx context.Context, id string) error
	GetDelegationById(ctx context.Context, id string) (*entity.Delegation, error)
	ListDelegationsForDelegatee(ctx context.Context, delegateeId uuid.UUID) ([]entity.Delegation, error)
}

type Workflow interface {
	GetTemplateByType(ctx context.Context, workflowType string) (*entity.WorkflowTemplate, error)
	GetStepsByType(ctx context.Context, workflowType string) ([]entity.WorkflowStep, error)
	GetStepByTypeAndOrder(ctx context.Context, workflowType string, order int) (*entity.WorkflowStep, error)
	GetStepById(ctx context.Context, id string) (*entity.WorkflowStep, error)
}

type Project interface {
	CreateProject(ctx context.Context, input *entity.CreateProjectInput) (uuid.UUID, error)
	GetProjectById(ctx context.Context, id string) (*entity.Project, error)
	ListProjects(ctx context.Context, pg *entity.PaginationInput) ([]entity.Project, int, error)
	ListUnassignedProjects(ctx context.Context, workflowTypes []string) ([]entity.Project, int, error)
	ListAssignedProjects(ctx context.Context, filter *entity.AssignedProjectsFilter) ([]entity.Project, int, error)

	AssignProjects(ctx context.Context, items []entity.AssignProjectItem, actorId uuid.UUID) error
	ChangeAssignee(ctx context.Context, projectId uuid.UUID, newUserId uuid.UUID, actorId uuid.UUID) error
	AddAssignee(ctx context.Context, projectId uuid.UUID, userId uuid.UUID, actorId uuid.UUID) error
	ClaimProject(ctx context.Context, projectId uuid.UUID, userId uuid.UUID) error
	AcceptProjects(ctx context.Context, projectIds []uuid.UUID, userId uuid.UUID) error
	ReturnProject(ctx context.Context, projectId uuid.UUID, userId uuid.UUID) error

	CancelProjectImmediate(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error
	RequestCancellation(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error
	ApproveCancellation(ctx context.Context, projectId uuid.UUID, actorId uuid.UUID) error
	RejectCancellation(ctx context.Context, projectId uuid.UUID, actorId uuid.UUID) error
	GetActiveCancellation(ctx context.Context, projectId string) (*entity.ProjectCancellation, error)

	UpdateProject(ctx context.Context, projectId uuid.UUID, input *entity.UpdateProjectInput, actorId uuid.UUID) error
	DeleteProject(ctx context.Context, projectId uuid.UUID) error
	GetProjectHistory(ctx context.Context, projectId string) ([]entity.ProjectHistory, error)
}

type Submission interface {
	CreateSubmission(ctx context.Context, input *entity.CreateSubmissionInput, stepId uuid.UUID) (uuid.UUID, error)
	GetSubmissionById(ctx context.Context, id string) (*entity.Submission, error)
	GetSubmissionsByProject(ctx context.Context, projectId string) ([]entity.Submission, error)
	GetStaffSubmissionsByType(ctx context.Context, projectId string, workflowType string) ([]entity.Submission, error)
	CountSubmissionsByProject(ctx context.Context, projectId string) (int, error)

	ApproveSubmission(ctx context.Context, id uuid.UUID, requiresSignature bool, approverId uuid.UUID, submitterId uuid.UUID) error
	ProposeSubmission(ctx context.Context, id uuid.UUID, proposerId uuid.UUID) error
	CompleteSubmission(ctx context.Context, id uuid.UUID, signerId uuid.UUID) error
	RejectSubmission(ctx context.Context, id uuid.UUID, comment string, actorId uuid.UUID) error
}

type Repositories struct {
	Diagnostics
	Org
	User
	Delegation
	Workflow
	Project
	Submission
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Org:         pgdb.NewOrgRepo(p),
		User:        pgdb.NewUserRepo(p),
		Delegation:  pgdb.NewDelegationRepo(p),
		Workflow:    pgdb.NewWorkflowRepo(p),
		Project:     pgdb.NewProjectRepo(p),
		Submission:  pgdb.NewSubmissionRepo(p),
	}
}
