package service

import (
	"context"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo"
	"time"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Auth interface {
	Login(ctx context.Context, username string, fullName string) (*entity.LoginOutputModel, error)
	ParseToken(token string) (uuid.UUID, error)
	ResolveActor(ctx context.Context, userId uuid.UUID, at time.Time) (*entity.ActorContext, error)
}

type User interface {
	RegisterUser(ctx context.Context, actor *entity.ActorContext, input *entity.RegisterUserInput) (*entity.UserOutputModel, error)
	GetUserById(ctx context.Context, id string) (*entity.UserOutputModel, error)
	ListUsers(ctx context.Context, actor *entity.ActorContext, filter *entity.UserListFilter) ([]entity.UserOutputModel, error)
	UpdateUserRole(ctx context.Context, actor *entity.ActorContext, userId string, role string, deptId string, unitId string) (*entity.UserOutputModel, error)
	AddUsersToSupplyUnit(ctx context.Context, actor *entity.ActorContext, unitId string, userIds []string) error
	AddRepresentative(ctx context.Context, actor *entity.ActorContext, unitId string, userId string) (*entity.UserOutputModel, error)
	DeleteUser(ctx context.Context, actor *entity.ActorContext, id string) error
}

type Delegation interface {
	CreateDelegation(ctx context.Context, actor *entity.ActorContext, input *entity.CreateDelegationInput) (*entity.DelegationOutputModel, error)
	CancelDelegation(ctx context.Context, actor *entity.ActorContext, id string) error
	GetDelegationById(ctx context.Context, actor *entity.ActorContext, id string) (*entity.DelegationOutputModel, error)
}

type Org interface {
	ListDepartments(ctx context.Context) ([]entity.DepartmentOutputModel, error)
	GetDepartmentById(ctx context.Context, id string) (*entity.DepartmentOutputModel, error)
	ListUnitsByDepartment(ctx context.Context, deptId string) ([]entity.UnitOutputModel, error)
	GetUnitById(ctx context.Context, id string) (*entity.UnitOutputModel, error)
}

type Project interface {
	CreateProject(ctx context.Context, actor *entity.ActorContext, input *entity.CreateProjectInput) (*entity.ProjectOutputModel, error)
	GetProjectById(ctx context.Context, id string) (*entity.ProjectDetailOutputModel, error)
	ListProjects(ctx context.Context, pg *entity.PaginationInput) (*entity.PaginatedProjectsOutputModel, error)
	ListUnassignedProjects(ctx context.Context, actor *entity.ActorContext) (*entity.PaginatedProjectsOutputModel, error)
	ListAssignedProjects(ctx context.Context, actor *entity.ActorContext, day time.Time) (*entity.PaginatedProjectsOutputModel, error)

	AssignProjects(ctx context.Context, actor *entity.ActorContext, items []entity.AssignProjectItem) error
	ChangeAssignee(ctx context.Context, actor *entity.ActorContext, projectId string, newUserId string) error
	AddAssignee(ctx context.Context, actor *entity.ActorContext, projectId string, userId string) error
	ClaimProject(ctx context.Context, actor *entity.ActorContext, projectId string) error
	AcceptProjects(ctx context.Context, actor *entity.ActorContext, projectIds []string) error
	ReturnProject(ctx context.Context, actor *entity.ActorContext, projectId string) error

	CancelProject(ctx context.Context, actor *entity.ActorContext, projectId string, reason string) error
	ApproveCancellation(ctx context.Context, actor *entity.ActorContext, projectId string) error
	RejectCancellation(ctx context.Context, actor *entity.ActorContext, projectId string) error

	UpdateProject(ctx context.Context, actor *entity.ActorContext, projectId string, input *entity.UpdateProjectInput) (*entity.ProjectOutputModel, error)
	DeleteProject(ctx context.Context, actor *entity.ActorContext, projectId string) error
	GetProjectHistory(ctx context.Context, projectId string) ([]entity.ProjectHistoryOutputModel, error)
}

type Submission interface {
	CreateSubmission(ctx context.Context, actor *entity.ActorContext, input *entity.CreateSubmissionInput) (*entity.SubmissionOutputModel, error)
	GetProjectSubmissions(ctx context.Context, projectId string) (*entity.ProjectSubmissionsOutputModel, error)

	ApproveSubmission(ctx context.Context, actor *entity.ActorContext, id string) (*entity.SubmissionOutputModel, error)
	ProposeSubmission(ctx context.Context, actor *entity.ActorContext, id string) (*entity.SubmissionOutputModel, error)
	SignSubmission(ctx context.Context, actor *entity.ActorContext, id string) (*entity.SubmissionOutputModel, error)
	RejectSubmission(ctx context.Context, actor *entity.ActorContext, id string, comment string) (*entity.SubmissionOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Auth        Auth
	User        User
	Delegation  Delegation
	Org         Org
	Project     Project
	Submission  Submission
}

type Dependencies struct {
	Repos    *repo.Repositories
	SignKey  []byte
	TokenTTL time.Duration
}

func NewServices(deps *Dependencies) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(deps.Repos),
		Auth:        NewAuthService(deps.Repos, deps.SignKey, deps.TokenTTL),
		User:        NewUserService(deps.Repos),
		Delegation:  NewDelegationService(deps.Repos),
		Org:         NewOrgService(deps.Repos),
		Project:     NewProjectService(deps.Repos),
		Submission:  NewSubmissionService(deps.Repos),
	}
}
