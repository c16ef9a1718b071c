package service

import (
	"context"
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo"
	"procurement-workflow-api/internal/repo/repo_errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newProjectService(projects *mockProjectRepo, submissions *mockSubmissionRepo,
	workflows *mockWorkflowRepo, users *mockUserRepo, orgs *mockOrgRepo) *ProjectService {
	if projects == nil {
		projects = &mockProjectRepo{}
	}
	if submissions == nil {
		submissions = &mockSubmissionRepo{}
	}
	if workflows == nil {
		workflows = &mockWorkflowRepo{}
	}
	if users == nil {
		users = &mockUserRepo{}
	}
	if orgs == nil {
		orgs = &mockOrgRepo{}
	}

	return NewProjectService(&repo.Repositories{
		Project:    projects,
		Submission: submissions,
		Workflow:   workflows,
		User:       users,
		Org:        orgs,
	})
}

func projectWith(status string, workflowType string, assignees ...uuid.UUID) *entity.Project {
	p := &entity.Project{
		Id:                  uuid.New(),
		ReceiveNo:           "42",
		Title:               "Laboratory equipment",
		ProcurementType:     common.TypeLT500K,
		CurrentWorkflowType: workflowType,
		Status:              status,
		IsUrgent:            common.UrgencyNormal,
		RequestingDeptId:    uuid.New(),
		RequestingUnitId:    uuid.New(),
		CreatedBy:           uuid.New(),
	}
	if common.PhaseForWorkflowType(workflowType) == common.PhaseContract {
		p.ContractAssignees = assignees
	} else {
		p.ProcurementAssignees = assignees
	}

	return p
}

func fixedProjectRepo(p *entity.Project) *mockProjectRepo {
	return &mockProjectRepo{
		GetProjectByIdFunc: func(ctx context.Context, id string) (*entity.Project, error) {
			return p, nil
		},
	}
}

func TestCreateProject_RejectsContractType(t *testing.T) {
	s := newProjectService(nil, nil, nil, nil, nil)
	actor := actorWith(deptClaim(common.RoleAdmin, "REGISTRY"))

	_, err := s.CreateProject(context.Background(), actor, &entity.CreateProjectInput{
		Title:           "x",
		ProcurementType: common.TypeContract,
	})
	require.ErrorIs(t, err, ErrWorkflowTypeMismatch)
}

func TestCreateProject_UnknownWorkflowType(t *testing.T) {
	workflows := &mockWorkflowRepo{
		GetTemplateByTypeFunc: func(ctx context.Context, workflowType string) (*entity.WorkflowTemplate, error) {
			return nil, repo_errors.ErrNotFound
		},
	}
	s := newProjectService(nil, nil, workflows, nil, nil)
	actor := actorWith(deptClaim(common.RoleAdmin, "REGISTRY"))

	_, err := s.CreateProject(context.Background(), actor, &entity.CreateProjectInput{
		Title:           "x",
		ProcurementType: "SOMETHING_ELSE",
	})
	require.ErrorIs(t, err, ErrWorkflowTypeMismatch)
}

func TestCreateProject_DefaultsAndAttribution(t *testing.T) {
	deptId := uuid.New()
	unitId := uuid.New()

	var created *entity.CreateProjectInput
	projects := &mockProjectRepo{
		CreateProjectFunc: func(ctx context.Context, input *entity.CreateProjectInput) (uuid.UUID, error) {
			created = input
			return uuid.New(), nil
		},
		GetProjectByIdFunc: func(ctx context.Context, id string) (*entity.Project, error) {
			return projectWith(common.Unassigned, common.TypeLT500K), nil
		},
	}
	orgs := &mockOrgRepo{
		GetDepartmentByIdFunc: func(ctx context.Context, id string) (*entity.Department, error) {
			return &entity.Department{Id: deptId, Code: "REGISTRY"}, nil
		},
		GetUnitByIdFunc: func(ctx context.Context, id string) (*entity.Unit, error) {
			return &entity.Unit{Id: unitId, DepartmentId: deptId}, nil
		},
	}
	s := newProjectService(projects, nil, nil, nil, orgs)
	actor := actorWith(deptClaim(common.RoleRepresentative, "REGISTRY"))

	out, err := s.CreateProject(context.Background(), actor, &entity.CreateProjectInput{
		Title:            "Laboratory equipment",
		ProcurementType:  common.TypeLT500K,
		RequestingDeptId: deptId.String(),
		RequestingUnitId: unitId.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Equal(t, common.UrgencyNormal, created.IsUrgent)
	require.Equal(t, actor.UserId, created.CreatedBy)
}

func TestCreateProject_GuestForbidden(t *testing.T) {
	s := newProjectService(nil, nil, nil, nil, nil)
	actor := actorWith(deptClaim(common.RoleGuest, "REGISTRY"))

	_, err := s.CreateProject(context.Background(), actor, &entity.CreateProjectInput{Title: "x"})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAssignProjects(t *testing.T) {
	head := actorWith(supplyClaim(common.RoleHeadOfUnit))

	t.Run("requires unassigned status", func(t *testing.T) {
		s := newProjectService(fixedProjectRepo(projectWith(common.InProgress, common.TypeLT500K)), nil, nil, nil, nil)

		err := s.AssignProjects(context.Background(), head, []entity.AssignProjectItem{
			{ProjectId: uuid.New(), UserId: uuid.New()},
		})
		require.ErrorIs(t, err, ErrProjectNotUnassigned)
	})

	t.Run("rejects already assigned phase", func(t *testing.T) {
		p := projectWith(common.Unassigned, common.TypeLT500K, uuid.New())
		s := newProjectService(fixedProjectRepo(p), nil, nil, nil, nil)

		err := s.AssignProjects(context.Background(), head, []entity.AssignProjectItem{
			{ProjectId: p.Id, UserId: uuid.New()},
		})
		require.ErrorIs(t, err, ErrProjectAlreadyAssigned)
	})

	t.Run("resolves phase from the workflow type", func(t *testing.T) {
		p := projectWith(common.Unassigned, common.TypeContract)
		projects := fixedProjectRepo(p)
		var got []entity.AssignProjectItem
		projects.AssignProjectsFunc = func(ctx context.Context, items []entity.AssignProjectItem, actorId uuid.UUID) error {
			got = items
			return nil
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		err := s.AssignProjects(context.Background(), head, []entity.AssignProjectItem{
			{ProjectId: p.Id, UserId: uuid.New()},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, common.PhaseContract, got[0].Phase)
	})

	t.Run("general staff may not assign", func(t *testing.T) {
		s := newProjectService(nil, nil, nil, nil, nil)
		staff := actorWith(supplyClaim(common.RoleGeneralStaff))

		err := s.AssignProjects(context.Background(), staff, nil)
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestGetProjectById_PendingCancellation(t *testing.T) {
	p := projectWith(common.WaitingCancel, common.TypeLT500K, uuid.New())
	projects := fixedProjectRepo(p)
	projects.GetActiveCancellationFunc = func(ctx context.Context, projectId string) (*entity.ProjectCancellation, error) {
		return &entity.ProjectCancellation{
			Id:        uuid.New(),
			ProjectId: p.Id,
			Reason:    "duplicate request",
			IsActive:  true,
		}, nil
	}
	s := newProjectService(projects, nil, nil, nil, nil)

	detail, err := s.GetProjectById(context.Background(), p.Id.String())
	require.NoError(t, err)
	require.NotNil(t, detail.Cancellation)
	require.Equal(t, "PENDING", detail.Cancellation.Status)
	require.Equal(t, "duplicate request", detail.Cancellation.Reason)
}

func TestGetProjectById_NoCancellation(t *testing.T) {
	p := projectWith(common.InProgress, common.TypeLT500K, uuid.New())
	s := newProjectService(fixedProjectRepo(p), nil, nil, nil, nil)

	detail, err := s.GetProjectById(context.Background(), p.Id.String())
	require.NoError(t, err)
	require.Nil(t, detail.Cancellation)
}

func TestAddAssignee(t *testing.T) {
	head := actorWith(supplyClaim(common.RoleHeadOfUnit))

	t.Run("adds a second assignee to the phase", func(t *testing.T) {
		project := projectWith(common.InProgress, common.TypeLT500K, uuid.New())
		projects := fixedProjectRepo(project)
		var gotUserId, gotActorId uuid.UUID
		projects.AddAssigneeFunc = func(ctx context.Context, projectId, userId, actorId uuid.UUID) error {
			gotUserId, gotActorId = userId, actorId
			return nil
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		newcomer := uuid.NewString()
		require.NoError(t, s.AddAssignee(context.Background(), head, project.Id.String(), newcomer))
		require.Equal(t, newcomer, gotUserId.String())
		require.Equal(t, head.UserId, gotActorId)
	})

	t.Run("phase is already fully staffed", func(t *testing.T) {
		project := projectWith(common.InProgress, common.TypeLT500K, uuid.New(), uuid.New())
		s := newProjectService(fixedProjectRepo(project), nil, nil, nil, nil)

		err := s.AddAssignee(context.Background(), head, project.Id.String(), uuid.NewString())
		require.ErrorIs(t, err, ErrAssigneeLimitReached)
	})

	t.Run("user already holds the phase", func(t *testing.T) {
		existing := uuid.New()
		project := projectWith(common.InProgress, common.TypeLT500K, existing)
		s := newProjectService(fixedProjectRepo(project), nil, nil, nil, nil)

		err := s.AddAssignee(context.Background(), head, project.Id.String(), existing.String())
		require.ErrorIs(t, err, ErrAssigneeAlreadyAdded)
	})

	t.Run("limit counts the contract slot on contract projects", func(t *testing.T) {
		project := projectWith(common.InProgress, common.TypeContract, uuid.New(), uuid.New())
		s := newProjectService(fixedProjectRepo(project), nil, nil, nil, nil)

		err := s.AddAssignee(context.Background(), head, project.Id.String(), uuid.NewString())
		require.ErrorIs(t, err, ErrAssigneeLimitReached)
	})

	t.Run("staff may not add assignees", func(t *testing.T) {
		project := projectWith(common.InProgress, common.TypeLT500K, uuid.New())
		staff := actorWith(supplyClaim(common.RoleGeneralStaff))
		s := newProjectService(fixedProjectRepo(project), nil, nil, nil, nil)

		err := s.AddAssignee(context.Background(), staff, project.Id.String(), uuid.NewString())
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestClaimProject(t *testing.T) {
	staff := actorWith(supplyClaim(common.RoleGeneralStaff))

	t.Run("claims an empty unassigned project", func(t *testing.T) {
		p := projectWith(common.Unassigned, common.TypeLT500K)
		projects := fixedProjectRepo(p)
		var claimedBy uuid.UUID
		projects.ClaimProjectFunc = func(ctx context.Context, projectId, userId uuid.UUID) error {
			claimedBy = userId
			return nil
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		require.NoError(t, s.ClaimProject(context.Background(), staff, p.Id.String()))
		require.Equal(t, staff.UserId, claimedBy)
	})

	t.Run("lost claim race maps to conflict", func(t *testing.T) {
		p := projectWith(common.Unassigned, common.TypeLT500K)
		projects := fixedProjectRepo(p)
		projects.ClaimProjectFunc = func(ctx context.Context, projectId, userId uuid.UUID) error {
			return repo_errors.ErrConflict
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		err := s.ClaimProject(context.Background(), staff, p.Id.String())
		require.ErrorIs(t, err, ErrStateConflict)
	})

	t.Run("rejects a project someone already holds", func(t *testing.T) {
		p := projectWith(common.Unassigned, common.TypeLT500K, uuid.New())
		s := newProjectService(fixedProjectRepo(p), nil, nil, nil, nil)

		err := s.ClaimProject(context.Background(), staff, p.Id.String())
		require.ErrorIs(t, err, ErrProjectAlreadyAssigned)
	})
}

func TestAcceptProjects(t *testing.T) {
	staff := actorWith(supplyClaim(common.RoleGeneralStaff))

	t.Run("actor must be an assignee", func(t *testing.T) {
		p := projectWith(common.WaitingAccept, common.TypeLT500K, uuid.New())
		s := newProjectService(fixedProjectRepo(p), nil, nil, nil, nil)

		err := s.AcceptProjects(context.Background(), staff, []string{p.Id.String()})
		require.ErrorIs(t, err, ErrNotProjectAssignee)
	})

	t.Run("accepts own waiting project", func(t *testing.T) {
		p := projectWith(common.WaitingAccept, common.TypeLT500K, staff.UserId)
		s := newProjectService(fixedProjectRepo(p), nil, nil, nil, nil)

		require.NoError(t, s.AcceptProjects(context.Background(), staff, []string{p.Id.String()}))
	})

	t.Run("wrong status", func(t *testing.T) {
		p := projectWith(common.InProgress, common.TypeLT500K, staff.UserId)
		s := newProjectService(fixedProjectRepo(p), nil, nil, nil, nil)

		err := s.AcceptProjects(context.Background(), staff, []string{p.Id.String()})
		require.ErrorIs(t, err, ErrProjectNotWaitingAccept)
	})
}

func TestReturnProject(t *testing.T) {
	staff := actorWith(supplyClaim(common.RoleGeneralStaff))

	t.Run("blocked once submissions exist", func(t *testing.T) {
		p := projectWith(common.InProgress, common.TypeLT500K, staff.UserId)
		submissions := &mockSubmissionRepo{
			CountSubmissionsByProjectFunc: func(ctx context.Context, projectId string) (int, error) {
				return 2, nil
			},
		}
		s := newProjectService(fixedProjectRepo(p), submissions, nil, nil, nil)

		err := s.ReturnProject(context.Background(), staff, p.Id.String())
		require.ErrorIs(t, err, ErrProjectHasSubmissions)
	})

	t.Run("returns an untouched project to the pool", func(t *testing.T) {
		p := projectWith(common.InProgress, common.TypeLT500K, staff.UserId)
		projects := fixedProjectRepo(p)
		returned := false
		projects.ReturnProjectFunc = func(ctx context.Context, projectId, userId uuid.UUID) error {
			returned = true
			return nil
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		require.NoError(t, s.ReturnProject(context.Background(), staff, p.Id.String()))
		require.True(t, returned)
	})
}

func TestCancelProject(t *testing.T) {
	t.Run("supply head cancels immediately", func(t *testing.T) {
		head := actorWith(supplyClaim(common.RoleHeadOfDepartment))
		p := projectWith(common.WaitingAccept, common.TypeLT500K)
		projects := fixedProjectRepo(p)
		immediate := false
		projects.CancelProjectImmediateFunc = func(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error {
			immediate = true
			return nil
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		require.NoError(t, s.CancelProject(context.Background(), head, p.Id.String(), "duplicate request"))
		require.True(t, immediate)
	})

	t.Run("staff opens a cancellation request", func(t *testing.T) {
		staff := actorWith(supplyClaim(common.RoleGeneralStaff))
		p := projectWith(common.InProgress, common.TypeLT500K, staff.UserId)
		projects := fixedProjectRepo(p)
		requested := false
		projects.RequestCancellationFunc = func(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error {
			requested = true
			return nil
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		require.NoError(t, s.CancelProject(context.Background(), staff, p.Id.String(), "no longer needed"))
		require.True(t, requested)
	})

	t.Run("only one pending request at a time", func(t *testing.T) {
		staff := actorWith(supplyClaim(common.RoleGeneralStaff))
		p := projectWith(common.InProgress, common.TypeLT500K, staff.UserId)
		projects := fixedProjectRepo(p)
		projects.GetActiveCancellationFunc = func(ctx context.Context, projectId string) (*entity.ProjectCancellation, error) {
			return &entity.ProjectCancellation{Id: uuid.New(), ProjectId: p.Id, IsActive: true}, nil
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		err := s.CancelProject(context.Background(), staff, p.Id.String(), "again")
		require.ErrorIs(t, err, ErrCancellationPending)
	})

	t.Run("already cancelled", func(t *testing.T) {
		head := actorWith(supplyClaim(common.RoleHeadOfUnit))
		p := projectWith(common.Cancelled, common.TypeLT500K)
		s := newProjectService(fixedProjectRepo(p), nil, nil, nil, nil)

		err := s.CancelProject(context.Background(), head, p.Id.String(), "late")
		require.ErrorIs(t, err, ErrProjectCancelled)
	})
}

func TestResolveCancellation(t *testing.T) {
	t.Run("requires a supply head", func(t *testing.T) {
		staff := actorWith(supplyClaim(common.RoleGeneralStaff))
		s := newProjectService(nil, nil, nil, nil, nil)

		err := s.ApproveCancellation(context.Background(), staff, uuid.NewString())
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("nothing pending", func(t *testing.T) {
		head := actorWith(supplyClaim(common.RoleHeadOfUnit))
		p := projectWith(common.InProgress, common.TypeLT500K)
		s := newProjectService(fixedProjectRepo(p), nil, nil, nil, nil)

		err := s.RejectCancellation(context.Background(), head, p.Id.String())
		require.ErrorIs(t, err, ErrCancellationNotFound)
	})

	t.Run("approve cancels the project", func(t *testing.T) {
		head := actorWith(supplyClaim(common.RoleHeadOfUnit))
		p := projectWith(common.WaitingCancel, common.TypeLT500K)
		projects := fixedProjectRepo(p)
		approved := false
		projects.ApproveCancellationFunc = func(ctx context.Context, projectId, actorId uuid.UUID) error {
			approved = true
			return nil
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		require.NoError(t, s.ApproveCancellation(context.Background(), head, p.Id.String()))
		require.True(t, approved)
	})
}

func TestUpdateProject_PhaseAdvance(t *testing.T) {
	head := actorWith(supplyClaim(common.RoleHeadOfUnit))
	contractType := common.TypeContract

	t.Run("blocked while procurement runs", func(t *testing.T) {
		p := projectWith(common.InProgress, common.TypeLT500K, uuid.New())
		workflows := &mockWorkflowRepo{
			GetStepsByTypeFunc: func(ctx context.Context, workflowType string) ([]entity.WorkflowStep, error) {
				return steps(2), nil
			},
		}
		s := newProjectService(fixedProjectRepo(p), &mockSubmissionRepo{}, workflows, nil, nil)

		_, err := s.UpdateProject(context.Background(), head, p.Id.String(), &entity.UpdateProjectInput{
			CurrentWorkflowType: &contractType,
		})
		require.ErrorIs(t, err, ErrProcurementNotCompleted)
	})

	t.Run("only contract is a legal target", func(t *testing.T) {
		p := projectWith(common.InProgress, common.TypeLT500K, uuid.New())
		target := common.TypeEBidding
		s := newProjectService(fixedProjectRepo(p), nil, nil, nil, nil)

		_, err := s.UpdateProject(context.Background(), head, p.Id.String(), &entity.UpdateProjectInput{
			CurrentWorkflowType: &target,
		})
		require.ErrorIs(t, err, ErrWorkflowTypeMismatch)
	})

	t.Run("advances after procurement completes", func(t *testing.T) {
		p := projectWith(common.InProgress, common.TypeLT500K, uuid.New())
		workflows := &mockWorkflowRepo{
			GetStepsByTypeFunc: func(ctx context.Context, workflowType string) ([]entity.WorkflowStep, error) {
				return steps(1), nil
			},
		}
		submissions := &mockSubmissionRepo{
			GetStaffSubmissionsByTypeFunc: func(ctx context.Context, projectId, workflowType string) ([]entity.Submission, error) {
				if workflowType == common.TypeContract {
					return nil, nil
				}
				return []entity.Submission{submission(1, 1, common.Completed)}, nil
			},
		}
		s := newProjectService(fixedProjectRepo(p), submissions, workflows, nil, nil)

		_, err := s.UpdateProject(context.Background(), head, p.Id.String(), &entity.UpdateProjectInput{
			CurrentWorkflowType: &contractType,
		})
		require.NoError(t, err)
	})
}

func TestUpdateProject_NoNewChanges(t *testing.T) {
	head := actorWith(supplyClaim(common.RoleHeadOfUnit))
	p := projectWith(common.InProgress, common.TypeLT500K, uuid.New())
	projects := fixedProjectRepo(p)
	projects.UpdateProjectFunc = func(ctx context.Context, projectId uuid.UUID, input *entity.UpdateProjectInput, actorId uuid.UUID) error {
		return repo_errors.ErrNoChange
	}
	s := newProjectService(projects, nil, nil, nil, nil)

	title := p.Title
	_, err := s.UpdateProject(context.Background(), head, p.Id.String(), &entity.UpdateProjectInput{
		Title: &title,
	})
	require.ErrorIs(t, err, ErrNoNewChanges)
}

func TestDeleteProject(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		head := actorWith(supplyClaim(common.RoleHeadOfDepartment))
		s := newProjectService(nil, nil, nil, nil, nil)

		err := s.DeleteProject(context.Background(), head, uuid.NewString())
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("referenced projects stay", func(t *testing.T) {
		admin := actorWith(deptClaim(common.RoleAdmin, "REGISTRY"))
		p := projectWith(common.InProgress, common.TypeLT500K)
		projects := fixedProjectRepo(p)
		projects.DeleteProjectFunc = func(ctx context.Context, projectId uuid.UUID) error {
			return repo_errors.ErrRestricted
		}
		s := newProjectService(projects, nil, nil, nil, nil)

		err := s.DeleteProject(context.Background(), admin, p.Id.String())
		require.ErrorIs(t, err, ErrProjectReferenced)
	})
}

func TestListAssignedProjects_FilterShape(t *testing.T) {
	t.Run("staff query their own assignments", func(t *testing.T) {
		staff := actorWith(supplyClaim(common.RoleGeneralStaff))
		var got *entity.AssignedProjectsFilter
		projects := &mockProjectRepo{
			ListAssignedProjectsFunc: func(ctx context.Context, filter *entity.AssignedProjectsFilter) ([]entity.Project, int, error) {
				got = filter
				return nil, 0, nil
			},
		}
		orgs := &mockOrgRepo{
			GetUnitByIdFunc: func(ctx context.Context, id string) (*entity.Unit, error) {
				return &entity.Unit{Id: uuid.New(), WorkflowTypes: []string{common.TypeLT100K}}, nil
			},
		}
		s := newProjectService(projects, nil, nil, nil, orgs)

		day := timeMustParse(t, "2026-03-10")
		_, err := s.ListAssignedProjects(context.Background(), staff, day)
		require.NoError(t, err)
		require.Equal(t, staff.UserId, got.AssigneeId)
		require.Empty(t, got.WorkflowTypes)
		require.Equal(t, day, got.DayStart)
		require.Equal(t, day.AddDate(0, 0, 1), got.DayEnd)
	})

	t.Run("heads query the unit workload", func(t *testing.T) {
		head := actorWith(supplyClaim(common.RoleHeadOfUnit))
		var got *entity.AssignedProjectsFilter
		projects := &mockProjectRepo{
			ListAssignedProjectsFunc: func(ctx context.Context, filter *entity.AssignedProjectsFilter) ([]entity.Project, int, error) {
				got = filter
				return nil, 0, nil
			},
		}
		orgs := &mockOrgRepo{
			GetUnitByIdFunc: func(ctx context.Context, id string) (*entity.Unit, error) {
				return &entity.Unit{Id: uuid.New(), WorkflowTypes: []string{common.TypeMT500K, common.TypeSelection}}, nil
			},
		}
		s := newProjectService(projects, nil, nil, nil, orgs)

		_, err := s.ListAssignedProjects(context.Background(), head, timeMustParse(t, "2026-03-10"))
		require.NoError(t, err)
		require.Equal(t, uuid.Nil, got.AssigneeId)
		require.ElementsMatch(t, []string{common.TypeMT500K, common.TypeSelection}, got.WorkflowTypes)
	})
}
