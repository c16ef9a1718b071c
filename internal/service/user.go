package service

import (
	"context"
	"errors"
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo"
	"procurement-workflow-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo repo.User
	orgRepo  repo.Org
}

func NewUserService(repos *repo.Repositories) *UserService {
	return &UserService{
		userRepo: repos.User,
		orgRepo:  repos.Org,
	}
}

// checkRoleScope validates that the role's level matches the given scope:
// unit-level roles need a unit, department-level roles must not carry one,
// and the unit, when given, has to belong to the department.
func (s *UserService) checkRoleScope(ctx context.Context, role string, deptId string, unitId string) error {
	switch {
	case common.IsUnitLevelRole(role):
		if unitId == "" {
			return ErrRoleScopeMismatch
		}
	case common.IsDeptLevelRole(role) || role == common.RoleSuperAdmin:
		if unitId != "" {
			return ErrRoleScopeMismatch
		}
	default:
		return ErrRoleScopeMismatch
	}

	dept, err := s.orgRepo.GetDepartmentById(ctx, deptId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrDepartmentNotFound
		}

		return err
	}

	if unitId != "" {
		unit, err := s.orgRepo.GetUnitById(ctx, unitId)
		if err != nil {
			if errors.Is(err, repo_errors.ErrNotFound) {
				return ErrUnitNotFound
			}

			return err
		}
		if unit.DepartmentId != dept.Id {
			return ErrRoleScopeMismatch
		}
	}

	return nil
}

func (s *UserService) RegisterUser(ctx context.Context, actor *entity.ActorContext, input *entity.RegisterUserInput) (*entity.UserOutputModel, error) {
	if err := authorize(actor, common.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.checkRoleScope(ctx, input.Role, input.DepartmentId, input.UnitId); err != nil {
		return nil, err
	}

	userId, err := s.userRepo.CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}

	return s.GetUserById(ctx, userId.String())
}

func (s *UserService) GetUserById(ctx context.Context, id string) (*entity.UserOutputModel, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	roles, err := s.userRepo.GetRoleAssignments(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapUser(user, roles), nil
}

func (s *UserService) ListUsers(ctx context.Context, actor *entity.ActorContext, filter *entity.UserListFilter) ([]entity.UserOutputModel, error) {
	err := authorize(actor, common.RoleAdmin, common.RoleHeadOfDepartment, common.RoleHeadOfUnit)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]entity.UserOutputModel, 0, len(users))
	for i := range users {
		roles, err := s.userRepo.GetRoleAssignments(ctx, users[i].Id.String())
		if err != nil {
			return nil, err
		}
		out = append(out, *mapUser(&users[i], roles))
	}

	return out, nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, actor *entity.ActorContext, userId string, role string, deptId string, unitId string) (*entity.UserOutputModel, error) {
	if err := authorize(actor, common.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.checkRoleScope(ctx, role, deptId, unitId); err != nil {
		return nil, err
	}

	input, err := buildUpsertInput(userId, role, deptId, unitId)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetUserById(ctx, userId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	if _, err := s.userRepo.UpsertRoleAssignment(ctx, input); err != nil {
		return nil, err
	}

	return s.GetUserById(ctx, userId)
}

// AddUsersToSupplyUnit staffs a supply unit with GENERAL_STAFF assignments in
// one batch.
func (s *UserService) AddUsersToSupplyUnit(ctx context.Context, actor *entity.ActorContext, unitId string, userIds []string) error {
	if err := authorize(actor, common.RoleAdmin); err != nil {
		return err
	}

	unit, dept, err := s.getUnitWithDepartment(ctx, unitId)
	if err != nil {
		return err
	}
	if dept.Code != common.SupplyDeptCode {
		return ErrWrongDepartment
	}

	inputs := make([]entity.UpsertRoleInput, 0, len(userIds))
	for _, id := range userIds {
		input, err := buildUpsertInput(id, common.RoleGeneralStaff, dept.Id.String(), unit.Id.String())
		if err != nil {
			return err
		}
		inputs = append(inputs, *input)
	}

	return s.userRepo.UpsertRoleAssignments(ctx, inputs)
}

// AddRepresentative attaches a requesting-side representative to a unit.
// Supply units have staff, not representatives.
func (s *UserService) AddRepresentative(ctx context.Context, actor *entity.ActorContext, unitId string, userId string) (*entity.UserOutputModel, error) {
	if err := authorize(actor, common.RoleAdmin); err != nil {
		return nil, err
	}

	unit, dept, err := s.getUnitWithDepartment(ctx, unitId)
	if err != nil {
		return nil, err
	}
	if dept.Code == common.SupplyDeptCode {
		return nil, ErrWrongDepartment
	}

	input, err := buildUpsertInput(userId, common.RoleRepresentative, dept.Id.String(), unit.Id.String())
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.UpsertRoleAssignment(ctx, input); err != nil {
		return nil, err
	}

	return s.GetUserById(ctx, userId)
}

func (s *UserService) DeleteUser(ctx context.Context, actor *entity.ActorContext, id string) error {
	if err := authorize(actor, common.RoleAdmin); err != nil {
		return err
	}

	err := s.userRepo.DeleteUser(ctx, id)
	if errors.Is(err, repo_errors.ErrNotFound) {
		return ErrUserNotFound
	}

	return err
}

func (s *UserService) getUnitWithDepartment(ctx context.Context, unitId string) (*entity.Unit, *entity.Department, error) {
	unit, err := s.orgRepo.GetUnitById(ctx, unitId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, ErrUnitNotFound
		}

		return nil, nil, err
	}

	dept, err := s.orgRepo.GetDepartmentById(ctx, unit.DepartmentId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, ErrDepartmentNotFound
		}

		return nil, nil, err
	}

	return unit, dept, nil
}

func buildUpsertInput(userId string, role string, deptId string, unitId string) (*entity.UpsertRoleInput, error) {
	parsedUser, err := uuid.Parse(userId)
	if err != nil {
		return nil, ErrUserNotFound
	}
	parsedDept, err := uuid.Parse(deptId)
	if err != nil {
		return nil, ErrDepartmentNotFound
	}

	input := &entity.UpsertRoleInput{
		UserId:       parsedUser,
		Role:         role,
		DepartmentId: parsedDept,
	}
	if unitId != "" {
		parsedUnit, err := uuid.Parse(unitId)
		if err != nil {
			return nil, ErrUnitNotFound
		}
		input.UnitId = uuid.NullUUID{UUID: parsedUnit, Valid: true}
	}

	return input, nil
}
