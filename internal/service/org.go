package service

import (
	"context"
	"errors"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo"
	"procurement-workflow-api/internal/repo/repo_errors"
)

type OrgService struct {
	orgRepo repo.Org
}

func NewOrgService(repos *repo.Repositories) *OrgService {
	return &OrgService{orgRepo: repos.Org}
}

func (s *OrgService) ListDepartments(ctx context.Context) ([]entity.DepartmentOutputModel, error) {
	departments, err := s.orgRepo.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.DepartmentOutputModel, 0, len(departments))
	for i := range departments {
		out = append(out, *mapDepartment(&departments[i]))
	}

	return out, nil
}

func (s *OrgService) GetDepartmentById(ctx context.Context, id string) (*entity.DepartmentOutputModel, error) {
	dept, err := s.orgRepo.GetDepartmentById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}

		return nil, err
	}

	units, err := s.orgRepo.ListUnitsByDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	out := mapDepartment(dept)
	out.Units = mapUnits(units)

	return out, nil
}

func (s *OrgService) ListUnitsByDepartment(ctx context.Context, deptId string) ([]entity.UnitOutputModel, error) {
	if _, err := s.orgRepo.GetDepartmentById(ctx, deptId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrDepartmentNotFound
		}

		return nil, err
	}

	units, err := s.orgRepo.ListUnitsByDepartment(ctx, deptId)
	if err != nil {
		return nil, err
	}

	return mapUnits(units), nil
}

func (s *OrgService) GetUnitById(ctx context.Context, id string) (*entity.UnitOutputModel, error) {
	unit, err := s.orgRepo.GetUnitById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUnitNotFound
		}

		return nil, err
	}

	return mapUnit(unit), nil
}
