package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo/repo_errors"
	"procurement-workflow-api/pkg/postgres"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrgRepo struct {
	*postgres.Postgres
}

func NewOrgRepo(pgdb *postgres.Postgres) *OrgRepo {
	return &OrgRepo{pgdb}
}

func (r *OrgRepo) ListDepartments(ctx context.Context) ([]entity.Department, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "code", "name").
		From("department").
		OrderBy("code ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]entity.Department, 0)
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.Id, &d.Code, &d.Name); err != nil {
			return departments, err
		}
		departments = append(departments, d)
	}
	if err = rows.Err(); err != nil {
		return departments, err
	}

	return departments, nil
}

func (r *OrgRepo) GetDepartmentById(ctx context.Context, id string) (*entity.Department, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "code", "name").
		From("department").
		Where("id = ?", uuidForm).
		ToSql()

	var d entity.Department
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&d.Id, &d.Code, &d.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &d, nil
}

func (r *OrgRepo) ListUnitsByDepartment(ctx context.Context, deptId string) ([]entity.Unit, error) {
	uuidForm, err := uuid.Parse(deptId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "dept_id", "name", "workflow_types").
		From("unit").
		Where("dept_id = ?", uuidForm).
		OrderBy("name ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make([]entity.Unit, 0)
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.Id, &u.DepartmentId, &u.Name, pq.Array(&u.WorkflowTypes)); err != nil {
			return units, err
		}
		units = append(units, u)
	}
	if err = rows.Err(); err != nil {
		return units, err
	}

	return units, nil
}

func (r *OrgRepo) GetUnitById(ctx context.Context, id string) (*entity.Unit, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "dept_id", "name", "workflow_types").
		From("unit").
		Where("id = ?", uuidForm).
		ToSql()

	var u entity.Unit
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&u.Id, &u.DepartmentId, &u.Name, pq.Array(&u.WorkflowTypes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &u, nil
}
