package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo/repo_errors"
	"procurement-workflow-api/pkg/postgres"
	"time"

	"github.com/google/uuid"
)

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pgdb *postgres.Postgres) *UserRepo {
	return &UserRepo{pgdb}
}

func (r *UserRepo) CreateUser(ctx context.Context, input *entity.RegisterUserInput) (uuid.UUID, error) {
	deptId, err := uuid.Parse(input.DepartmentId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	var unitId uuid.NullUUID
	if input.UnitId != "" {
		parsed, err := uuid.Parse(input.UnitId)
		if err != nil {
			return uuid.Nil, repo_errors.ErrNotFound
		}
		unitId = uuid.NullUUID{UUID: parsed, Valid: true}
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	createUserSql, args, _ := r.SqlBuilder.
		Insert("app_user").
		Columns("username", "full_name", "email").
		Values(input.Username, input.FullName, input.Email).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var userId uuid.UUID
	err = tx.QueryRow(createUserSql, args...).Scan(&userId)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	createRoleSql, args, _ := r.SqlBuilder.
		Insert("role_assignment").
		Columns("user_id", "role", "dept_id", "unit_id").
		Values(userId, input.Role, deptId, unitId).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(createRoleSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return userId, nil
}

func (r *UserRepo) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "username", "full_name", "email", "created_at").
		From("app_user").
		Where("id = ?", uuidForm).
		ToSql()

	return r.scanUser(ctx, sqlReq, args)
}

func (r *UserRepo) GetUserByCredentials(ctx context.Context, username string, fullName string) (*entity.User, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "username", "full_name", "email", "created_at").
		From("app_user").
		Where("username = ?", username).
		Where("full_name = ?", fullName).
		ToSql()

	return r.scanUser(ctx, sqlReq, args)
}

func (r *UserRepo) scanUser(ctx context.Context, sqlReq string, args []interface{}) (*entity.User, error) {
	var user entity.User
	var createdAt time.Time
	err := r.Database.QueryRowContext(ctx, sqlReq, args...).
		Scan(&user.Id, &user.Username, &user.FullName, &user.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	user.CreatedAt = createdAt.Format(time.RFC3339)

	return &user, nil
}

func (r *UserRepo) ListUsers(ctx context.Context, filter *entity.UserListFilter) ([]entity.User, error) {
	builder := r.SqlBuilder.
		Select("distinct app_user.id, app_user.username, app_user.full_name, app_user.email, app_user.created_at").
		From("app_user").
		OrderBy("app_user.username ASC")

	if filter != nil && filter.UnitId != "" {
		builder = builder.
			InnerJoin("role_assignment on role_assignment.user_id = app_user.id").
			Where("role_assignment.unit_id = ?", filter.UnitId)
	} else if filter != nil && filter.DepartmentId != "" {
		builder = builder.
			InnerJoin("role_assignment on role_assignment.user_id = app_user.id").
			Where("role_assignment.dept_id = ?", filter.DepartmentId)
	}

	sqlReq, args, _ := builder.ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		var user entity.User
		var createdAt time.Time
		if err := rows.Scan(&user.Id, &user.Username, &user.FullName, &user.Email, &createdAt); err != nil {
			return users, err
		}
		user.CreatedAt = createdAt.Format(time.RFC3339)
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return users, err
	}

	return users, nil
}

func (r *UserRepo) GetRoleAssignments(ctx context.Context, userId string) ([]entity.RoleAssignment, error) {
	uuidForm, err := uuid.Parse(userId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("role_assignment.id, role_assignment.user_id, role_assignment.role, role_assignment.dept_id, department.code, role_assignment.unit_id").
		From("role_assignment").
		InnerJoin("department on department.id = role_assignment.dept_id").
		Where("role_assignment.user_id = ?", uuidForm).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]entity.RoleAssignment, 0)
	for rows.Next() {
		var a entity.RoleAssignment
		if err := rows.Scan(&a.Id, &a.UserId, &a.Role, &a.DepartmentId, &a.DepartmentCode, &a.UnitId); err != nil {
			return assignments, err
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return assignments, err
	}

	return assignments, nil
}

type roleAssignmentRow struct {
	id     uuid.UUID
	role   string
	unitId uuid.NullUUID
}

// pickUpsertTarget selects which of the user's assignments in the department
// an upsert replaces. The row with the same unit scope wins; failing that, a
// GUEST placeholder is replaced wholesale when it is the only assignment.
// Nil means a new row is inserted.
func pickUpsertTarget(rows []roleAssignmentRow, unitId uuid.NullUUID) *roleAssignmentRow {
	for i := range rows {
		if rows[i].unitId.Valid == unitId.Valid && rows[i].unitId.UUID == unitId.UUID {
			return &rows[i]
		}
	}
	if len(rows) == 1 && rows[0].role == common.RoleGuest {
		return &rows[0]
	}

	return nil
}

// upsertRole keeps one assignment per (user, department, unit).
func (r *UserRepo) upsertRole(tx *sql.Tx, input *entity.UpsertRoleInput) (uuid.UUID, error) {
	getRolesSql, args, _ := r.SqlBuilder.
		Select("id", "role", "unit_id").
		From("role_assignment").
		Where("user_id = ?", input.UserId).
		Where("dept_id = ?", input.DepartmentId).
		Suffix("FOR UPDATE").
		RunWith(tx).
		ToSql()

	rows, err := tx.Query(getRolesSql, args...)
	if err != nil {
		return uuid.Nil, err
	}

	deptRows := make([]roleAssignmentRow, 0)
	for rows.Next() {
		var e roleAssignmentRow
		if err := rows.Scan(&e.id, &e.role, &e.unitId); err != nil {
			rows.Close()

			return uuid.Nil, err
		}
		deptRows = append(deptRows, e)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return uuid.Nil, err
	}

	var targetId uuid.UUID
	if target := pickUpsertTarget(deptRows, input.UnitId); target != nil {
		updateSql, args, _ := r.SqlBuilder.
			Update("role_assignment").
			Set("role", input.Role).
			Set("unit_id", input.UnitId).
			Where("id = ?", target.id).
			RunWith(tx).
			ToSql()
		if _, err = tx.Exec(updateSql, args...); err != nil {
			return uuid.Nil, err
		}
		targetId = target.id
	} else {
		insertSql, args, _ := r.SqlBuilder.
			Insert("role_assignment").
			Columns("user_id", "role", "dept_id", "unit_id").
			Values(input.UserId, input.Role, input.DepartmentId, input.UnitId).
			Suffix("RETURNING id").
			RunWith(tx).
			ToSql()
		if err = tx.QueryRow(insertSql, args...).Scan(&targetId); err != nil {
			return uuid.Nil, err
		}
	}

	return targetId, nil
}

func (r *UserRepo) UpsertRoleAssignment(ctx context.Context, input *entity.UpsertRoleInput) (*entity.RoleAssignment, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	targetId, err := r.upsertRole(tx, input)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	getSql, args, _ := r.SqlBuilder.
		Select("role_assignment.id, role_assignment.user_id, role_assignment.role, role_assignment.dept_id, department.code, role_assignment.unit_id").
		From("role_assignment").
		InnerJoin("department on department.id = role_assignment.dept_id").
		Where("role_assignment.id = ?", targetId).
		RunWith(tx).
		ToSql()

	var result entity.RoleAssignment
	err = tx.QueryRow(getSql, args...).
		Scan(&result.Id, &result.UserId, &result.Role, &result.DepartmentId, &result.DepartmentCode, &result.UnitId)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &result, nil
}

// UpsertRoleAssignments applies a batch of role upserts in one transaction,
// all-or-nothing.
func (r *UserRepo) UpsertRoleAssignments(ctx context.Context, inputs []entity.UpsertRoleInput) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for i := range inputs {
		if _, err = r.upsertRole(tx, &inputs[i]); err != nil {
			if e := tx.Rollback(); e != nil {
				return e
			}

			return err
		}
	}

	return tx.Commit()
}

func (r *UserRepo) DeleteUser(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	deleteSql, args, _ := r.SqlBuilder.
		Delete("app_user").
		Where("id = ?", uuidForm).
		ToSql()

	result, err := r.Database.ExecContext(ctx, deleteSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}
