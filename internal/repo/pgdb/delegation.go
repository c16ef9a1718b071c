package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo/repo_errors"
	"procurement-workflow-api/pkg/postgres"
	"time"

	"github.com/google/uuid"
)

type DelegationRepo struct {
	*postgres.Postgres
}

func NewDelegationRepo(pgdb *postgres.Postgres) *DelegationRepo {
	return &DelegationRepo{pgdb}
}

func (r *DelegationRepo) CreateDelegation(ctx context.Context, input *entity.CreateDelegationInput) (uuid.UUID, error) {
	delegatorId, err := uuid.Parse(input.DelegatorId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}
	delegateeId, err := uuid.Parse(input.DelegateeId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	var endDate sql.NullTime
	if input.EndDate != nil {
		endDate = sql.NullTime{Time: *input.EndDate, Valid: true}
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("user_delegation").
		Columns("delegator_id", "delegatee_id", "start_date", "end_date", "is_active").
		Values(delegatorId, delegateeId, input.StartDate, endDate, true).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := r.Database.QueryRowContext(ctx, createSql, args...).Scan(&id); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

func (r *DelegationRepo) CancelDelegation(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("user_delegation").
		Set("is_active", false).
		Where("id = ?", uuidForm).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateSql, args...)
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

func (r *DelegationRepo) GetDelegationById(ctx context.Context, id string) (*entity.Delegation, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "delegator_id", "delegatee_id", "start_date", "end_date", "is_active", "created_at").
		From("user_delegation").
		Where("id = ?", uuidForm).
		ToSql()

	var d entity.Delegation
	var endDate sql.NullTime
	var createdAt time.Time
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).
		Scan(&d.Id, &d.DelegatorId, &d.DelegateeId, &d.StartDate, &endDate, &d.IsActive, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	if endDate.Valid {
		d.EndDate = &endDate.Time
	}
	d.CreatedAt = createdAt.Format(time.RFC3339)

	return &d, nil
}

func (r *DelegationRepo) ListDelegationsForDelegatee(ctx context.Context, delegateeId uuid.UUID) ([]entity.Delegation, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "delegator_id", "delegatee_id", "start_date", "end_date", "is_active", "created_at").
		From("user_delegation").
		Where("delegatee_id = ?", delegateeId).
		Where("is_active = ?", true).
		OrderBy("start_date ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	delegations := make([]entity.Delegation, 0)
	for rows.Next() {
		var d entity.Delegation
		var endDate sql.NullTime
		var createdAt time.Time
		if err := rows.Scan(&d.Id, &d.DelegatorId, &d.DelegateeId, &d.StartDate, &endDate, &d.IsActive, &createdAt); err != nil {
			return delegations, err
		}
		if endDate.Valid {
			d.EndDate = &endDate.Time
		}
		d.CreatedAt = createdAt.Format(time.RFC3339)
		delegations = append(delegations, d)
	}
	if err = rows.Err(); err != nil {
		return delegations, err
	}

	return delegations, nil
}
