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

type WorkflowRepo struct {
	*postgres.Postgres
}

func NewWorkflowRepo(pgdb *postgres.Postgres) *WorkflowRepo {
	return &WorkflowRepo{pgdb}
}

func (r *WorkflowRepo) GetTemplateByType(ctx context.Context, workflowType string) (*entity.WorkflowTemplate, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "type").
		From("workflow_template").
		Where("type = ?", workflowType).
		ToSql()

	var t entity.WorkflowTemplate
	err := r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&t.Id, &t.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &t, nil
}

func (r *WorkflowRepo) GetStepsByType(ctx context.Context, workflowType string) ([]entity.WorkflowStep, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("workflow_step.id, workflow_step.template_id, workflow_step.name, workflow_step.step_order, workflow_step.requires_signature, workflow_step.required_fields").
		From("workflow_step").
		InnerJoin("workflow_template on workflow_template.id = workflow_step.template_id").
		Where("workflow_template.type = ?", workflowType).
		OrderBy("workflow_step.step_order ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]entity.WorkflowStep, 0)
	for rows.Next() {
		var s entity.WorkflowStep
		if err := rows.Scan(&s.Id, &s.TemplateId, &s.Name, &s.Order, &s.RequiresSignature, pq.Array(&s.RequiredFields)); err != nil {
			return steps, err
		}
		steps = append(steps, s)
	}
	if err = rows.Err(); err != nil {
		return steps, err
	}

	return steps, nil
}

func (r *WorkflowRepo) GetStepByTypeAndOrder(ctx context.Context, workflowType string, order int) (*entity.WorkflowStep, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select("workflow_step.id, workflow_step.template_id, workflow_step.name, workflow_step.step_order, workflow_step.requires_signature, workflow_step.required_fields").
		From("workflow_step").
		InnerJoin("workflow_template on workflow_template.id = workflow_step.template_id").
		Where("workflow_template.type = ?", workflowType).
		Where("workflow_step.step_order = ?", order).
		ToSql()

	return r.scanStep(ctx, sqlReq, args)
}

func (r *WorkflowRepo) GetStepById(ctx context.Context, id string) (*entity.WorkflowStep, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id", "template_id", "name", "step_order", "requires_signature", "required_fields").
		From("workflow_step").
		Where("id = ?", uuidForm).
		ToSql()

	return r.scanStep(ctx, sqlReq, args)
}

func (r *WorkflowRepo) scanStep(ctx context.Context, sqlReq string, args []interface{}) (*entity.WorkflowStep, error) {
	var s entity.WorkflowStep
	err := r.Database.QueryRowContext(ctx, sqlReq, args...).
		Scan(&s.Id, &s.TemplateId, &s.Name, &s.Order, &s.RequiresSignature, pq.Array(&s.RequiredFields))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &s, nil
}
