package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo/repo_errors"
	"procurement-workflow-api/pkg/postgres"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type SubmissionRepo struct {
	*postgres.Postgres
}

func NewSubmissionRepo(pgdb *postgres.Postgres) *SubmissionRepo {
	return &SubmissionRepo{pgdb}
}

const submissionColumns = "project_submission.id, project_submission.project_id, project_submission.step_id, " +
	"project_submission.submission_round, project_submission.submission_type, project_submission.status, " +
	"project_submission.submitted_by, project_submission.submitted_at, project_submission.approved_by, " +
	"project_submission.approved_at, project_submission.proposed_by, project_submission.proposed_at, " +
	"project_submission.completed_by, project_submission.completed_at, project_submission.comment, " +
	"project_submission.meta_data, workflow_step.name, workflow_step.step_order, workflow_template.type"

func scanSubmission(row squirrel.RowScanner) (*entity.Submission, error) {
	var s entity.Submission
	var approvedAt, proposedAt, completedAt sql.NullTime
	err := row.Scan(&s.Id, &s.ProjectId, &s.StepId, &s.Round, &s.Type, &s.Status,
		&s.SubmittedBy, &s.SubmittedAt, &s.ApprovedBy, &approvedAt, &s.ProposedBy, &proposedAt,
		&s.CompletedBy, &completedAt, &s.Comment, &s.Metadata, &s.StepName, &s.StepOrder, &s.WorkflowType)
	if err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		s.ApprovedAt = &approvedAt.Time
	}
	if proposedAt.Valid {
		s.ProposedAt = &proposedAt.Time
	}
	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}
	s.Documents = make([]entity.Document, 0)

	return &s, nil
}

func (r *SubmissionRepo) CreateSubmission(ctx context.Context, input *entity.CreateSubmissionInput, stepId uuid.UUID) (uuid.UUID, error) {
	projectId, err := uuid.Parse(input.ProjectId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	// Round numbers for a (project, step, type) tuple are allocated under an
	// advisory lock so two concurrent submitters never share one.
	lockKey := fmt.Sprintf("submission:%s:%s:%s", projectId, stepId, common.SubmissionTypeStaff)
	if _, err = tx.Exec("SELECT pg_advisory_xact_lock(hashtext($1))", lockKey); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	roundSql, args, _ := r.SqlBuilder.
		Select("coalesce(max(submission_round), 0) + 1").
		From("project_submission").
		Where("project_id = ?", projectId).
		Where("step_id = ?", stepId).
		Where("submission_type = ?", common.SubmissionTypeStaff).
		RunWith(tx).
		ToSql()
	var round int
	if err = tx.QueryRow(roundSql, args...).Scan(&round); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("project_submission").
		Columns("project_id", "step_id", "submission_round", "submission_type", "status", "submitted_by", "meta_data").
		Values(projectId, stepId, round, common.SubmissionTypeStaff, common.Submitted, input.SubmittedBy, input.Metadata).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()
	var submissionId uuid.UUID
	if err = tx.QueryRow(createSql, args...).Scan(&submissionId); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	for _, file := range input.Files {
		docSql, args, _ := r.SqlBuilder.
			Insert("submission_document").
			Columns("submission_id", "field_key", "file_name", "file_path").
			Values(submissionId, file.FieldKey, file.FileName, file.FilePath).
			RunWith(tx).
			ToSql()
		if _, err = tx.Exec(docSql, args...); err != nil {
			if e := tx.Rollback(); e != nil {
				return uuid.Nil, e
			}

			return uuid.Nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return submissionId, nil
}

func (r *SubmissionRepo) submissionQuery() squirrel.SelectBuilder {
	return r.SqlBuilder.
		Select(submissionColumns).
		From("project_submission").
		InnerJoin("workflow_step ON workflow_step.id = project_submission.step_id").
		InnerJoin("workflow_template ON workflow_template.id = workflow_step.template_id")
}

func (r *SubmissionRepo) GetSubmissionById(ctx context.Context, id string) (*entity.Submission, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getSql, args, _ := r.submissionQuery().
		Where("project_submission.id = ?", uuidForm).
		ToSql()

	submission, err := scanSubmission(r.Database.QueryRowContext(ctx, getSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	if err = r.loadDocuments(ctx, []*entity.Submission{submission}); err != nil {
		return nil, err
	}

	return submission, nil
}

func (r *SubmissionRepo) GetSubmissionsByProject(ctx context.Context, projectId string) ([]entity.Submission, error) {
	uuidForm, err := uuid.Parse(projectId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	listSql, args, _ := r.submissionQuery().
		Where("project_submission.project_id = ?", uuidForm).
		OrderBy("workflow_step.step_order ASC", "project_submission.submission_round ASC").
		ToSql()

	return r.querySubmissions(ctx, listSql, args)
}

func (r *SubmissionRepo) GetStaffSubmissionsByType(ctx context.Context, projectId string, workflowType string) ([]entity.Submission, error) {
	uuidForm, err := uuid.Parse(projectId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	listSql, args, _ := r.submissionQuery().
		Where("project_submission.project_id = ?", uuidForm).
		Where("project_submission.submission_type = ?", common.SubmissionTypeStaff).
		Where("workflow_template.type = ?", workflowType).
		OrderBy("workflow_step.step_order ASC", "project_submission.submission_round ASC").
		ToSql()

	return r.querySubmissions(ctx, listSql, args)
}

func (r *SubmissionRepo) CountSubmissionsByProject(ctx context.Context, projectId string) (int, error) {
	uuidForm, err := uuid.Parse(projectId)
	if err != nil {
		return 0, repo_errors.ErrNotFound
	}

	countSql, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("project_submission").
		Where("project_id = ?", uuidForm).
		ToSql()

	var total int
	if err := r.Database.QueryRowContext(ctx, countSql, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *SubmissionRepo) querySubmissions(ctx context.Context, listSql string, args []interface{}) ([]entity.Submission, error) {
	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]entity.Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return submissions, err
		}
		submissions = append(submissions, *submission)
	}
	if err = rows.Err(); err != nil {
		return submissions, err
	}

	refs := make([]*entity.Submission, len(submissions))
	for i := range submissions {
		refs[i] = &submissions[i]
	}
	if err := r.loadDocuments(ctx, refs); err != nil {
		return submissions, err
	}

	return submissions, nil
}

func (r *SubmissionRepo) loadDocuments(ctx context.Context, submissions []*entity.Submission) error {
	if len(submissions) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(submissions))
	byId := make(map[uuid.UUID]*entity.Submission, len(submissions))
	for _, s := range submissions {
		ids = append(ids, s.Id)
		byId[s.Id] = s
	}

	docsSql, args, _ := r.SqlBuilder.
		Select("id", "submission_id", "field_key", "file_name", "file_path").
		From("submission_document").
		Where(squirrel.Eq{"submission_id": ids}).
		OrderBy("file_name ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, docsSql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.Id, &d.SubmissionId, &d.FieldKey, &d.FileName, &d.FilePath); err != nil {
			return err
		}
		if s := byId[d.SubmissionId]; s != nil {
			s.Documents = append(s.Documents, d)
		}
	}

	return rows.Err()
}

// lockSubmission takes the submission's row lock and returns its current status.
func (r *SubmissionRepo) lockSubmission(tx *sql.Tx, id uuid.UUID) (string, error) {
	lockSql, args, _ := r.SqlBuilder.
		Select("status").
		From("project_submission").
		Where("id = ?", id).
		Suffix("FOR UPDATE").
		RunWith(tx).
		ToSql()

	var status string
	err := tx.QueryRow(lockSql, args...).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repo_errors.ErrNotFound
	}

	return status, err
}

func (r *SubmissionRepo) transition(ctx context.Context, id uuid.UUID, fromStatus string, apply func(squirrel.UpdateBuilder) squirrel.UpdateBuilder) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, err := r.lockSubmission(tx, id)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if status != fromStatus {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrConflict
	}

	builder := apply(r.SqlBuilder.
		Update("project_submission").
		Where("id = ?", id).
		Where("status = ?", fromStatus))

	updateSql, args, _ := builder.RunWith(tx).ToSql()
	result, err := tx.Exec(updateSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrConflict
	}

	return tx.Commit()
}

func (r *SubmissionRepo) ApproveSubmission(ctx context.Context, id uuid.UUID, requiresSignature bool, approverId uuid.UUID, submitterId uuid.UUID) error {
	now := time.Now()

	return r.transition(ctx, id, common.Submitted, func(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
		b = b.Set("approved_by", approverId).Set("approved_at", now)
		if requiresSignature {
			return b.Set("status", common.PendingProposal)
		}

		// Steps without a signature requirement complete on approval; the
		// completion stays attributed to whoever submitted the round.
		return b.Set("status", common.Completed).
			Set("completed_by", submitterId).
			Set("completed_at", now)
	})
}

func (r *SubmissionRepo) ProposeSubmission(ctx context.Context, id uuid.UUID, proposerId uuid.UUID) error {
	return r.transition(ctx, id, common.PendingProposal, func(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
		return b.Set("status", common.Proposing).
			Set("proposed_by", proposerId).
			Set("proposed_at", time.Now())
	})
}

func (r *SubmissionRepo) CompleteSubmission(ctx context.Context, id uuid.UUID, signerId uuid.UUID) error {
	return r.transition(ctx, id, common.Proposing, func(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
		return b.Set("status", common.Completed).
			Set("completed_by", signerId).
			Set("completed_at", time.Now())
	})
}

func (r *SubmissionRepo) RejectSubmission(ctx context.Context, id uuid.UUID, comment string, actorId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, err := r.lockSubmission(tx, id)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if status == common.Completed || status == common.Rejected {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrConflict
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("project_submission").
		Set("status", common.Rejected).
		Set("comment", comment).
		Set("approved_by", actorId).
		Set("approved_at", time.Now()).
		Where("id = ?", id).
		Where("status = ?", status).
		RunWith(tx).
		ToSql()
	result, err := tx.Exec(updateSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrConflict
	}

	return tx.Commit()
}
