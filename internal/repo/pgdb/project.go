package pgdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"procurement-workflow-api/internal/common"
	"procurement-workflow-api/internal/entity"
	"procurement-workflow-api/internal/repo/repo_errors"
	"procurement-workflow-api/pkg/postgres"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// receiveNoLockKey serializes receive-number allocation across instances.
const receiveNoLockKey = "project_receive_no"

// nextReceiveNo continues the sequence from the highest number issued so far.
// Deleted projects leave gaps; their numbers are never reissued.
func nextReceiveNo(maxIssued int) int {
	return maxIssued + 1
}

type ProjectRepo struct {
	*postgres.Postgres
}

func NewProjectRepo(pgdb *postgres.Postgres) *ProjectRepo {
	return &ProjectRepo{pgdb}
}

const projectColumns = "project.id, project.receive_no, project.title, project.description, project.budget, " +
	"project.pr_no, project.po_no, project.less_no, project.procurement_type, project.current_workflow_type, " +
	"project.status, project.is_urgent, project.expected_approval_date, project.vendor_name, project.vendor_tax_id, " +
	"project.vendor_email, project.requesting_dept_id, project.requesting_unit_id, project.created_by, project.created_at"

func scanProject(row squirrel.RowScanner) (*entity.Project, error) {
	var p entity.Project
	var receiveNo int
	var expectedApproval sql.NullTime
	var createdAt time.Time
	err := row.Scan(&p.Id, &receiveNo, &p.Title, &p.Description, &p.Budget,
		&p.PrNo, &p.PoNo, &p.LessNo, &p.ProcurementType, &p.CurrentWorkflowType,
		&p.Status, &p.IsUrgent, &expectedApproval, &p.VendorName, &p.VendorTaxId,
		&p.VendorEmail, &p.RequestingDeptId, &p.RequestingUnitId, &p.CreatedBy, &createdAt)
	if err != nil {
		return nil, err
	}
	p.ReceiveNo = strconv.Itoa(receiveNo)
	if expectedApproval.Valid {
		p.ExpectedApprovalDate = &expectedApproval.Time
	}
	p.CreatedAt = createdAt.Format(time.RFC3339)
	p.ProcurementAssignees = make([]uuid.UUID, 0)
	p.ContractAssignees = make([]uuid.UUID, 0)

	return &p, nil
}

func (r *ProjectRepo) CreateProject(ctx context.Context, input *entity.CreateProjectInput) (uuid.UUID, error) {
	deptId, err := uuid.Parse(input.RequestingDeptId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}
	unitId, err := uuid.Parse(input.RequestingUnitId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	// Serializes concurrent creators so receive numbers never collide.
	if _, err = tx.Exec("SELECT pg_advisory_xact_lock(hashtext($1))", receiveNoLockKey); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	var maxIssued int
	if err = tx.QueryRow("SELECT coalesce(max(receive_no), 0) FROM project").Scan(&maxIssued); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}
	receiveNo := nextReceiveNo(maxIssued)

	var expectedApproval sql.NullTime
	if input.ExpectedApprovalDate != nil {
		expectedApproval = sql.NullTime{Time: *input.ExpectedApprovalDate, Valid: true}
	}

	createSql, args, _ := r.SqlBuilder.
		Insert("project").
		Columns("receive_no", "title", "description", "budget", "pr_no", "less_no",
			"procurement_type", "current_workflow_type", "status", "is_urgent",
			"expected_approval_date", "requesting_dept_id", "requesting_unit_id", "created_by").
		Values(receiveNo, input.Title, input.Description, input.Budget, input.PrNo, input.LessNo,
			input.ProcurementType, input.ProcurementType, common.Unassigned, input.IsUrgent,
			expectedApproval, deptId, unitId, input.CreatedBy).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var projectId uuid.UUID
	if err = tx.QueryRow(createSql, args...).Scan(&projectId); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return projectId, nil
}

func (r *ProjectRepo) GetProjectById(ctx context.Context, id string) (*entity.Project, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getSql, args, _ := r.SqlBuilder.
		Select(projectColumns).
		From("project").
		Where("project.id = ?", uuidForm).
		ToSql()

	project, err := scanProject(r.Database.QueryRowContext(ctx, getSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	if err = r.loadAssignees(ctx, []*entity.Project{project}); err != nil {
		return nil, err
	}

	return project, nil
}

func (r *ProjectRepo) ListProjects(ctx context.Context, pg *entity.PaginationInput) ([]entity.Project, int, error) {
	listSql, args, _ := r.SqlBuilder.
		Select(projectColumns).
		From("project").
		OrderBy("receive_no DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	projects, err := r.queryProjects(ctx, listSql, args)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countSql, args, _ := r.SqlBuilder.Select("count(*)").From("project").ToSql()
	if err := r.Database.QueryRowContext(ctx, countSql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *ProjectRepo) ListUnassignedProjects(ctx context.Context, workflowTypes []string) ([]entity.Project, int, error) {
	builder := r.SqlBuilder.
		Select(projectColumns).
		From("project").
		Where("project.status = ?", common.Unassigned)
	countBuilder := r.SqlBuilder.
		Select("count(*)").
		From("project").
		Where("project.status = ?", common.Unassigned)

	if len(workflowTypes) > 0 {
		builder = builder.Where(squirrel.Eq{"project.current_workflow_type": workflowTypes})
		countBuilder = countBuilder.Where(squirrel.Eq{"project.current_workflow_type": workflowTypes})
	}

	listSql, args, _ := builder.OrderBy("receive_no DESC").ToSql()
	projects, err := r.queryProjects(ctx, listSql, args)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countSql, args, _ := countBuilder.ToSql()
	if err := r.Database.QueryRowContext(ctx, countSql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *ProjectRepo) ListAssignedProjects(ctx context.Context, filter *entity.AssignedProjectsFilter) ([]entity.Project, int, error) {
	dayCondition := "(project.status = ? OR exists (" +
		"select 1 from project_history" +
		" where project_history.project_id = project.id" +
		" and project_history.action in (?, ?)" +
		" and project_history.changed_at between ? and ?" +
		" and project_history.new_value->>'status' = ?))"

	builder := r.SqlBuilder.
		Select(projectColumns).
		From("project").
		Where(dayCondition, common.WaitingAccept, common.StatusUpdate, common.AssigneeUpdate,
			filter.DayStart, filter.DayEnd, common.InProgress)
	countBuilder := r.SqlBuilder.
		Select("count(*)").
		From("project").
		Where(dayCondition, common.WaitingAccept, common.StatusUpdate, common.AssigneeUpdate,
			filter.DayStart, filter.DayEnd, common.InProgress)

	if len(filter.WorkflowTypes) > 0 {
		builder = builder.Where(squirrel.Eq{"project.current_workflow_type": filter.WorkflowTypes})
		countBuilder = countBuilder.Where(squirrel.Eq{"project.current_workflow_type": filter.WorkflowTypes})
	}
	if filter.AssigneeId != uuid.Nil {
		memberCondition := "exists (select 1 from project_assignee" +
			" where project_assignee.project_id = project.id and project_assignee.user_id = ?)"
		builder = builder.Where(memberCondition, filter.AssigneeId)
		countBuilder = countBuilder.Where(memberCondition, filter.AssigneeId)
	}

	listSql, args, _ := builder.OrderBy("status ASC", "receive_no DESC").ToSql()
	projects, err := r.queryProjects(ctx, listSql, args)
	if err != nil {
		return nil, 0, err
	}

	var total int
	countSql, args, _ := countBuilder.ToSql()
	if err := r.Database.QueryRowContext(ctx, countSql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *ProjectRepo) queryProjects(ctx context.Context, listSql string, args []interface{}) ([]entity.Project, error) {
	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]entity.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return projects, err
		}
		projects = append(projects, *project)
	}
	if err = rows.Err(); err != nil {
		return projects, err
	}

	refs := make([]*entity.Project, len(projects))
	for i := range projects {
		refs[i] = &projects[i]
	}
	if err := r.loadAssignees(ctx, refs); err != nil {
		return projects, err
	}

	return projects, nil
}

func (r *ProjectRepo) loadAssignees(ctx context.Context, projects []*entity.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(projects))
	byId := make(map[uuid.UUID]*entity.Project, len(projects))
	for _, p := range projects {
		ids = append(ids, p.Id)
		byId[p.Id] = p
	}

	assigneesSql, args, _ := r.SqlBuilder.
		Select("project_id", "phase", "user_id").
		From("project_assignee").
		Where(squirrel.Eq{"project_id": ids}).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, assigneesSql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var projectId, userId uuid.UUID
		var phase string
		if err := rows.Scan(&projectId, &phase, &userId); err != nil {
			return err
		}
		p := byId[projectId]
		if p == nil {
			continue
		}
		if phase == common.PhaseContract {
			p.ContractAssignees = append(p.ContractAssignees, userId)
		} else {
			p.ProcurementAssignees = append(p.ProcurementAssignees, userId)
		}
	}

	return rows.Err()
}

// lockProject takes the project's row lock so a transaction sees a stable
// status/assignee view until commit.
func (r *ProjectRepo) lockProject(tx *sql.Tx, projectId uuid.UUID) (status string, workflowType string, err error) {
	lockSql, args, _ := r.SqlBuilder.
		Select("status", "current_workflow_type").
		From("project").
		Where("id = ?", projectId).
		Suffix("FOR UPDATE").
		RunWith(tx).
		ToSql()

	err = tx.QueryRow(lockSql, args...).Scan(&status, &workflowType)
	if errors.Is(err, sql.ErrNoRows) {
		err = repo_errors.ErrNotFound
	}

	return status, workflowType, err
}

func (r *ProjectRepo) phaseAssignees(tx *sql.Tx, projectId uuid.UUID, phase string) ([]uuid.UUID, error) {
	getSql, args, _ := r.SqlBuilder.
		Select("user_id").
		From("project_assignee").
		Where("project_id = ?", projectId).
		Where("phase = ?", phase).
		RunWith(tx).
		ToSql()

	rows, err := tx.Query(getSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignees := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return assignees, err
		}
		assignees = append(assignees, id)
	}

	return assignees, rows.Err()
}

func (r *ProjectRepo) insertHistory(tx *sql.Tx, projectId uuid.UUID, action string, oldValue, newValue map[string]interface{}, actorId uuid.UUID) error {
	oldJson, err := json.Marshal(oldValue)
	if err != nil {
		return err
	}
	newJson, err := json.Marshal(newValue)
	if err != nil {
		return err
	}

	historySql, args, _ := r.SqlBuilder.
		Insert("project_history").
		Columns("project_id", "action", "old_value", "new_value", "changed_by").
		Values(projectId, action, oldJson, newJson, actorId).
		RunWith(tx).
		ToSql()

	_, err = tx.Exec(historySql, args...)

	return err
}

// updateStatus performs the compare-and-swap status write; zero affected rows
// means the precondition moved underneath us.
func (r *ProjectRepo) updateStatus(tx *sql.Tx, projectId uuid.UUID, fromStatus, toStatus string) error {
	updateSql, args, _ := r.SqlBuilder.
		Update("project").
		Set("status", toStatus).
		Where("id = ?", projectId).
		Where("status = ?", fromStatus).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(updateSql, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrConflict
	}

	return nil
}

func (r *ProjectRepo) addAssigneeRow(tx *sql.Tx, projectId uuid.UUID, phase string, userId uuid.UUID) error {
	insertSql, args, _ := r.SqlBuilder.
		Insert("project_assignee").
		Columns("project_id", "phase", "user_id").
		Values(projectId, phase, userId).
		RunWith(tx).
		ToSql()

	_, err := tx.Exec(insertSql, args...)

	return err
}

func (r *ProjectRepo) rollback(tx *sql.Tx, err error) error {
	if e := tx.Rollback(); e != nil {
		return e
	}

	return err
}

func (r *ProjectRepo) AssignProjects(ctx context.Context, items []entity.AssignProjectItem, actorId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, item := range items {
		status, workflowType, err := r.lockProject(tx, item.ProjectId)
		if err != nil {
			return r.rollback(tx, err)
		}
		if status != common.Unassigned {
			return r.rollback(tx, repo_errors.ErrConflict)
		}

		phase := common.PhaseForWorkflowType(workflowType)
		assignees, err := r.phaseAssignees(tx, item.ProjectId, phase)
		if err != nil {
			return r.rollback(tx, err)
		}
		if len(assignees) > 0 {
			return r.rollback(tx, repo_errors.ErrConflict)
		}

		if err = r.updateStatus(tx, item.ProjectId, common.Unassigned, common.WaitingAccept); err != nil {
			return r.rollback(tx, err)
		}
		if err = r.addAssigneeRow(tx, item.ProjectId, phase, item.UserId); err != nil {
			return r.rollback(tx, err)
		}

		err = r.insertHistory(tx, item.ProjectId, common.AssigneeUpdate,
			map[string]interface{}{"status": common.Unassigned, "assignee": nil},
			map[string]interface{}{"status": common.WaitingAccept, "assignee": item.UserId.String()},
			actorId)
		if err != nil {
			return r.rollback(tx, err)
		}
	}

	return tx.Commit()
}

func (r *ProjectRepo) ChangeAssignee(ctx context.Context, projectId uuid.UUID, newUserId uuid.UUID, actorId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, workflowType, err := r.lockProject(tx, projectId)
	if err != nil {
		return r.rollback(tx, err)
	}
	if status != common.WaitingAccept {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	phase := common.PhaseForWorkflowType(workflowType)
	assignees, err := r.phaseAssignees(tx, projectId, phase)
	if err != nil {
		return r.rollback(tx, err)
	}
	if len(assignees) == 0 {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	deleteSql, args, _ := r.SqlBuilder.
		Delete("project_assignee").
		Where("project_id = ?", projectId).
		Where("phase = ?", phase).
		RunWith(tx).
		ToSql()
	if _, err = tx.Exec(deleteSql, args...); err != nil {
		return r.rollback(tx, err)
	}

	if err = r.addAssigneeRow(tx, projectId, phase, newUserId); err != nil {
		return r.rollback(tx, err)
	}

	err = r.insertHistory(tx, projectId, common.AssigneeUpdate,
		map[string]interface{}{"assignee": uuidStrings(assignees)},
		map[string]interface{}{"assignee": newUserId.String()},
		actorId)
	if err != nil {
		return r.rollback(tx, err)
	}

	return tx.Commit()
}

func (r *ProjectRepo) AddAssignee(ctx context.Context, projectId uuid.UUID, userId uuid.UUID, actorId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, workflowType, err := r.lockProject(tx, projectId)
	if err != nil {
		return r.rollback(tx, err)
	}
	if status == common.Cancelled || status == common.WaitingCancel {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	phase := common.PhaseForWorkflowType(workflowType)
	assignees, err := r.phaseAssignees(tx, projectId, phase)
	if err != nil {
		return r.rollback(tx, err)
	}
	if len(assignees) >= common.MaxAssigneesPerPhase {
		return r.rollback(tx, repo_errors.ErrConflict)
	}
	for _, id := range assignees {
		if id == userId {
			return r.rollback(tx, repo_errors.ErrConflict)
		}
	}

	if err = r.addAssigneeRow(tx, projectId, phase, userId); err != nil {
		return r.rollback(tx, err)
	}

	err = r.insertHistory(tx, projectId, common.AssigneeUpdate,
		map[string]interface{}{"assignee": uuidStrings(assignees)},
		map[string]interface{}{"assignee": append(uuidStrings(assignees), userId.String())},
		actorId)
	if err != nil {
		return r.rollback(tx, err)
	}

	return tx.Commit()
}

func (r *ProjectRepo) ClaimProject(ctx context.Context, projectId uuid.UUID, userId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, workflowType, err := r.lockProject(tx, projectId)
	if err != nil {
		return r.rollback(tx, err)
	}
	if status != common.Unassigned {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	phase := common.PhaseForWorkflowType(workflowType)
	assignees, err := r.phaseAssignees(tx, projectId, phase)
	if err != nil {
		return r.rollback(tx, err)
	}
	if len(assignees) > 0 {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	if err = r.updateStatus(tx, projectId, common.Unassigned, common.InProgress); err != nil {
		return r.rollback(tx, err)
	}
	if err = r.addAssigneeRow(tx, projectId, phase, userId); err != nil {
		return r.rollback(tx, err)
	}

	err = r.insertHistory(tx, projectId, common.AssigneeUpdate,
		map[string]interface{}{"status": common.Unassigned, "assignee": nil},
		map[string]interface{}{"status": common.InProgress, "assignee": userId.String()},
		userId)
	if err != nil {
		return r.rollback(tx, err)
	}

	return tx.Commit()
}

func (r *ProjectRepo) AcceptProjects(ctx context.Context, projectIds []uuid.UUID, userId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, projectId := range projectIds {
		status, workflowType, err := r.lockProject(tx, projectId)
		if err != nil {
			return r.rollback(tx, err)
		}
		if status != common.WaitingAccept {
			return r.rollback(tx, repo_errors.ErrConflict)
		}

		phase := common.PhaseForWorkflowType(workflowType)
		assignees, err := r.phaseAssignees(tx, projectId, phase)
		if err != nil {
			return r.rollback(tx, err)
		}
		if !containsUUID(assignees, userId) {
			return r.rollback(tx, repo_errors.ErrConflict)
		}

		if err = r.updateStatus(tx, projectId, common.WaitingAccept, common.InProgress); err != nil {
			return r.rollback(tx, err)
		}

		err = r.insertHistory(tx, projectId, common.StatusUpdate,
			map[string]interface{}{"status": common.WaitingAccept},
			map[string]interface{}{"status": common.InProgress},
			userId)
		if err != nil {
			return r.rollback(tx, err)
		}
	}

	return tx.Commit()
}

func (r *ProjectRepo) ReturnProject(ctx context.Context, projectId uuid.UUID, userId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, workflowType, err := r.lockProject(tx, projectId)
	if err != nil {
		return r.rollback(tx, err)
	}
	if status != common.InProgress {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	phase := common.PhaseForWorkflowType(workflowType)
	assignees, err := r.phaseAssignees(tx, projectId, phase)
	if err != nil {
		return r.rollback(tx, err)
	}
	if !containsUUID(assignees, userId) {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	// A project with a paper trail cannot go back to the pool.
	countSql, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("project_submission").
		Where("project_id = ?", projectId).
		RunWith(tx).
		ToSql()
	var submissions int
	if err = tx.QueryRow(countSql, args...).Scan(&submissions); err != nil {
		return r.rollback(tx, err)
	}
	if submissions > 0 {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	deleteSql, args, _ := r.SqlBuilder.
		Delete("project_assignee").
		Where("project_id = ?", projectId).
		Where("phase = ?", phase).
		RunWith(tx).
		ToSql()
	if _, err = tx.Exec(deleteSql, args...); err != nil {
		return r.rollback(tx, err)
	}

	if err = r.updateStatus(tx, projectId, common.InProgress, common.Unassigned); err != nil {
		return r.rollback(tx, err)
	}

	err = r.insertHistory(tx, projectId, common.AssigneeUpdate,
		map[string]interface{}{"status": common.InProgress, "assignee": uuidStrings(assignees)},
		map[string]interface{}{"status": common.Unassigned, "assignee": nil},
		userId)
	if err != nil {
		return r.rollback(tx, err)
	}

	return tx.Commit()
}

func (r *ProjectRepo) CancelProjectImmediate(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, _, err := r.lockProject(tx, projectId)
	if err != nil {
		return r.rollback(tx, err)
	}
	if status == common.Cancelled {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	if err = r.updateStatus(tx, projectId, status, common.Cancelled); err != nil {
		return r.rollback(tx, err)
	}

	// Resolve a pending request if one exists, otherwise record the
	// self-approved cancellation.
	resolveSql, args, _ := r.SqlBuilder.
		Update("project_cancellation").
		Set("is_active", false).
		Set("cancelled", true).
		Set("approved_by", actorId).
		Where("project_id = ?", projectId).
		Where("is_active = ?", true).
		RunWith(tx).
		ToSql()
	result, err := tx.Exec(resolveSql, args...)
	if err != nil {
		return r.rollback(tx, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return r.rollback(tx, err)
	}
	if affected == 0 {
		insertSql, args, _ := r.SqlBuilder.
			Insert("project_cancellation").
			Columns("project_id", "reason", "requested_by", "approved_by", "is_active", "cancelled").
			Values(projectId, reason, actorId, actorId, false, true).
			RunWith(tx).
			ToSql()
		if _, err = tx.Exec(insertSql, args...); err != nil {
			return r.rollback(tx, err)
		}
	}

	err = r.insertHistory(tx, projectId, common.StatusUpdate,
		map[string]interface{}{"status": status},
		map[string]interface{}{"status": common.Cancelled},
		actorId)
	if err != nil {
		return r.rollback(tx, err)
	}

	return tx.Commit()
}

func (r *ProjectRepo) RequestCancellation(ctx context.Context, projectId uuid.UUID, reason string, actorId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, _, err := r.lockProject(tx, projectId)
	if err != nil {
		return r.rollback(tx, err)
	}
	if status != common.InProgress {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	countSql, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("project_cancellation").
		Where("project_id = ?", projectId).
		Where("is_active = ?", true).
		RunWith(tx).
		ToSql()
	var active int
	if err = tx.QueryRow(countSql, args...).Scan(&active); err != nil {
		return r.rollback(tx, err)
	}
	if active > 0 {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	if err = r.updateStatus(tx, projectId, common.InProgress, common.WaitingCancel); err != nil {
		return r.rollback(tx, err)
	}

	insertSql, args, _ := r.SqlBuilder.
		Insert("project_cancellation").
		Columns("project_id", "reason", "requested_by", "is_active", "cancelled").
		Values(projectId, reason, actorId, true, false).
		RunWith(tx).
		ToSql()
	if _, err = tx.Exec(insertSql, args...); err != nil {
		return r.rollback(tx, err)
	}

	err = r.insertHistory(tx, projectId, common.StatusUpdate,
		map[string]interface{}{"status": common.InProgress},
		map[string]interface{}{"status": common.WaitingCancel},
		actorId)
	if err != nil {
		return r.rollback(tx, err)
	}

	return tx.Commit()
}

func (r *ProjectRepo) ApproveCancellation(ctx context.Context, projectId uuid.UUID, actorId uuid.UUID) error {
	return r.resolveCancellation(ctx, projectId, actorId, true)
}

func (r *ProjectRepo) RejectCancellation(ctx context.Context, projectId uuid.UUID, actorId uuid.UUID) error {
	return r.resolveCancellation(ctx, projectId, actorId, false)
}

func (r *ProjectRepo) resolveCancellation(ctx context.Context, projectId uuid.UUID, actorId uuid.UUID, approve bool) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	status, _, err := r.lockProject(tx, projectId)
	if err != nil {
		return r.rollback(tx, err)
	}
	if status != common.WaitingCancel {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	nextStatus := common.InProgress
	if approve {
		nextStatus = common.Cancelled
	}

	if err = r.updateStatus(tx, projectId, common.WaitingCancel, nextStatus); err != nil {
		return r.rollback(tx, err)
	}

	resolveSql, args, _ := r.SqlBuilder.
		Update("project_cancellation").
		Set("is_active", false).
		Set("cancelled", approve).
		Set("approved_by", actorId).
		Where("project_id = ?", projectId).
		Where("is_active = ?", true).
		RunWith(tx).
		ToSql()
	result, err := tx.Exec(resolveSql, args...)
	if err != nil {
		return r.rollback(tx, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return r.rollback(tx, err)
	}
	if affected == 0 {
		return r.rollback(tx, repo_errors.ErrConflict)
	}

	err = r.insertHistory(tx, projectId, common.StatusUpdate,
		map[string]interface{}{"status": common.WaitingCancel},
		map[string]interface{}{"status": nextStatus},
		actorId)
	if err != nil {
		return r.rollback(tx, err)
	}

	return tx.Commit()
}

func (r *ProjectRepo) GetActiveCancellation(ctx context.Context, projectId string) (*entity.ProjectCancellation, error) {
	uuidForm, err := uuid.Parse(projectId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getSql, args, _ := r.SqlBuilder.
		Select("id", "project_id", "reason", "requested_by", "approved_by", "is_active", "cancelled", "created_at").
		From("project_cancellation").
		Where("project_id = ?", uuidForm).
		Where("is_active = ?", true).
		ToSql()

	var c entity.ProjectCancellation
	var createdAt time.Time
	err = r.Database.QueryRowContext(ctx, getSql, args...).
		Scan(&c.Id, &c.ProjectId, &c.Reason, &c.RequestedBy, &c.ApprovedBy, &c.IsActive, &c.Cancelled, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	c.CreatedAt = createdAt.Format(time.RFC3339)

	return &c, nil
}

func (r *ProjectRepo) UpdateProject(ctx context.Context, projectId uuid.UUID, input *entity.UpdateProjectInput, actorId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	getSql, args, _ := r.SqlBuilder.
		Select(projectColumns).
		From("project").
		Where("project.id = ?", projectId).
		Suffix("FOR UPDATE").
		RunWith(tx).
		ToSql()

	current, err := scanProject(tx.QueryRow(getSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.rollback(tx, repo_errors.ErrNotFound)
		}

		return r.rollback(tx, err)
	}

	builder := r.SqlBuilder.Update("project").Where("id = ?", projectId)
	oldValue := map[string]interface{}{}
	newValue := map[string]interface{}{}

	setString := func(column string, old string, val *string) {
		if val != nil && *val != old {
			builder = builder.Set(column, *val)
			oldValue[column] = old
			newValue[column] = *val
		}
	}

	setString("title", current.Title, input.Title)
	setString("description", current.Description, input.Description)
	setString("pr_no", current.PrNo, input.PrNo)
	setString("po_no", current.PoNo, input.PoNo)
	setString("less_no", current.LessNo, input.LessNo)
	setString("is_urgent", current.IsUrgent, input.IsUrgent)
	setString("vendor_name", current.VendorName, input.VendorName)
	setString("vendor_tax_id", current.VendorTaxId, input.VendorTaxId)
	setString("vendor_email", current.VendorEmail, input.VendorEmail)
	setString("current_workflow_type", current.CurrentWorkflowType, input.CurrentWorkflowType)

	if input.Budget != nil && *input.Budget != current.Budget {
		builder = builder.Set("budget", *input.Budget)
		oldValue["budget"] = current.Budget
		newValue["budget"] = *input.Budget
	}
	if input.RequestingUnitId != nil {
		unitId, err := uuid.Parse(*input.RequestingUnitId)
		if err != nil {
			return r.rollback(tx, repo_errors.ErrNotFound)
		}
		if unitId != current.RequestingUnitId {
			builder = builder.Set("requesting_unit_id", unitId)
			oldValue["requesting_unit_id"] = current.RequestingUnitId.String()
			newValue["requesting_unit_id"] = unitId.String()
		}
	}
	if input.ExpectedApprovalDate != nil {
		builder = builder.Set("expected_approval_date", *input.ExpectedApprovalDate)
		if current.ExpectedApprovalDate != nil {
			oldValue["expected_approval_date"] = current.ExpectedApprovalDate.Format(time.RFC3339)
		} else {
			oldValue["expected_approval_date"] = nil
		}
		newValue["expected_approval_date"] = input.ExpectedApprovalDate.Format(time.RFC3339)
	}

	if len(newValue) == 0 {
		return r.rollback(tx, repo_errors.ErrNoChange)
	}

	updateSql, args, _ := builder.RunWith(tx).ToSql()
	if _, err = tx.Exec(updateSql, args...); err != nil {
		return r.rollback(tx, err)
	}

	if err = r.insertHistory(tx, projectId, common.InformationUpdate, oldValue, newValue, actorId); err != nil {
		return r.rollback(tx, err)
	}

	return tx.Commit()
}

func (r *ProjectRepo) DeleteProject(ctx context.Context, projectId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, _, err = r.lockProject(tx, projectId); err != nil {
		return r.rollback(tx, err)
	}

	// Deletion is refused once audit or submission rows reference the project.
	for _, table := range []string{"project_history", "project_submission"} {
		countSql, args, _ := r.SqlBuilder.
			Select("count(*)").
			From(table).
			Where("project_id = ?", projectId).
			RunWith(tx).
			ToSql()
		var references int
		if err = tx.QueryRow(countSql, args...).Scan(&references); err != nil {
			return r.rollback(tx, err)
		}
		if references > 0 {
			return r.rollback(tx, repo_errors.ErrRestricted)
		}
	}

	deleteSql, args, _ := r.SqlBuilder.
		Delete("project").
		Where("id = ?", projectId).
		RunWith(tx).
		ToSql()
	if _, err = tx.Exec(deleteSql, args...); err != nil {
		return r.rollback(tx, err)
	}

	return tx.Commit()
}

func (r *ProjectRepo) GetProjectHistory(ctx context.Context, projectId string) ([]entity.ProjectHistory, error) {
	uuidForm, err := uuid.Parse(projectId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getSql, args, _ := r.SqlBuilder.
		Select("id", "project_id", "action", "old_value", "new_value", "changed_by", "changed_at").
		From("project_history").
		Where("project_id = ?", uuidForm).
		OrderBy("changed_at DESC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]entity.ProjectHistory, 0)
	for rows.Next() {
		var h entity.ProjectHistory
		if err := rows.Scan(&h.Id, &h.ProjectId, &h.Action, &h.OldValue, &h.NewValue, &h.ChangedBy, &h.ChangedAt); err != nil {
			return history, err
		}
		history = append(history, h)
	}
	if err = rows.Err(); err != nil {
		return history, err
	}

	return history, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, id.String())
	}

	return s
}

func containsUUID(ids []uuid.UUID, target uuid.UUID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}

	return false
}
