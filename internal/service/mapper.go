package service

import (
	"procurement-workflow-api/internal/entity"
	"time"

	"github.com/google/uuid"
)

func mapProject(p *entity.Project) *entity.ProjectOutputModel {
	out := &entity.ProjectOutputModel{
		Id:                   p.Id.String(),
		ReceiveNo:            p.ReceiveNo,
		Title:                p.Title,
		Description:          p.Description,
		Budget:               p.Budget,
		PrNo:                 p.PrNo,
		PoNo:                 p.PoNo,
		LessNo:               p.LessNo,
		ProcurementType:      p.ProcurementType,
		CurrentWorkflowType:  p.CurrentWorkflowType,
		Status:               p.Status,
		IsUrgent:             p.IsUrgent,
		VendorName:           p.VendorName,
		VendorTaxId:          p.VendorTaxId,
		VendorEmail:          p.VendorEmail,
		RequestingDeptId:     p.RequestingDeptId.String(),
		RequestingUnitId:     p.RequestingUnitId.String(),
		CreatedBy:            p.CreatedBy.String(),
		CreatedAt:            p.CreatedAt,
		ProcurementAssignees: mapIds(p.ProcurementAssignees),
		ContractAssignees:    mapIds(p.ContractAssignees),
	}
	if p.ExpectedApprovalDate != nil {
		out.ExpectedApprovalDate = p.ExpectedApprovalDate.Format(time.RFC3339)
	}

	return out
}

func mapProjects(projects []entity.Project) []entity.ProjectOutputModel {
	s := make([]entity.ProjectOutputModel, 0)
	for i := range projects {
		s = append(s, *mapProject(&projects[i]))
	}

	return s
}

func mapPhaseStatus(ps entity.PhaseStatus) entity.PhaseStatusOutputModel {
	return entity.PhaseStatusOutputModel{
		Status: ps.Status,
		Step:   ps.Step,
	}
}

func mapCancellation(c *entity.ProjectCancellation) *entity.CancellationOutputModel {
	status := "PENDING"
	if !c.IsActive {
		if c.Cancelled {
			status = "APPROVED"
		} else {
			status = "REJECTED"
		}
	}

	return &entity.CancellationOutputModel{
		Id:        c.Id.String(),
		ProjectId: c.ProjectId.String(),
		Status:    status,
		Reason:    c.Reason,
	}
}

func mapSubmission(s *entity.Submission) *entity.SubmissionOutputModel {
	out := &entity.SubmissionOutputModel{
		Id:           s.Id.String(),
		ProjectId:    s.ProjectId.String(),
		StepName:     s.StepName,
		StepOrder:    s.StepOrder,
		WorkflowType: s.WorkflowType,
		Round:        s.Round,
		Status:       s.Status,
		SubmittedBy:  s.SubmittedBy.String(),
		SubmittedAt:  s.SubmittedAt.Format(time.RFC3339),
		Comment:      s.Comment,
		Metadata:     s.Metadata,
		Documents:    make([]entity.DocumentOutputModel, 0),
	}
	if s.ApprovedBy.Valid {
		out.ApprovedBy = s.ApprovedBy.UUID.String()
	}
	if s.ApprovedAt != nil {
		out.ApprovedAt = s.ApprovedAt.Format(time.RFC3339)
	}
	if s.ProposedBy.Valid {
		out.ProposedBy = s.ProposedBy.UUID.String()
	}
	if s.ProposedAt != nil {
		out.ProposedAt = s.ProposedAt.Format(time.RFC3339)
	}
	if s.CompletedBy.Valid {
		out.CompletedBy = s.CompletedBy.UUID.String()
	}
	if s.CompletedAt != nil {
		out.CompletedAt = s.CompletedAt.Format(time.RFC3339)
	}
	for _, d := range s.Documents {
		out.Documents = append(out.Documents, entity.DocumentOutputModel{
			Id:       d.Id.String(),
			FieldKey: d.FieldKey,
			FileName: d.FileName,
			FilePath: d.FilePath,
		})
	}

	return out
}

func mapRoleAssignment(a *entity.RoleAssignment) entity.RoleAssignmentOutputModel {
	out := entity.RoleAssignmentOutputModel{
		Role:           a.Role,
		DepartmentId:   a.DepartmentId.String(),
		DepartmentCode: a.DepartmentCode,
	}
	if a.UnitId.Valid {
		out.UnitId = a.UnitId.UUID.String()
	}

	return out
}

func mapRoleAssignments(assignments []entity.RoleAssignment) []entity.RoleAssignmentOutputModel {
	s := make([]entity.RoleAssignmentOutputModel, 0)
	for i := range assignments {
		s = append(s, mapRoleAssignment(&assignments[i]))
	}

	return s
}

func mapUser(u *entity.User, roles []entity.RoleAssignment) *entity.UserOutputModel {
	return &entity.UserOutputModel{
		Id:        u.Id.String(),
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Roles:     mapRoleAssignments(roles),
		CreatedAt: u.CreatedAt,
	}
}

func mapDelegation(d *entity.Delegation) *entity.DelegationOutputModel {
	out := &entity.DelegationOutputModel{
		Id:          d.Id.String(),
		DelegatorId: d.DelegatorId.String(),
		DelegateeId: d.DelegateeId.String(),
		StartDate:   d.StartDate.Format(time.RFC3339),
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
	if d.EndDate != nil {
		out.EndDate = d.EndDate.Format(time.RFC3339)
	}

	return out
}

func mapDepartment(d *entity.Department) *entity.DepartmentOutputModel {
	return &entity.DepartmentOutputModel{
		Id:   d.Id.String(),
		Code: d.Code,
		Name: d.Name,
	}
}

func mapUnit(u *entity.Unit) *entity.UnitOutputModel {
	return &entity.UnitOutputModel{
		Id:            u.Id.String(),
		DepartmentId:  u.DepartmentId.String(),
		Name:          u.Name,
		WorkflowTypes: u.WorkflowTypes,
	}
}

func mapUnits(units []entity.Unit) []entity.UnitOutputModel {
	s := make([]entity.UnitOutputModel, 0)
	for i := range units {
		s = append(s, *mapUnit(&units[i]))
	}

	return s
}

func mapHistory(h *entity.ProjectHistory) entity.ProjectHistoryOutputModel {
	return entity.ProjectHistoryOutputModel{
		Id:        h.Id.String(),
		ProjectId: h.ProjectId.String(),
		Action:    h.Action,
		OldValue:  h.OldValue,
		NewValue:  h.NewValue,
		ChangedBy: h.ChangedBy.String(),
		ChangedAt: h.ChangedAt.Format(time.RFC3339),
	}
}

func mapHistories(history []entity.ProjectHistory) []entity.ProjectHistoryOutputModel {
	s := make([]entity.ProjectHistoryOutputModel, 0)
	for i := range history {
		s = append(s, mapHistory(&history[i]))
	}

	return s
}

func mapIds(ids []uuid.UUID) []string {
	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, id.String())
	}

	return s
}

func mapRoleClaims(claims []entity.RoleClaim) []entity.RoleAssignmentOutputModel {
	s := make([]entity.RoleAssignmentOutputModel, 0)
	for _, c := range claims {
		s = append(s, entity.RoleAssignmentOutputModel{
			Role:           c.Role,
			DepartmentId:   c.DepartmentId,
			DepartmentCode: c.DepartmentCode,
			UnitId:         c.UnitId,
		})
	}

	return s
}

func claimFromAssignment(a *entity.RoleAssignment) entity.RoleClaim {
	claim := entity.RoleClaim{
		Role:           a.Role,
		DepartmentId:   a.DepartmentId.String(),
		DepartmentCode: a.DepartmentCode,
	}
	if a.UnitId.Valid {
		claim.UnitId = a.UnitId.UUID.String()
	}

	return claim
}
