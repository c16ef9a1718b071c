package common

// Project statuses
const (
	Unassigned    = "UNASSIGNED"
	WaitingAccept = "WAITING_ACCEPT"
	InProgress    = "IN_PROGRESS"
	WaitingCancel = "WAITING_CANCEL"
	Cancelled     = "CANCELLED"
)

// Submission statuses
const (
	Submitted       = "SUBMITTED"
	PendingProposal = "PENDING_PROPOSAL"
	Proposing       = "PROPOSING"
	Completed       = "COMPLETED"
	Rejected        = "REJECTED"
)

const SubmissionTypeStaff = "STAFF"

// Phases
const (
	PhaseProcurement = "PROCUREMENT"
	PhaseContract    = "CONTRACT"
)

// Phase statuses
const (
	PhaseNotStarted      = "NOT_STARTED"
	PhaseInProgress      = "IN_PROGRESS"
	PhaseWaitingApproval = "WAITING_APPROVAL"
	PhasePendingProposal = "PENDING_PROPOSAL"
	PhaseProposing       = "PROPOSING"
	PhaseRejected        = "REJECTED"
	PhaseCompleted       = "COMPLETED"
)

// Workflow types
const (
	TypeLT100K    = "LT100K"
	TypeLT500K    = "LT500K"
	TypeMT500K    = "MT500K"
	TypeSelection = "SELECTION"
	TypeEBidding  = "EBIDDING"
	TypeInternal  = "INTERNAL"
	TypeContract  = "CONTRACT"
)

// Roles
const (
	RoleSuperAdmin       = "SUPER_ADMIN"
	RoleAdmin            = "ADMIN"
	RoleHeadOfDepartment = "HEAD_OF_DEPARTMENT"
	RoleHeadOfUnit       = "HEAD_OF_UNIT"
	RoleGeneralStaff     = "GENERAL_STAFF"
	RoleFinanceStaff     = "FINANCE_STAFF"
	RoleDocumentStaff    = "DOCUMENT_STAFF"
	RoleRepresentative   = "REPRESENTATIVE"
	RoleGuest            = "GUEST"
)

// History action kinds
const (
	StatusUpdate      = "STATUS_UPDATE"
	AssigneeUpdate    = "ASSIGNEE_UPDATE"
	InformationUpdate = "INFORMATION_UPDATE"
)

// Urgency
const (
	UrgencyNormal = "NORMAL"
	UrgencyUrgent = "URGENT"
)

// SupplyDeptCode scopes procurement authority checks to the supply department.
const SupplyDeptCode = "SUPPLY"

// MaxAssigneesPerPhase is the "two responsible staff" policy.
const MaxAssigneesPerPhase = 2

var unitLevelRoles = map[string]struct{}{
	RoleHeadOfUnit:     {},
	RoleGeneralStaff:   {},
	RoleRepresentative: {},
}

var deptLevelRoles = map[string]struct{}{
	RoleHeadOfDepartment: {},
	RoleFinanceStaff:     {},
	RoleDocumentStaff:    {},
	RoleAdmin:            {},
	RoleGuest:            {},
}

func IsUnitLevelRole(role string) bool {
	_, ok := unitLevelRoles[role]
	return ok
}

func IsDeptLevelRole(role string) bool {
	_, ok := deptLevelRoles[role]
	return ok
}

// IsHeadLevelRole reports whether the role may resolve cancellations on its own.
func IsHeadLevelRole(role string) bool {
	return role == RoleHeadOfDepartment || role == RoleHeadOfUnit
}

// PhaseForWorkflowType selects which assignee slot a workflow type works against.
func PhaseForWorkflowType(workflowType string) string {
	if workflowType == TypeContract {
		return PhaseContract
	}

	return PhaseProcurement
}
