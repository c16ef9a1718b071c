package entity

import (
	"time"

	"procurement-workflow-api/internal/common"

	"github.com/google/uuid"
)

// db model; assignee sets are loaded from project_assignee
type Project struct {
	Id                   uuid.UUID   `json:"id" db:"id"`
	ReceiveNo            string      `json:"receiveNo" db:"receive_no"`
	Title                string      `json:"title" db:"title"`
	Description          string      `json:"description" db:"description"`
	Budget               float64     `json:"budget" db:"budget"`
	PrNo                 string      `json:"prNo" db:"pr_no"`
	PoNo                 string      `json:"poNo" db:"po_no"`
	LessNo               string      `json:"lessNo" db:"less_no"`
	ProcurementType      string      `json:"procurementType" db:"procurement_type"`
	CurrentWorkflowType  string      `json:"currentWorkflowType" db:"current_workflow_type"`
	Status               string      `json:"status" db:"status"`
	IsUrgent             string      `json:"isUrgent" db:"is_urgent"`
	ExpectedApprovalDate *time.Time  `json:"expectedApprovalDate" db:"expected_approval_date"`
	VendorName           string      `json:"vendorName" db:"vendor_name"`
	VendorTaxId          string      `json:"vendorTaxId" db:"vendor_tax_id"`
	VendorEmail          string      `json:"vendorEmail" db:"vendor_email"`
	RequestingDeptId     uuid.UUID   `json:"requestingDeptId" db:"requesting_dept_id"`
	RequestingUnitId     uuid.UUID   `json:"requestingUnitId" db:"requesting_unit_id"`
	CreatedBy            uuid.UUID   `json:"createdBy" db:"created_by"`
	CreatedAt            string      `json:"createdAt" db:"created_at"`
	ProcurementAssignees []uuid.UUID `json:"procurementAssignees"`
	ContractAssignees    []uuid.UUID `json:"contractAssignees"`
}

// AssigneesForPhase returns the assignee set for the given phase slot.
func (p *Project) AssigneesForPhase(phase string) []uuid.UUID {
	if phase == common.PhaseContract {
		return p.ContractAssignees
	}

	return p.ProcurementAssignees
}

// db model; at most one active record per project
type ProjectCancellation struct {
	Id          uuid.UUID     `json:"id" db:"id"`
	ProjectId   uuid.UUID     `json:"projectId" db:"project_id"`
	Reason      string        `json:"reason" db:"reason"`
	RequestedBy uuid.UUID     `json:"requestedBy" db:"requested_by"`
	ApprovedBy  uuid.NullUUID `json:"approvedBy" db:"approved_by"`
	IsActive    bool          `json:"isActive" db:"is_active"`
	Cancelled   bool          `json:"cancelled" db:"cancelled"`
	CreatedAt   string        `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateProjectInput struct {
	Title                string // given
	Description          string // given
	Budget               float64
	PrNo                 string
	LessNo               string
	ProcurementType      string // given; fixes the first phase workflow type
	IsUrgent             string // should default to NORMAL
	ExpectedApprovalDate *time.Time
	RequestingDeptId     string
	RequestingUnitId     string
	CreatedBy            uuid.UUID // set from the actor
	// ReceiveNo allocated by the repo under the receive-number lock
	// Status set to UNASSIGNED, CurrentWorkflowType set to ProcurementType
}

// service + repo input model; nil fields stay untouched
type UpdateProjectInput struct {
	Title                *string
	Description          *string
	Budget               *float64
	PrNo                 *string
	PoNo                 *string
	LessNo               *string
	RequestingUnitId     *string
	IsUrgent             *string
	ExpectedApprovalDate *time.Time
	VendorName           *string
	VendorTaxId          *string
	VendorEmail          *string
	CurrentWorkflowType  *string
}

// repo input for one assign-batch item
type AssignProjectItem struct {
	ProjectId uuid.UUID
	UserId    uuid.UUID
	Phase     string
}

// repo filter for the assigned-for-date listing
type AssignedProjectsFilter struct {
	DayStart      time.Time
	DayEnd        time.Time
	WorkflowTypes []string  // unit-wide query (unit heads)
	AssigneeId    uuid.UUID // own-assignments query (general staff); uuid.Nil disables
}

// controller models
type ProjectOutputModel struct {
	Id                   string   `json:"id"`
	ReceiveNo            string   `json:"receiveNo"`
	Title                string   `json:"title"`
	Description          string   `json:"description,omitempty"`
	Budget               float64  `json:"budget"`
	PrNo                 string   `json:"prNo,omitempty"`
	PoNo                 string   `json:"poNo,omitempty"`
	LessNo               string   `json:"lessNo,omitempty"`
	ProcurementType      string   `json:"procurementType"`
	CurrentWorkflowType  string   `json:"currentWorkflowType"`
	Status               string   `json:"status"`
	IsUrgent             string   `json:"isUrgent"`
	ExpectedApprovalDate string   `json:"expectedApprovalDate,omitempty"`
	VendorName           string   `json:"vendorName,omitempty"`
	VendorTaxId          string   `json:"vendorTaxId,omitempty"`
	VendorEmail          string   `json:"vendorEmail,omitempty"`
	RequestingDeptId     string   `json:"requestingDeptId"`
	RequestingUnitId     string   `json:"requestingUnitId"`
	CreatedBy            string   `json:"createdBy"`
	CreatedAt            string   `json:"createdAt"`
	ProcurementAssignees []string `json:"procurementAssignees"`
	ContractAssignees    []string `json:"contractAssignees"`
}

type PhaseStatusOutputModel struct {
	Status string `json:"status"`
	Step   int    `json:"step,omitempty"`
}

type ProjectDetailOutputModel struct {
	ProjectOutputModel
	ProcurementPhase PhaseStatusOutputModel   `json:"procurementPhase"`
	ContractPhase    PhaseStatusOutputModel   `json:"contractPhase"`
	Cancellation     *CancellationOutputModel `json:"cancellation,omitempty"`
}

type PaginatedProjectsOutputModel struct {
	Total int                  `json:"total"`
	Data  []ProjectOutputModel `json:"data"`
}

type CancellationOutputModel struct {
	Id        string `json:"id"`
	ProjectId string `json:"projectId"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
}
