package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// db model; step name/order/workflow type are joined from workflow_step
type Submission struct {
	Id           uuid.UUID       `json:"id" db:"id"`
	ProjectId    uuid.UUID       `json:"projectId" db:"project_id"`
	StepId       uuid.UUID       `json:"stepId" db:"step_id"`
	Round        int             `json:"submissionRound" db:"submission_round"`
	Type         string          `json:"submissionType" db:"submission_type"`
	Status       string          `json:"status" db:"status"`
	SubmittedBy  uuid.UUID       `json:"submittedBy" db:"submitted_by"`
	SubmittedAt  time.Time       `json:"submittedAt" db:"submitted_at"`
	ApprovedBy   uuid.NullUUID   `json:"approvedBy" db:"approved_by"`
	ApprovedAt   *time.Time      `json:"approvedAt" db:"approved_at"`
	ProposedBy   uuid.NullUUID   `json:"proposedBy" db:"proposed_by"`
	ProposedAt   *time.Time      `json:"proposedAt" db:"proposed_at"`
	CompletedBy  uuid.NullUUID   `json:"completedBy" db:"completed_by"`
	CompletedAt  *time.Time      `json:"completedAt" db:"completed_at"`
	Comment      string          `json:"comment" db:"comment"`
	Metadata     json.RawMessage `json:"metadata" db:"meta_data"`
	StepName     string          `json:"stepName"`
	StepOrder    int             `json:"stepOrder"`
	WorkflowType string          `json:"workflowType"`
	Documents    []Document      `json:"documents"`
}

// db model; binary content lives outside the engine
type Document struct {
	Id           uuid.UUID `json:"id" db:"id"`
	SubmissionId uuid.UUID `json:"submissionId" db:"submission_id"`
	FieldKey     string    `json:"fieldKey" db:"field_key"`
	FileName     string    `json:"fileName" db:"file_name"`
	FilePath     string    `json:"filePath" db:"file_path"`
}

// service + repo input models
type DocumentInput struct {
	FieldKey string
	FileName string
	FilePath string
}

type CreateSubmissionInput struct {
	ProjectId    string
	WorkflowType string
	StepOrder    int
	Metadata     json.RawMessage
	Files        []DocumentInput
	SubmittedBy  uuid.UUID // set from the actor
	// Round allocated by the repo under the per-(project, step) lock
}

// controller models
type SubmissionOutputModel struct {
	Id           string                `json:"id"`
	ProjectId    string                `json:"projectId"`
	StepName     string                `json:"stepName"`
	StepOrder    int                   `json:"stepOrder"`
	WorkflowType string                `json:"workflowType"`
	Round        int                   `json:"submissionRound"`
	Status       string                `json:"status"`
	SubmittedBy  string                `json:"submittedBy"`
	SubmittedAt  string                `json:"submittedAt"`
	ApprovedBy   string                `json:"approvedBy,omitempty"`
	ApprovedAt   string                `json:"approvedAt,omitempty"`
	ProposedBy   string                `json:"proposedBy,omitempty"`
	ProposedAt   string                `json:"proposedAt,omitempty"`
	CompletedBy  string                `json:"completedBy,omitempty"`
	CompletedAt  string                `json:"completedAt,omitempty"`
	Comment      string                `json:"comment,omitempty"`
	Metadata     json.RawMessage       `json:"metadata,omitempty"`
	Documents    []DocumentOutputModel `json:"documents"`
}

type DocumentOutputModel struct {
	Id       string `json:"id"`
	FieldKey string `json:"fieldKey,omitempty"`
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}

type ProjectSubmissionsOutputModel struct {
	Procurement []SubmissionOutputModel `json:"procurement"`
	Contract    []SubmissionOutputModel `json:"contract"`
}
